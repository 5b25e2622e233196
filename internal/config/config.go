// Package config loads process configuration from the environment and the
// recipient list from YAML.
package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // RUN_TIMEZONE must resolve without system zoneinfo

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/horoscope/internal/compose"
	"github.com/dmitrymomot/horoscope/internal/schedule"
	"github.com/dmitrymomot/horoscope/pkg/horoscope"
	"github.com/dmitrymomot/horoscope/pkg/logger"
	"github.com/dmitrymomot/horoscope/pkg/mailer"
	"github.com/dmitrymomot/horoscope/pkg/mailer/resend"
	"github.com/dmitrymomot/horoscope/pkg/mailer/ses"
	"github.com/dmitrymomot/horoscope/pkg/mailer/smtp"
	"github.com/dmitrymomot/horoscope/pkg/translate"
)

// Mail transports.
const (
	TransportSMTP    = "smtp"
	TransportResend  = "resend"
	TransportSES     = "ses"
	TransportConsole = "console"
)

// Config is the full process configuration. It is loaded once and passed
// by value to constructors.
type Config struct {
	Horoscope horoscope.Config
	Translate translate.Config
	Mail      mailer.Config
	SMTP      smtp.Config
	Resend    resend.Config
	SES       ses.Config
	Compose   compose.Config
	Run       RunConfig
	HTTP      HTTPConfig
	Log       logger.Config
	Sentry    logger.SentryConfig

	// TargetLanguage applies to recipients without their own language.
	TargetLanguage string `env:"TARGET_LANGUAGE" envDefault:"en"`
	Transport      string `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	RecipientsFile string `env:"RECIPIENTS_FILE" envDefault:"recipients.yaml"`
}

// RunConfig controls the coordinator and the built-in scheduler.
type RunConfig struct {
	// Schedule is a cron expression. Empty means run once and exit.
	Schedule    string `env:"RUN_SCHEDULE"`
	Timezone    string `env:"RUN_TIMEZONE" envDefault:"UTC"`
	Concurrency int    `env:"RUN_CONCURRENCY" envDefault:"0"`
}

// HTTPConfig controls outbound HTTP and the daemon's HTTP surface.
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	Timeout         time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and parses the environment.
// It does not validate; call Validate after applying command-line overrides.
func Load() (Config, error) {
	_ = godotenv.Load()
	return parse(nil)
}

// parse reads environ, or the process environment when environ is nil.
func parse(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// Location returns the scheduler time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Run.Timezone)
	if err != nil {
		return nil, errors.Join(ErrInvalidTimezone, err)
	}
	return loc, nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.Horoscope.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}

	if _, err := language.Parse(c.TargetLanguage); err != nil {
		errs = append(errs, fmt.Errorf("%w: TARGET_LANGUAGE=%q", ErrInvalidLanguage, c.TargetLanguage))
	}
	if _, err := language.Parse(c.Translate.SourceLanguage); err != nil {
		errs = append(errs, fmt.Errorf("%w: TRANSLATE_SOURCE_LANGUAGE=%q", ErrInvalidLanguage, c.Translate.SourceLanguage))
	}

	errs = append(errs, c.validateTransport()...)

	if err := c.Compose.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Run.Concurrency < 0 {
		errs = append(errs, ErrInvalidConcurrency)
	}
	if c.Run.Schedule != "" {
		if _, err := schedule.ParseSpec(c.Run.Schedule); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c Config) validateTransport() []error {
	switch c.Transport {
	case TransportSMTP:
		if c.SMTP.Username == "" || c.SMTP.Password == "" {
			return []error{fmt.Errorf("%w: EMAIL_USER and EMAIL_PASS", ErrMissingCredentials)}
		}
	case TransportResend:
		var errs []error
		if c.Resend.APIKey == "" {
			errs = append(errs, fmt.Errorf("%w: RESEND_API_KEY", ErrMissingCredentials))
		}
		if c.Mail.From == "" {
			errs = append(errs, ErrMissingSender)
		}
		return errs
	case TransportSES:
		if c.Mail.From == "" {
			return []error{ErrMissingSender}
		}
	case TransportConsole:
	default:
		return []error{fmt.Errorf("%w: %q", ErrInvalidTransport, c.Transport)}
	}
	return nil
}
