package smtp

import "time"

// Config holds SMTP transport configuration. Defaults target Gmail submission.
type Config struct {
	Host        string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Username    string        `env:"EMAIL_USER"`
	Password    string        `env:"EMAIL_PASS"`
	Port        int           `env:"SMTP_PORT" envDefault:"587"`
	DialTimeout time.Duration `env:"SMTP_DIAL_TIMEOUT" envDefault:"30s"`
}
