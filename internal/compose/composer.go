package compose

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/horoscope/pkg/horoscope"
	"github.com/dmitrymomot/horoscope/pkg/i18n"
	"github.com/dmitrymomot/horoscope/pkg/logger"
	"github.com/dmitrymomot/horoscope/pkg/mailer"
	"github.com/dmitrymomot/horoscope/pkg/translate"
)

const (
	signsNamespace = "signs"
	defaultLocale  = "en"
	layoutName     = "base.html"
)

//go:embed templates translations
var assets embed.FS

// Input is everything needed to compose one message.
type Input struct {
	To          string
	Sign        horoscope.Sign
	Locale      string
	Text        string
	LuckyNumber string
	Date        string
}

// Message is a composed email ready for dispatch.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// templateData is what the markdown templates see. Text, Name and
// LuckyNumber are sanitized before rendering.
type templateData struct {
	Name        string
	Sign        string
	SignLabel   string
	Text        string
	LuckyNumber string
	Date        string
}

// Composer renders messages. It is safe for concurrent use.
type Composer struct {
	renderer *mailer.Renderer
	labels   *i18n.Catalog
	policy   *bluemonday.Policy
	fallback string
	logger   *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger used for label fallback warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a Composer from the embedded assets and cfg.
func New(cfg Config, opts ...Option) (*Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	embedded, err := fs.Sub(assets, "translations")
	if err != nil {
		return nil, fmt.Errorf("compose: embedded translations: %w", err)
	}

	sources := []i18n.Option{
		i18n.WithDefaultLanguage(defaultLocale),
		i18n.WithYAMLDir(embedded),
	}
	if cfg.TranslationsDir != "" {
		sources = append(sources, i18n.WithYAMLDir(os.DirFS(cfg.TranslationsDir)))
	}

	labels, err := i18n.New(sources...)
	if err != nil {
		return nil, fmt.Errorf("compose: load sign labels: %w", err)
	}

	c := &Composer{
		renderer: mailer.NewRendererWithConfig(assets, mailer.RendererConfig{
			TemplateDir: "templates",
			LayoutDir:   "templates/layouts",
		}),
		labels:   labels,
		policy:   bluemonday.StrictPolicy(),
		fallback: cfg.LabelFallback,
		logger:   logger.NewNope(),
	}
	if c.fallback == "" {
		c.fallback = FallbackIdentifier
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// DisplayName derives a greeting name from an address: the local part up
// to the first dot, with its first character upper-cased.
func DisplayName(addr string) string {
	local, _, _ := strings.Cut(addr, "@")
	name, _, _ := strings.Cut(local, ".")
	if name == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// SignLabel returns the sign's name in locale. English names are the
// title-cased identifiers; other locales come from the label catalog. A sign
// without a label in that locale yields the canonical identifier, or
// ErrMissingLabel under the strict policy.
func (c *Composer) SignLabel(ctx context.Context, sign horoscope.Sign, locale string) (string, error) {
	key := string(sign)
	if c.labels.Has(locale, signsNamespace, key) {
		return c.labels.T(locale, signsNamespace, key), nil
	}
	if sign.Valid() && isDefaultLocale(locale) {
		return sign.Title(), nil
	}

	if c.fallback == FallbackStrict {
		return "", fmt.Errorf("%w: %q in locale %q", ErrMissingLabel, sign, locale)
	}

	c.logger.WarnContext(ctx, "sign label missing, using identifier",
		slog.String("sign", key),
		slog.String("locale", locale),
	)
	return key, nil
}

// Compose renders the message for in. Failures wrap ErrComposeFailed.
func (c *Composer) Compose(ctx context.Context, in Input) (*Message, error) {
	locale := in.Locale
	if locale == "" {
		locale = defaultLocale
	}

	label, err := c.SignLabel(ctx, in.Sign, locale)
	if err != nil {
		return nil, errors.Join(ErrComposeFailed, err)
	}

	data := templateData{
		Name:        c.plain(DisplayName(in.To)),
		Sign:        string(in.Sign),
		SignLabel:   label,
		Text:        c.formatText(in.Text),
		LuckyNumber: c.plain(in.LuckyNumber),
		Date:        c.plain(in.Date),
	}

	result, err := c.renderer.Render(layoutName, c.templateFor(locale), data)
	if err != nil {
		return nil, errors.Join(ErrComposeFailed, err)
	}

	return &Message{
		To:      in.To,
		Subject: result.Subject,
		HTML:    result.HTML,
		Text:    result.Text,
	}, nil
}

// templateFor picks the template for locale's base language, defaulting to English.
func (c *Composer) templateFor(locale string) string {
	if base, err := translate.BaseLanguage(locale); err == nil {
		name := "horoscope." + base + ".md"
		if c.renderer.Has(name) {
			return name
		}
	}
	return "horoscope." + defaultLocale + ".md"
}

// formatText strips markup and turns line breaks into <br> so the text
// stays inside a single HTML block.
func (c *Composer) formatText(text string) string {
	lines := strings.Split(c.plain(strings.TrimSpace(text)), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "<br>\n")
}

// plain removes tags from s and returns the remaining text as it was
// written. Only characters that would open a tag or a character reference
// are escaped, so quotes, apostrophes and a lone "&" or "<3" stay byte for byte.
func (c *Composer) plain(s string) string {
	text := html.UnescapeString(c.policy.Sanitize(s))

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		var next byte
		if i+1 < len(text) {
			next = text[i+1]
		}
		switch {
		case ch == '<' && opensTag(next):
			b.WriteString("&lt;")
		case ch == '&' && opensReference(next):
			b.WriteString("&amp;")
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func opensTag(next byte) bool {
	return isASCIILetter(next) || next == '/' || next == '!' || next == '?'
}

func opensReference(next byte) bool {
	return isASCIILetter(next) || (next >= '0' && next <= '9') || next == '#'
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDefaultLocale(locale string) bool {
	base, err := translate.BaseLanguage(locale)
	return err == nil && base == defaultLocale
}
