package compose

// Label fallback policies for signs without a label in the recipient's locale.
const (
	FallbackIdentifier = "identifier" // use the canonical sign id and log a warning
	FallbackStrict     = "strict"     // fail with ErrMissingLabel
)

// Config controls message composition.
type Config struct {
	// TranslationsDir optionally points at extra {lang}/signs.yaml files
	// that override or extend the embedded labels.
	TranslationsDir string `env:"TRANSLATIONS_DIR"`
	LabelFallback   string `env:"SIGN_LABEL_FALLBACK" envDefault:"identifier"`
}

// Validate checks the fallback policy.
func (c Config) Validate() error {
	switch c.LabelFallback {
	case "", FallbackIdentifier, FallbackStrict:
		return nil
	default:
		return ErrInvalidFallback
	}
}
