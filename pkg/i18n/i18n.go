package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "en"

// Catalog holds flattened translations. It is immutable after New returns
// and safe for concurrent use.
type Catalog struct {
	// Key format: "lang:namespace:key.path"
	translations map[string]string
	defaultLang  string
	languages    []string
}

// Option configures the Catalog during construction.
type Option func(*Catalog) error

// New creates a catalog from the given options. Options are applied in
// order, so later sources override earlier ones key by key.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	c.languages = c.collectLanguages()
	return c, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		c.defaultLang = lang
		return nil
	}
}

// WithTranslations adds translations for one language and namespace.
// Nested maps are flattened into dotted keys.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		c.add(lang, namespace, translations)
		return nil
	}
}

// Lookup returns the translation for key, trying lang, its base language
// and finally the default language.
func (c *Catalog) Lookup(lang, namespace, key string) (string, bool) {
	for _, candidate := range c.candidates(lang) {
		if value, ok := c.translations[buildKey(candidate, namespace, key)]; ok {
			return value, true
		}
	}
	return "", false
}

// T returns the translation for key or the key itself when none exists.
func (c *Catalog) T(lang, namespace, key string) string {
	if value, ok := c.Lookup(lang, namespace, key); ok {
		return value
	}
	return key
}

// Has reports whether lang (or its base language) has its own translation
// for key, without falling back to the default language.
func (c *Catalog) Has(lang, namespace, key string) bool {
	if _, ok := c.translations[buildKey(lang, namespace, key)]; ok {
		return true
	}
	_, ok := c.translations[buildKey(baseLanguage(lang), namespace, key)]
	return ok
}

// Languages returns the languages with at least one translation, default first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

func (c *Catalog) candidates(lang string) []string {
	out := []string{lang}
	if base := baseLanguage(lang); base != lang {
		out = append(out, base)
	}
	if !slices.Contains(out, c.defaultLang) {
		out = append(out, c.defaultLang)
	}
	return out
}

func (c *Catalog) add(lang, namespace string, translations map[string]any) {
	for key, value := range flattenTranslations(translations, "") {
		c.translations[buildKey(lang, namespace, key)] = value
	}
}

func (c *Catalog) collectLanguages() []string {
	set := map[string]struct{}{}
	for key := range c.translations {
		lang, _, _ := strings.Cut(key, ":")
		if lang != c.defaultLang {
			set[lang] = struct{}{}
		}
	}
	return append([]string{c.defaultLang}, slices.Sorted(maps.Keys(set))...)
}

func buildKey(lang, namespace, key string) string {
	return strings.ToLower(lang) + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

// baseLanguage strips the region from a language tag ("pt-BR" becomes "pt").
func baseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}
