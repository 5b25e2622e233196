// Package i18n provides an immutable translation catalog keyed by
// language, namespace and dotted key.
//
// Translations are supplied as nested maps or loaded from a filesystem laid
// out as {lang}/{namespace}.yaml:
//
//	catalog, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithYAMLDir(translationsFS),
//	)
//	label, ok := catalog.Lookup("ro", "signs", "leo") // "leu", true
//
// Lookup tries the exact language, then its base language ("pt" for
// "pt-BR"), then the default language. T behaves like Lookup but returns the
// key itself when nothing matches.
package i18n
