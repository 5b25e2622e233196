package translate

import (
	"fmt"

	"golang.org/x/text/language"
)

// BaseLanguage returns the base language subtag of code ("ro-RO" -> "ro").
func BaseLanguage(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, code, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// SameLanguage reports whether a and b share a base language.
func SameLanguage(a, b string) (bool, error) {
	baseA, err := BaseLanguage(a)
	if err != nil {
		return false, err
	}
	baseB, err := BaseLanguage(b)
	if err != nil {
		return false, err
	}
	return baseA == baseB, nil
}
