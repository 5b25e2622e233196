package horoscope

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sign is a canonical zodiac identifier as understood by the provider.
type Sign string

const (
	Aries       Sign = "aries"
	Taurus      Sign = "taurus"
	Gemini      Sign = "gemini"
	Cancer      Sign = "cancer"
	Leo         Sign = "leo"
	Virgo       Sign = "virgo"
	Libra       Sign = "libra"
	Scorpio     Sign = "scorpio"
	Sagittarius Sign = "sagittarius"
	Capricorn   Sign = "capricorn"
	Aquarius    Sign = "aquarius"
	Pisces      Sign = "pisces"
)

var signs = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// Signs returns the twelve recognized signs in zodiac order.
func Signs() []Sign {
	return slices.Clone(signs)
}

// ParseSign normalizes s (trim, lowercase) and checks it against the known signs.
func ParseSign(s string) (Sign, error) {
	sign := Sign(strings.ToLower(strings.TrimSpace(s)))
	if !sign.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSign, s)
	}
	return sign, nil
}

// Valid reports whether s is one of the twelve recognized signs.
func (s Sign) Valid() bool {
	return slices.Contains(signs, s)
}

// Title returns the sign with its first letter capitalized ("leo" -> "Leo").
func (s Sign) Title() string {
	// Casers keep state between calls and are not shared.
	return cases.Title(language.English).String(string(s))
}

func (s Sign) String() string {
	return string(s)
}
