package horoscope

import "errors"

var (
	// ErrFetchFailed is returned when the provider cannot be reached or
	// answers with a non-2xx status.
	ErrFetchFailed = errors.New("horoscope: failed to fetch reading")

	// ErrParseFailed is returned when the response body is not well-formed.
	ErrParseFailed = errors.New("horoscope: failed to parse reading")

	// ErrEmptyHoroscope is returned when the response carries no horoscope text.
	ErrEmptyHoroscope = errors.New("horoscope: empty horoscope text")

	// ErrUnknownSign is returned by ParseSign for unrecognized identifiers.
	ErrUnknownSign = errors.New("horoscope: unknown sign")
)
