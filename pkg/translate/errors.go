package translate

import "errors"

var (
	// ErrTranslateFailed is returned on transport failures and unexpected responses.
	ErrTranslateFailed = errors.New("translate: failed to translate text")

	// ErrInvalidLanguage is returned when a language code is not a valid BCP 47 tag.
	ErrInvalidLanguage = errors.New("translate: invalid language code")
)
