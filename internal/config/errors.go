package config

import "errors"

var (
	ErrMissingAPIKey      = errors.New("config: RAPIDAPI_KEY is required")
	ErrMissingCredentials = errors.New("config: mail transport credentials are required")
	ErrMissingSender      = errors.New("config: MAIL_FROM is required for this transport")
	ErrInvalidTransport   = errors.New("config: unknown MAIL_TRANSPORT")
	ErrInvalidLanguage    = errors.New("config: invalid language tag")
	ErrInvalidTimezone    = errors.New("config: invalid RUN_TIMEZONE")
	ErrInvalidConcurrency = errors.New("config: RUN_CONCURRENCY must not be negative")

	ErrNoRecipients     = errors.New("config: recipient list is empty")
	ErrInvalidRecipient = errors.New("config: invalid recipient")
	ErrDuplicateEmail   = errors.New("config: duplicate recipient email")
)
