package compose

import "errors"

var (
	// ErrComposeFailed wraps every failure to build a message.
	ErrComposeFailed = errors.New("compose: failed to build message")

	// ErrMissingLabel is returned under the strict fallback policy when a
	// sign has no label in the requested locale.
	ErrMissingLabel = errors.New("compose: missing sign label")

	// ErrInvalidFallback is returned for an unknown fallback policy.
	ErrInvalidFallback = errors.New("compose: invalid label fallback policy")
)
