package health

import "errors"

var (
	// ErrCheckFailed wraps the cause reported by a built-in check such as FileReadable.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is reported when a check does not return before the probe deadline.
	ErrCheckTimeout = errors.New("health: check timed out")
)
