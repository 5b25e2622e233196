package pipeline

import (
	"errors"
	"fmt"
)

// ErrPanic marks a delivery that panicked.
var ErrPanic = errors.New("pipeline: delivery panicked")

// Stage names a pipeline step.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageTranslate Stage = "translate"
	StageCompose   Stage = "compose"
	StageDispatch  Stage = "dispatch"
)

// StageError records which stage failed for which recipient.
type StageError struct {
	Stage     Stage
	Recipient string
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Recipient, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
