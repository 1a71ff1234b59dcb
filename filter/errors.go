package filter

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned when a named preset has not been registered
var ErrUnknownPreset = errors.New("unknown filter preset")

type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter failed while running against a game system
	EvaluationError struct {
		Expression string
		SystemID   string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for '%s' on game system '%s': %v", e.Expression, e.SystemID, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
