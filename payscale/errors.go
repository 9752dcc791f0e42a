/*
errors.go - Error types for the compensation engine

PURPOSE:
  The engine treats missing reference data as a value (empty slice, nil
  result), never an error. The only real errors live at the identifier
  boundary: labels that are not valid grade/step keys, which loaders
  reject before a table is ever built.

USAGE:
  if errors.Is(err, payscale.ErrInvalidStep) { ... }
*/
package payscale

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStep is returned when a step label is neither "S" nor a
	// positive integer.
	ErrInvalidStep = errors.New("invalid step label")

	// ErrInvalidGrade is returned when a grade label is empty.
	ErrInvalidGrade = errors.New("invalid grade label")
)

// InvalidStepError carries the offending label.
type InvalidStepError struct {
	Step StepID
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("invalid step label %q: want \"S\" or a positive integer", string(e.Step))
}

func (e *InvalidStepError) Unwrap() error {
	return ErrInvalidStep
}
