package metrics

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a reduction is asked to run over no data.
var ErrEmptyInput = errors.New("empty input")

// ErrShapeMismatch indicates two operands of a metric do not line up.
type ErrShapeMismatch struct {
	Op   string
	Want int
	Got  int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("%s: shape mismatch (want %d, got %d)", e.Op, e.Want, e.Got)
}

// ErrLabelOutOfRange indicates a class label outside [0, Labels).
type ErrLabelOutOfRange struct {
	Label  int
	Labels int
}

func (e *ErrLabelOutOfRange) Error() string {
	return fmt.Sprintf("label %d out of range [0,%d)", e.Label, e.Labels)
}
