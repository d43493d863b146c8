package sar

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is matched by every *ShapeError via errors.Is.
	ErrShape = errors.New("shape mismatch")
	// ErrPrecondition is matched by every *PreconditionError via errors.Is.
	ErrPrecondition = errors.New("precondition violated")
)

// ShapeError reports input dimensions that disagree with the governing
// platform geometry or with each other.
type ShapeError struct {
	Op   string
	What string
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s shape mismatch: want %s, got %s", e.Op, e.What, e.Want, e.Got)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// PreconditionError reports a physical parameter that makes a transform
// undefined, such as a zero chirp rate.
type PreconditionError struct {
	Field  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

var errNilPlatform = &PreconditionError{Field: "platform", Reason: "must not be nil"}

func shapeErr(op, what string, want, got any) error {
	return &ShapeError{Op: op, What: what, Want: fmt.Sprint(want), Got: fmt.Sprint(got)}
}

func dimsString(rows, cols int) string {
	return fmt.Sprintf("(%d, %d)", rows, cols)
}
