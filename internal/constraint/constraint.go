// Package constraint provides the precondition checks used in front of
// every native call.
//
// A failed check is a programmer error. Callers return the *Violation
// unchanged and never retry the operation.
package constraint

import "fmt"

// Violation reports a failed precondition.
type Violation struct {
	Description string
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return "constraint violation: " + v.Description
}

// New returns a violation with the given description.
func New(description string) *Violation {
	return &Violation{Description: description}
}

// Newf returns a violation with a formatted description.
func Newf(format string, args ...any) *Violation {
	return &Violation{Description: fmt.Sprintf(format, args...)}
}

// Check returns a violation carrying description when cond is false.
func Check(cond bool, description string) error {
	if cond {
		return nil
	}
	return New(description)
}

// NotNil returns a violation when p is nil.
func NotNil[T any](p *T, what string) error {
	if p == nil {
		return New(what + " not null")
	}
	return nil
}

// InRange returns a violation when v is outside [lo, hi].
func InRange(v, lo, hi int, what string) error {
	if v < lo || v > hi {
		return Newf("%s in range [%d, %d] (got %d)", what, lo, hi, v)
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
