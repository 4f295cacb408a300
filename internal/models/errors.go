package models

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrLoad            = errors.New("load error")
	ErrRetrieval       = errors.New("retrieval error")
	ErrMissingVariable = errors.New("missing variable")
	ErrGeneration      = errors.New("generation error")
)

// Error tags an underlying error with a kind. Its message is the underlying
// message unchanged, so service errors reach the client verbatim.
type Error struct {
	Kind error
	Err  error
}

func NewError(kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a kinded error from a format string.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

// KindOf returns the kind of err, or nil when err carries none.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
