package envelope

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation.
type Kind int

const (
	Unexpected Kind = iota
	NotFound
	Validation
	Persistence
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Validation:
		return "validation"
	case Persistence:
		return "persistence"
	}
	return "unexpected"
}

// Error is a classified operation failure. Fields carries per-field validation
// messages when Kind is Validation.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewNotFound reports a missing record, e.g. "Event not found".
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewValidation reports invalid input. fields may be nil.
func NewValidation(message string, fields map[string][]string) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

// NewPersistence wraps a storage failure.
func NewPersistence(message string, err error) *Error {
	return &Error{Kind: Persistence, Message: message, Err: err}
}

// NewUnexpected wraps anything else.
func NewUnexpected(err error) *Error {
	return &Error{Kind: Unexpected, Message: "something went wrong", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, Unexpected otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewUnexpected(err)
}
