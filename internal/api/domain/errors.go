package domain

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION"
	KindAuthRequired ErrorKind = "AUTH_REQUIRED"
	KindAuthFailed   ErrorKind = "AUTH_FAILED"
	KindFetch        ErrorKind = "FETCH"
	KindSubmission   ErrorKind = "SUBMISSION"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindConflict     ErrorKind = "CONFLICT"
)

// Error is the error type every board operation surfaces. Message is short
// and safe to show to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StackTrace() []byte {
	return e.Stack
}

// Retryable reports whether re-triggering the same action may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindFetch || e.Kind == KindSubmission
}

func newError(kind ErrorKind, message string, err error) *Error {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string, err error) *Error {
	return newError(KindValidation, message, err)
}

func AuthRequired(message string, err error) *Error {
	return newError(KindAuthRequired, message, err)
}

func AuthFailed(message string, err error) *Error {
	return newError(KindAuthFailed, message, err)
}

func Fetch(message string, err error) *Error {
	return newError(KindFetch, message, err)
}

func Submission(message string, err error) *Error {
	return newError(KindSubmission, message, err)
}

func NotFound(message string, err error) *Error {
	return newError(KindNotFound, message, err)
}

func Forbidden(message string, err error) *Error {
	return newError(KindForbidden, message, err)
}

func Conflict(message string, err error) *Error {
	return newError(KindConflict, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there
// is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
