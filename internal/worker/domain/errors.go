package domain

import "errors"

var (
	// ErrApplicationNotFound is returned when the application row does not exist
	ErrApplicationNotFound = errors.New("application not found")

	// ErrJobNotFound is returned when the application's job no longer exists
	ErrJobNotFound = errors.New("job not found")

	// ErrAlreadyCounted is returned when the application was counted by an earlier delivery
	ErrAlreadyCounted = errors.New("application already counted")

	// ErrInvalidMessage is returned when a message body cannot be used
	ErrInvalidMessage = errors.New("invalid message")

	// ErrMaxRetriesExceeded is returned when a redelivered message fails again
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
