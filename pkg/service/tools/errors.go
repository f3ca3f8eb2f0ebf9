package tools

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// ErrOperation matches every OperationError with errors.Is
var ErrOperation = goerr.New("tool operation failed")

// OperationError is a failure inside a tool operation. Message is safe to
// return to the caller; Err keeps the internal cause for logging.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func (e *OperationError) Is(target error) bool {
	return target == ErrOperation
}

func newOperationError(message string, cause error, options ...goerr.Option) *OperationError {
	if cause == nil {
		return &OperationError{Message: message, Err: goerr.New(message, options...)}
	}
	return &OperationError{Message: message, Err: goerr.Wrap(cause, message, options...)}
}

// OperationMessage returns the caller-facing message of err if it is an
// OperationError
func OperationMessage(err error) (string, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Message, true
	}
	return "", false
}
