package data

import (
	"fmt"

	"github.com/pkg/errors"
)

// CodeInvalidArguments is printed after every usage error message
const CodeInvalidArguments = "Code 2: invalid arguments"

// UsageError is returned for missing or invalid arguments, before any I/O happens
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// UsageErrorf formats a UsageError
func UsageErrorf(format string, args ...interface{}) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// IsUsageError reports whether the cause of err is a UsageError
func IsUsageError(err error) bool {
	_, ok := errors.Cause(err).(*UsageError)
	return ok
}

var (
	// ErrInterrupted is returned when the conversion context is cancelled between records
	ErrInterrupted = errors.New("interrupted")
	// ErrMalformedLine is returned for manifest lines without an image and a label path
	ErrMalformedLine = errors.New("malformed manifest line")
)
