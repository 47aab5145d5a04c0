package target

import (
	"errors"
	"fmt"

	"github.com/williamokano/rsyncer/pkg/connection"
)

var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrConnFailed       = errors.New("connection failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotDirectory     = errors.New("not a directory")
	ErrTimeout          = errors.New("operation timeout")
	ErrInvalidConfig    = connection.ErrInvalidConfig
)

// IsRetryable returns true if error should trigger a retry. A critical error
// is never retried, even when it also wraps a connection failure.
func IsRetryable(err error) bool {
	if IsCritical(err) {
		return false
	}
	return errors.Is(err, ErrConnFailed) || errors.Is(err, ErrTimeout)
}

// IsCritical returns true if error should stop all operations
func IsCritical(err error) bool {
	return errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrInvalidConfig)
}

// WrapError adds context to an error
func WrapError(target, operation string, err error) error {
	return fmt.Errorf("%s (%s): %w", operation, target, err)
}
