package rsync

import (
	"errors"
	"strings"

	"github.com/williamokano/rsyncer/pkg/connection"
)

var (
	// ErrInvalidConfig is shared with the connection package so callers can
	// test for either source with a single errors.Is
	ErrInvalidConfig   = connection.ErrInvalidConfig
	ErrExecutionFailed = errors.New("rsync execution failed")
)

// ExecError is returned when rsync exits with a non-zero status
type ExecError struct {
	ExitCode int
	Output   []string // combined stdout and stderr, one entry per line
}

// Error joins the output lines with a real newline, not the two-character
// `\n` sequence some rsync wrappers print.
func (e *ExecError) Error() string {
	return "RSYNC failed. " + strings.Join(e.Output, "\n")
}

func (e *ExecError) Unwrap() error {
	return ErrExecutionFailed
}
