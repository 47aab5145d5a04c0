package target

import (
	"context"
	"time"

	"github.com/williamokano/rsyncer/pkg/connection"
)

// Target prepares the destination side of a connection before rsync runs
type Target interface {
	// Type returns the connection kind this target serves
	Type() connection.Kind

	// Check verifies the destination root is reachable and is a directory
	Check(ctx context.Context) error

	// Prepare creates dir (relative to the destination root) and any missing
	// parents
	Prepare(ctx context.Context, dir string) error

	// Close releases resources (connections, sessions)
	Close() error
}

// Options tune how targets reach the destination host
type Options struct {
	KnownHostsPath string        // enables strict host key checking when set
	DialTimeout    time.Duration // default 30s
	Retry          RetryConfig
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		DialTimeout: 30 * time.Second,
		Retry:       DefaultRetryConfig(),
	}
}

// Result represents the outcome of a preflight
type Result struct {
	Connection string
	Kind       connection.Kind
	Success    bool
	Error      error
	Duration   time.Duration
}
