package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/williamokano/rsyncer/pkg/connection"
	"github.com/williamokano/rsyncer/pkg/target"
)

type Target struct {
	root string
}

func init() {
	target.Register(connection.Local, func(ctx context.Context, conn *connection.Connection, opts target.Options) (target.Target, error) {
		return New(conn)
	})
}

// New creates a local filesystem target
func New(conn *connection.Connection) (*Target, error) {
	if conn.Kind() != connection.Local {
		return nil, fmt.Errorf("%w: local target needs a local connection, got %s", target.ErrInvalidConfig, conn.Kind())
	}
	return &Target{root: conn.Root()}, nil
}

func (t *Target) Type() connection.Kind { return connection.Local }

// Check verifies the destination root exists and is a directory
func (t *Target) Check(ctx context.Context) error {
	info, err := os.Stat(t.root)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return target.WrapError(t.root, "check", target.ErrPermissionDenied)
		}
		return target.WrapError(t.root, "check", err)
	}
	if !info.IsDir() {
		return target.WrapError(t.root, "check", target.ErrNotDirectory)
	}
	return nil
}

// Prepare creates dir under the destination root
func (t *Target) Prepare(ctx context.Context, dir string) error {
	fullPath := filepath.Join(t.root, dir)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return target.WrapError(t.root, "mkdir", target.ErrPermissionDenied)
		}
		return target.WrapError(t.root, "mkdir", err)
	}
	return nil
}

// Close is a no-op for local targets
func (t *Target) Close() error {
	return nil
}
