package target

import (
	"context"
	"fmt"

	"github.com/williamokano/rsyncer/pkg/connection"
)

// Constructor is a function that creates a target for a connection
type Constructor func(ctx context.Context, conn *connection.Connection, opts Options) (Target, error)

var registry = map[connection.Kind]Constructor{
	connection.Akamai: func(ctx context.Context, conn *connection.Connection, opts Options) (Target, error) {
		return daemonTarget{}, nil
	},
}

// Register registers a constructor for a connection kind
func Register(kind connection.Kind, constructor Constructor) {
	registry[kind] = constructor
}

// Open creates the target for conn
func Open(ctx context.Context, conn *connection.Connection, opts Options) (Target, error) {
	constructor, ok := registry[conn.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: no target registered for connection type %s", ErrInvalidConfig, conn.Kind())
	}
	return constructor(ctx, conn, opts)
}

// daemonTarget serves rsync daemon destinations, whose module paths are
// managed on the server side
type daemonTarget struct{}

func (daemonTarget) Type() connection.Kind { return connection.Akamai }
func (daemonTarget) Check(ctx context.Context) error { return nil }
func (daemonTarget) Prepare(ctx context.Context, dir string) error { return nil }
func (daemonTarget) Close() error { return nil }
