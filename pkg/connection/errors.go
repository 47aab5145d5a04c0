package connection

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a connection cannot be built from the
// supplied parameters
var ErrInvalidConfig = errors.New("invalid configuration")

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}
