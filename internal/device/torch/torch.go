// Package torch implements torch drivers: a sysfs LED, a BLE LED strip and
// a None driver for machines without a lamp.
package torch

import (
	"context"
	"fmt"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// Driver switches a torch on (full brightness) or off.
type Driver interface {
	// Available reports whether the torch hardware is present.
	Available() bool
	// Set switches the torch.
	Set(ctx context.Context, on bool) error
}

// None is the driver used when no torch is present.
type None struct{}

// Available implements Driver.
func (None) Available() bool {
	return false
}

// Set implements Driver.
func (None) Set(context.Context, bool) error {
	return fmt.Errorf("no torch configured: %w", safety.ErrHardwareUnavailable)
}
