//go:build darwin

package torch

import (
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// parseAddress turns a CoreBluetooth peripheral UUID into an address.
func parseAddress(address string) (bluetooth.Address, error) {
	uuid, err := bluetooth.ParseUUID(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("parse ble address %q: %w: %w", address, safety.ErrInvalidInput, err)
	}

	return bluetooth.Address{UUID: uuid}, nil
}
