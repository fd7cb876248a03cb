//go:build !darwin

package torch

import (
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// parseAddress turns a MAC address string into a peripheral address.
func parseAddress(address string) (bluetooth.Address, error) {
	mac, err := bluetooth.ParseMAC(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("parse ble address %q: %w: %w", address, safety.ErrInvalidInput, err)
	}

	return bluetooth.Address{MACAddress: bluetooth.MACAddress{MAC: mac}}, nil
}
