package torch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
)

// ELK-BLEDOM strips expose a write-only characteristic fff3 in service fff0.
const (
	bledomServiceUUID        = "0000fff0-0000-1000-8000-00805f9b34fb"
	bledomCharacteristicUUID = "0000fff3-0000-1000-8000-00805f9b34fb"
)

// BLEDOM frames are 9 bytes framed by 0x7e ... 0xef.
var (
	//nolint:gochecknoglobals // Protocol constants.
	framePowerOn = []byte{0x7e, 0x04, 0x04, 0xf0, 0x00, 0x01, 0xff, 0x00, 0xef}
	//nolint:gochecknoglobals // Protocol constants.
	framePowerOff = []byte{0x7e, 0x04, 0x04, 0x00, 0x00, 0x00, 0xff, 0x00, 0xef}
	//nolint:gochecknoglobals // Protocol constants.
	frameWhite = []byte{0x7e, 0x07, 0x05, 0x03, 0xff, 0xff, 0xff, 0x10, 0xef}
	//nolint:gochecknoglobals // Protocol constants.
	frameFullBrightness = []byte{0x7e, 0x04, 0x01, 0x64, 0xff, 0xff, 0xff, 0x00, 0xef}
)

// errCharacteristicNotFound is returned when the strip lacks the control characteristic.
var errCharacteristicNotFound = errors.New("bledom control characteristic not found")

// frameWriter is the part of a GATT characteristic the driver needs.
type frameWriter interface {
	WriteWithoutResponse(p []byte) (int, error)
}

// BLE drives an ELK-BLEDOM LED strip as a torch.
type BLE struct {
	// device is the connected peripheral; zero for test writers.
	device *bluetooth.Device
	// writer sends frames to the strip.
	writer frameWriter
	// mu serialises frame writes.
	mu sync.Mutex
	// connected is cleared after a failed write or Close.
	connected bool
}

// DialBLE enables the default adapter and connects to the strip at address.
func DialBLE(ctx context.Context, address string) (*BLE, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable BLE adapter: %w: %w", safety.ErrHardwareUnavailable, err)
	}

	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Connecting to BLE torch", "address", address)

	device, err := adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w: %w", address, safety.ErrHardwareUnavailable, err)
	}

	char, err := findControlCharacteristic(&device)
	if err != nil {
		_ = device.Disconnect()

		return nil, err
	}

	t := newBLE(&char)
	t.device = &device

	return t, nil
}

// newBLE wraps an already resolved frame writer.
func newBLE(w frameWriter) *BLE {
	return &BLE{
		writer:    w,
		connected: true,
	}
}

// findControlCharacteristic resolves the BLEDOM control characteristic.
func findControlCharacteristic(device *bluetooth.Device) (bluetooth.DeviceCharacteristic, error) {
	serviceUUID, err := bluetooth.ParseUUID(bledomServiceUUID)
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("parse service uuid: %w", err)
	}

	charUUID, err := bluetooth.ParseUUID(bledomCharacteristicUUID)
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("parse characteristic uuid: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("discover services: %w", errors.Join(errCharacteristicNotFound, err))
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{charUUID})
	if err != nil || len(chars) == 0 {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("discover characteristics: %w", errors.Join(errCharacteristicNotFound, err))
	}

	return chars[0], nil
}

// Available implements Driver.
func (b *BLE) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.connected
}

// Set implements Driver. "On" selects white at full brightness before powering on.
func (b *BLE) Set(_ context.Context, on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.connected {
		return fmt.Errorf("ble torch disconnected: %w", safety.ErrHardwareUnavailable)
	}

	frames := [][]byte{framePowerOff}
	if on {
		frames = [][]byte{frameWhite, frameFullBrightness, framePowerOn}
	}

	for _, frame := range frames {
		if _, err := b.writer.WriteWithoutResponse(frame); err != nil {
			b.connected = false

			return fmt.Errorf("write frame: %w: %w", safety.ErrHardwareUnavailable, err)
		}
	}

	return nil
}

// Close powers the strip off and disconnects.
func (b *BLE) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.connected {
		_, _ = b.writer.WriteWithoutResponse(framePowerOff)
		b.connected = false
	}

	if b.device == nil {
		return nil
	}

	return b.device.Disconnect()
}
