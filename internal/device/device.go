package device

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/device/alarm"
	"github.com/oshokin/walk-buddy/internal/device/message"
	"github.com/oshokin/walk-buddy/internal/device/torch"
	"github.com/oshokin/walk-buddy/internal/discovery"
	"github.com/oshokin/walk-buddy/internal/logger"
	"github.com/oshokin/walk-buddy/internal/service/common"
)

// Set is the collection of drivers used by the strobe controller.
type Set struct {
	// Torch is the lamp driver.
	Torch torch.Driver
	// Alarm is the audible alarm player.
	Alarm alarm.Player
	// Messages opens the emergency sms: URI.
	Messages message.Sender

	// closers release connections opened while building the set.
	closers []io.Closer
}

// New builds the drivers selected in cfg.
func New(ctx context.Context, cfg *config.Config) *Set {
	set := new(Set)

	var closer io.Closer

	set.Torch, closer = NewTorch(ctx, cfg.Torch, cfg.Timeout)
	set.addCloser(closer)

	set.Alarm = NewAlarm(ctx, cfg.Alarm, os.Stderr)

	set.Messages, closer = NewMessageSender(ctx, cfg.Message, cfg.Timeout)
	set.addCloser(closer)

	logger.DebugKV(ctx, "Devices ready",
		"torch", cfg.Torch.Driver,
		"torch_available", set.Torch.Available(),
		"alarm", cfg.Alarm.Driver,
		"message", cfg.Message.Driver,
	)

	return set
}

// Close releases every connection held by the set.
func (s *Set) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	errs := make([]error, 0, len(s.closers))

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			logger.WarnKV(ctx, "Failed to release device", "error", err)
			errs = append(errs, err)
		}
	}

	s.closers = nil

	return errors.Join(errs...)
}

func (s *Set) addCloser(c io.Closer) {
	if c != nil {
		s.closers = append(s.closers, c)
	}
}

// NewTorch builds the torch driver. The returned closer is nil unless the
// driver holds a connection.
func NewTorch(ctx context.Context, cfg config.TorchConfig, timeout time.Duration) (torch.Driver, io.Closer) {
	switch cfg.Driver {
	case config.TorchDriverSysfs:
		driver := torch.NewSysfs(cfg.LEDsRoot, cfg.LED)
		if !driver.Available() {
			logger.WarnKV(ctx, "Torch LED not found, flashing the screen only",
				"leds_root", cfg.LEDsRoot,
				"led", cfg.LED,
			)
		}

		return driver, nil
	case config.TorchDriverBLE:
		dialCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		driver, err := torch.DialBLE(dialCtx, cfg.BLEAddress)
		if err != nil {
			logger.WarnKV(ctx, "BLE torch unavailable, flashing the screen only",
				"address", cfg.BLEAddress,
				"error", err,
			)

			return torch.None{}, nil
		}

		return driver, driver
	default:
		return torch.None{}, nil
	}
}

// NewAlarm builds the alarm player; the bell writes to out.
func NewAlarm(ctx context.Context, cfg config.AlarmConfig, out io.Writer) alarm.Player {
	switch cfg.Driver {
	case config.AlarmDriverCommand:
		player, err := alarm.NewCommand(ctx, cfg.Command)
		if err != nil {
			logger.WarnKV(ctx, "Alarm player unavailable, alarm is silent", "error", err)

			return alarm.None{}
		}

		return player
	case config.AlarmDriverBell:
		return alarm.NewBell(ctx, out, cfg.BellInterval)
	default:
		return alarm.None{}
	}
}

// NewMessageSender builds the outbound message sender. The returned closer is
// nil unless the sender holds a connection.
func NewMessageSender(
	ctx context.Context,
	cfg config.MessageConfig,
	timeout time.Duration,
) (message.Sender, io.Closer) {
	switch cfg.Driver {
	case config.MessageDriverKDEConnect:
		return message.NewKDEConnect(cfg.DeviceID), nil
	case config.MessageDriverOpener:
		return message.NewOpener(cfg.Opener), nil
	case config.MessageDriverRelay:
		return newRelaySender(ctx, cfg.RelayAddress, timeout)
	default:
		return message.None{}, nil
	}
}

// newRelaySender connects to walk-buddy-relay.
func newRelaySender(ctx context.Context, address string, timeout time.Duration) (message.Sender, io.Closer) {
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Failed to detect actor, alerts will be anonymous", "error", err)
	}

	if address == config.RelayAddressAuto {
		lookupCtx, cancel := context.WithTimeout(ctx, timeout)
		found, err := discovery.Lookup(lookupCtx)

		cancel()

		if err != nil {
			logger.WarnKV(ctx, "Relay not found on the local network, messaging disabled", "error", err)

			return message.None{}, nil
		}

		address = found
	}

	client, err := common.Dial(ctx, address, common.WithCallTimeout(timeout))
	if err != nil {
		logger.WarnKV(ctx, "Relay unavailable, messaging disabled", "relay_addr", address, "error", err)

		return message.None{}, nil
	}

	return message.NewRelay(client, actor), client
}
