package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate_Defaults checks that an empty configuration is completed with defaults.
func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	cfg := new(Config)
	require.NoError(t, Validate(cfg))

	require.Equal(t, DefaultSettingsFilename, cfg.SettingsFile)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.InDelta(t, 0.5, cfg.FlashSpeed, 1e-9)
	require.NotNil(t, cfg.DisplayFlash)
	require.True(t, *cfg.DisplayFlash)
	require.Equal(t, TorchDriverSysfs, cfg.Torch.Driver)
	require.Equal(t, AlarmDriverCommand, cfg.Alarm.Driver)
	require.Equal(t, DefaultAlarmCommand, cfg.Alarm.Command)
	require.Equal(t, MessageDriverKDEConnect, cfg.Message.Driver)
	require.Equal(t, DriverNone, cfg.Relay.Delivery.Driver)
	require.Equal(t, DefaultListenAddress, cfg.Relay.ListenAddress)
}

// TestValidate_Errors checks driver validation failures.
func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Unknown torch driver.
	require.Error(t, Validate(&Config{Torch: TorchConfig{Driver: "laser"}}))

	// BLE without address.
	require.Error(t, Validate(&Config{Torch: TorchConfig{Driver: TorchDriverBLE}}))

	// Relay sender without address.
	require.Error(t, Validate(&Config{Message: MessageConfig{Driver: MessageDriverRelay}}))

	// Bad relay address.
	require.Error(t, Validate(&Config{Message: MessageConfig{Driver: MessageDriverRelay, RelayAddress: "bad:address"}}))

	// Empty alarm command.
	require.Error(t, Validate(&Config{Alarm: AlarmConfig{Command: []string{}}}))

	// Discovered relay address.
	require.NoError(t, Validate(&Config{Message: MessageConfig{Driver: MessageDriverRelay, RelayAddress: RelayAddressAuto}}))

	// Relay delivering to itself.
	require.Error(t, Validate(&Config{Relay: RelayConfig{Delivery: MessageConfig{
		Driver:       MessageDriverRelay,
		RelayAddress: "127.0.0.1:50051",
	}}}))

	// Okay with relay sender.
	require.NoError(t, Validate(&Config{Message: MessageConfig{
		Driver:       MessageDriverRelay,
		RelayAddress: "127.0.0.1:50051",
	}}))
}

// TestValidate_ClampsFlashSpeed ensures out-of-range speeds are clamped.
func TestValidate_ClampsFlashSpeed(t *testing.T) {
	t.Parallel()

	cfg := &Config{FlashSpeed: 9}
	require.NoError(t, Validate(cfg))
	require.InDelta(t, 2.0, cfg.FlashSpeed, 1e-9)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "walk-buddy.yaml")

	disabled := false
	cfg := &Config{
		SettingsFile: filepath.Join(dir, "settings.json"),
		FlashSpeed:   0.3,
		DisplayFlash: &disabled,
		Timeout:      2 * time.Second,
		Torch: TorchConfig{
			Driver: TorchDriverSysfs,
			LED:    "white:flash",
		},
		Message: MessageConfig{
			Driver:       MessageDriverRelay,
			RelayAddress: "127.0.0.1:50051",
		},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.SettingsFile, loaded.SettingsFile)
	require.InDelta(t, 0.3, loaded.FlashSpeed, 1e-9)
	require.False(t, *loaded.DisplayFlash)
	require.Equal(t, cfg.Timeout, loaded.Timeout)
	require.Equal(t, "white:flash", loaded.Torch.LED)
	require.Equal(t, "127.0.0.1:50051", loaded.Message.RelayAddress)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingFile distinguishes explicit paths from the default location.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
