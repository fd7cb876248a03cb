package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// Config holds the settings shared by the walk-buddy binaries.
type Config struct {
	// SettingsFile is the path to the JSON file storing the emergency contact.
	SettingsFile string `yaml:"settings_file"`
	// LogFile receives log output while the terminal UI owns the screen.
	LogFile string `yaml:"log_file"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
	// FlashSpeed is the initial strobe interval in seconds.
	FlashSpeed float64 `yaml:"flash_speed"`
	// DisplayFlash enables the screen strobe on startup.
	DisplayFlash *bool `yaml:"display_flash"`
	// Timeout is the duration for device and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// Torch selects and configures the torch driver.
	Torch TorchConfig `yaml:"torch"`
	// Alarm selects and configures the alarm player.
	Alarm AlarmConfig `yaml:"alarm"`
	// Message selects and configures the outbound message sender.
	Message MessageConfig `yaml:"message"`
	// Relay configures the walk-buddy-relay server.
	Relay RelayConfig `yaml:"relay"`
}

// TorchConfig configures the torch driver.
type TorchConfig struct {
	// Driver is one of TorchDriverSysfs, TorchDriverBLE or DriverNone.
	Driver string `yaml:"driver"`
	// LEDsRoot is the sysfs directory holding LED class devices.
	LEDsRoot string `yaml:"leds_root"`
	// LED is the sysfs LED name, e.g. "white:flash".
	LED string `yaml:"led"`
	// BLEAddress is the MAC address (or platform UUID) of a BLE LED strip.
	BLEAddress string `yaml:"ble_address"`
}

// AlarmConfig configures the alarm player.
type AlarmConfig struct {
	// Driver is one of AlarmDriverCommand, AlarmDriverBell or DriverNone.
	Driver string `yaml:"driver"`
	// Command is the player invocation repeated while the alarm sounds.
	Command []string `yaml:"command"`
	// BellInterval is the pause between terminal bells.
	BellInterval time.Duration `yaml:"bell_interval"`
}

// MessageConfig configures an outbound message sender.
type MessageConfig struct {
	// Driver is one of MessageDriverKDEConnect, MessageDriverOpener, MessageDriverRelay or DriverNone.
	Driver string `yaml:"driver"`
	// DeviceID is the KDE Connect device that sends the SMS; empty selects the first reachable one.
	DeviceID string `yaml:"device_id"`
	// Opener is the program that opens sms: URIs.
	Opener string `yaml:"opener"`
	// RelayAddress is the gRPC address of walk-buddy-relay, or RelayAddressAuto to find it with mDNS.
	RelayAddress string `yaml:"relay_addr"`
}

// RelayConfig configures the relay server.
type RelayConfig struct {
	// ListenAddress is the gRPC listen address.
	ListenAddress string `yaml:"listen_addr"`
	// AlertFile is the path to the JSON file storing the last alert.
	AlertFile string `yaml:"alert_file"`
	// Delivery is the sender the relay uses to deliver alerts.
	Delivery MessageConfig `yaml:"delivery"`
	// Advertise publishes the relay on the local network with mDNS.
	Advertise bool `yaml:"advertise"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "walk-buddy.yaml"

	// DefaultSettingsFilename is the default filename for the contact JSON.
	DefaultSettingsFilename = "walk-buddy-settings.json"

	// DefaultLogFilename is the default log file used by the terminal UI.
	DefaultLogFilename = "walk-buddy.log"

	// DefaultAlertFilename is the default filename for the relay's last alert.
	DefaultAlertFilename = "walk-buddy-last-alert.json"

	// DefaultLEDsRoot is the sysfs LED class directory.
	DefaultLEDsRoot = "/sys/class/leds"

	// DefaultListenAddress is the default relay listen address.
	DefaultListenAddress = ":50051"

	// RelayAddressAuto makes the relay sender discover the relay with mDNS.
	RelayAddressAuto = "auto"

	// DefaultOpener is the default sms: URI opener.
	DefaultOpener = "xdg-open"

	// DefaultTimeout is the default duration for device and network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultBellInterval is the default pause between terminal bells.
	DefaultBellInterval = 700 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Driver names.
const (
	DriverNone = "none"

	TorchDriverSysfs = "sysfs"
	TorchDriverBLE   = "ble"

	AlarmDriverCommand = "command"
	AlarmDriverBell    = "bell"

	MessageDriverKDEConnect = "kdeconnect"
	MessageDriverOpener     = "opener"
	MessageDriverRelay      = "relay"
)

// DefaultAlarmCommand plays the freedesktop alarm sound through PulseAudio/PipeWire.
//
//nolint:gochecknoglobals // Slices cannot be constants.
var DefaultAlarmCommand = []string{"paplay", "/usr/share/sounds/freedesktop/stereo/alarm-clock-elapsed.oga"}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownDriver is returned for unsupported driver names.
	errUnknownDriver = errors.New("unknown driver")
	// errRelayAddressRequired is returned when the relay sender has no address.
	errRelayAddressRequired = errors.New("relay address must be provided")
	// errEmptyCommand is returned when the command alarm has nothing to run.
	errEmptyCommand = errors.New("alarm command must not be empty")
	// errBLEAddressRequired is returned when the BLE torch has no address.
	errBLEAddressRequired = errors.New("ble address must be provided")
)

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := new(Config)

	// Defaults never fail validation.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default location yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultConfigFilename {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks driver selections.
//
//nolint:cyclop // One branch per field keeps defaults readable.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.SettingsFile == "" {
		cfg.SettingsFile = DefaultSettingsFilename
	}

	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFilename
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.FlashSpeed == 0 {
		cfg.FlashSpeed = safety.DefaultFlashSpeed
	}

	speed, err := safety.ClampFlashSpeed(cfg.FlashSpeed)
	if err != nil {
		return fmt.Errorf("invalid flash speed: %w", err)
	}

	cfg.FlashSpeed = speed

	if cfg.DisplayFlash == nil {
		enabled := true
		cfg.DisplayFlash = &enabled
	}

	if err := validateTorch(&cfg.Torch); err != nil {
		return fmt.Errorf("torch: %w", err)
	}

	if err := validateAlarm(&cfg.Alarm); err != nil {
		return fmt.Errorf("alarm: %w", err)
	}

	if err := validateMessage(&cfg.Message); err != nil {
		return fmt.Errorf("message: %w", err)
	}

	return validateRelay(&cfg.Relay)
}

func validateTorch(t *TorchConfig) error {
	if t.Driver == "" {
		t.Driver = TorchDriverSysfs
	}

	if t.LEDsRoot == "" {
		t.LEDsRoot = DefaultLEDsRoot
	}

	switch t.Driver {
	case TorchDriverSysfs, DriverNone:
		return nil
	case TorchDriverBLE:
		if t.BLEAddress == "" {
			return errBLEAddressRequired
		}

		return nil
	default:
		return fmt.Errorf("%q: %w", t.Driver, errUnknownDriver)
	}
}

func validateAlarm(a *AlarmConfig) error {
	if a.Driver == "" {
		a.Driver = AlarmDriverCommand
	}

	if a.BellInterval <= 0 {
		a.BellInterval = DefaultBellInterval
	}

	switch a.Driver {
	case AlarmDriverCommand:
		if a.Command == nil {
			a.Command = slices.Clone(DefaultAlarmCommand)
		}

		if len(a.Command) == 0 || a.Command[0] == "" {
			return errEmptyCommand
		}

		return nil
	case AlarmDriverBell, DriverNone:
		return nil
	default:
		return fmt.Errorf("%q: %w", a.Driver, errUnknownDriver)
	}
}

func validateMessage(m *MessageConfig) error {
	if m.Driver == "" {
		m.Driver = MessageDriverKDEConnect
	}

	if m.Opener == "" {
		m.Opener = DefaultOpener
	}

	switch m.Driver {
	case MessageDriverKDEConnect, MessageDriverOpener, DriverNone:
		return nil
	case MessageDriverRelay:
		if m.RelayAddress == "" {
			return errRelayAddressRequired
		}

		if m.RelayAddress == RelayAddressAuto {
			return nil
		}

		if _, err := net.ResolveTCPAddr("tcp", m.RelayAddress); err != nil {
			return fmt.Errorf("invalid relay address: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%q: %w", m.Driver, errUnknownDriver)
	}
}

func validateRelay(r *RelayConfig) error {
	if r.ListenAddress == "" {
		r.ListenAddress = DefaultListenAddress
	}

	if r.AlertFile == "" {
		r.AlertFile = DefaultAlertFilename
	}

	if r.Delivery.Driver == "" {
		r.Delivery.Driver = DriverNone
	}

	// The relay must not forward alerts back to a relay.
	if r.Delivery.Driver == MessageDriverRelay {
		return fmt.Errorf("relay delivery %q: %w", r.Delivery.Driver, errUnknownDriver)
	}

	if err := validateMessage(&r.Delivery); err != nil {
		return fmt.Errorf("relay delivery: %w", err)
	}

	return nil
}
