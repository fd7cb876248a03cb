package torch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

const (
	// brightnessFile is the sysfs attribute holding the current level.
	brightnessFile = "brightness"
	// maxBrightnessFile is the sysfs attribute holding the full level.
	maxBrightnessFile = "max_brightness"
	// sysfsFileMode is used when writing attributes; sysfs ignores it.
	sysfsFileMode = 0o644
)

// Sysfs drives an LED class device, e.g. /sys/class/leds/white:flash.
type Sysfs struct {
	// dir is the LED class device directory.
	dir string
}

// NewSysfs returns a driver for the LED named led under root.
func NewSysfs(root, led string) *Sysfs {
	return &Sysfs{
		dir: filepath.Join(root, led),
	}
}

// Available implements Driver.
func (s *Sysfs) Available() bool {
	info, err := os.Stat(filepath.Join(s.dir, brightnessFile))

	return err == nil && !info.IsDir()
}

// Set implements Driver. "On" always writes max_brightness.
func (s *Sysfs) Set(_ context.Context, on bool) error {
	if !s.Available() {
		return fmt.Errorf("led %s: %w", s.dir, safety.ErrHardwareUnavailable)
	}

	level := 0

	if on {
		full, err := s.maxBrightness()
		if err != nil {
			return err
		}

		level = full
	}

	path := filepath.Join(s.dir, brightnessFile)
	if err := os.WriteFile(path, []byte(strconv.Itoa(level)), sysfsFileMode); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("write %s: %w: %w", path, safety.ErrHardwareUnavailable, err)
		}

		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// maxBrightness reads the full level of the LED, defaulting to 1 when the
// attribute is missing.
func (s *Sysfs) maxBrightness() (int, error) {
	contents, err := os.ReadFile(filepath.Join(s.dir, maxBrightnessFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 1, nil
		}

		return 0, fmt.Errorf("read max brightness: %w", err)
	}

	level, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil {
		return 0, fmt.Errorf("parse max brightness: %w", err)
	}

	return level, nil
}
