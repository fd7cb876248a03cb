package torch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// fakeLED creates an LED class directory with the given max brightness.
func fakeLED(t *testing.T, maxBrightness string) (root string, dir string) {
	t.Helper()

	root = t.TempDir()
	dir = filepath.Join(root, "white:flash")

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, brightnessFile), []byte("0"), 0o644))

	if maxBrightness != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, maxBrightnessFile), []byte(maxBrightness), 0o644))
	}

	return root, dir
}

// readBrightness returns the current brightness attribute.
func readBrightness(t *testing.T, dir string) string {
	t.Helper()

	contents, err := os.ReadFile(filepath.Join(dir, brightnessFile))
	require.NoError(t, err)

	return string(contents)
}

// TestSysfs_OnOff verifies full brightness on and zero off.
func TestSysfs_OnOff(t *testing.T) {
	t.Parallel()

	root, dir := fakeLED(t, "255\n")
	led := NewSysfs(root, "white:flash")

	require.True(t, led.Available())

	require.NoError(t, led.Set(context.Background(), true))
	require.Equal(t, "255", readBrightness(t, dir))

	require.NoError(t, led.Set(context.Background(), false))
	require.Equal(t, "0", readBrightness(t, dir))
}

// TestSysfs_DefaultMaxBrightness falls back to 1 without max_brightness.
func TestSysfs_DefaultMaxBrightness(t *testing.T) {
	t.Parallel()

	root, dir := fakeLED(t, "")
	led := NewSysfs(root, "white:flash")

	require.NoError(t, led.Set(context.Background(), true))
	require.Equal(t, "1", readBrightness(t, dir))
}

// TestSysfs_Missing reports HardwareUnavailable for an absent LED.
func TestSysfs_Missing(t *testing.T) {
	t.Parallel()

	led := NewSysfs(t.TempDir(), "missing")
	require.False(t, led.Available())
	require.ErrorIs(t, led.Set(context.Background(), true), safety.ErrHardwareUnavailable)
}

// TestNone is always unavailable.
func TestNone(t *testing.T) {
	t.Parallel()

	var d Driver = None{}
	require.False(t, d.Available())
	require.ErrorIs(t, d.Set(context.Background(), false), safety.ErrHardwareUnavailable)
}
