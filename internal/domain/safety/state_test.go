package safety

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNewStrobeState verifies the startup defaults.
func TestNewStrobeState(t *testing.T) {
	t.Parallel()

	s := NewStrobeState()
	require.False(t, s.IsFlashing)
	require.False(t, s.FlashOn)
	require.False(t, s.PanicActive)
	require.True(t, s.DisplayFlashEnabled)
	require.InDelta(t, DefaultFlashSpeed, s.FlashSpeed, 1e-9)
}

// TestClampFlashSpeed checks range clamping and rejection of non-finite values.
func TestClampFlashSpeed(t *testing.T) {
	t.Parallel()

	cases := map[float64]float64{
		0.05: MinFlashSpeed,
		0.1:  0.1,
		1.3:  1.3,
		2.0:  2.0,
		7:    MaxFlashSpeed,
		-1:   MinFlashSpeed,
	}
	for in, want := range cases {
		got, err := ClampFlashSpeed(in)
		require.NoError(t, err)
		require.InDelta(t, want, got, 1e-9)
	}

	_, err := ClampFlashSpeed(math.NaN())
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ClampFlashSpeed(math.Inf(1))
	require.ErrorIs(t, err, ErrInvalidInput)
}

// TestFlashInterval ensures seconds convert to exact millisecond intervals.
func TestFlashInterval(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100*time.Millisecond, FlashInterval(0.1))
	require.Equal(t, 500*time.Millisecond, FlashInterval(0.5))
	require.Equal(t, 2*time.Second, FlashInterval(2.0))
}

// TestStepFlashSpeed walks the slider grid and its bounds.
func TestStepFlashSpeed(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 0.6, StepFlashSpeed(0.5, 1), 1e-9)
	require.InDelta(t, 0.4, StepFlashSpeed(0.5, -1), 1e-9)
	require.InDelta(t, MinFlashSpeed, StepFlashSpeed(0.1, -1), 1e-9)
	require.InDelta(t, MaxFlashSpeed, StepFlashSpeed(2.0, 3), 1e-9)

	speed := MinFlashSpeed
	for range 19 {
		speed = StepFlashSpeed(speed, 1)
	}

	require.InDelta(t, MaxFlashSpeed, speed, 1e-9)
}

// TestColorFor maps lamp phase to background color.
func TestColorFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, ColorWhite, ColorFor(true))
	require.Equal(t, ColorBlack, ColorFor(false))
	require.Equal(t, "black", ColorBlack.String())
}
