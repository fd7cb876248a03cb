package safety

import (
	"fmt"
	"math"
	"time"
)

const (
	// MinFlashSpeed is the shortest strobe half-period in seconds.
	MinFlashSpeed = 0.1
	// MaxFlashSpeed is the longest strobe half-period in seconds.
	MaxFlashSpeed = 2.0
	// DefaultFlashSpeed is the strobe half-period used at startup.
	DefaultFlashSpeed = 0.5
	// FlashSpeedStep is the slider increment.
	FlashSpeedStep = 0.1
)

// Color is the background color of the strobe screen.
type Color int

const (
	// ColorBlack is the neutral background.
	ColorBlack Color = iota
	// ColorWhite is the lit background.
	ColorWhite
)

// String implements fmt.Stringer.
func (c Color) String() string {
	if c == ColorWhite {
		return "white"
	}

	return "black"
}

// ColorFor maps the lamp state to a background color.
func ColorFor(on bool) Color {
	if on {
		return ColorWhite
	}

	return ColorBlack
}

// StrobeState is the toggle state of the strobe controller.
// FlashOn is only meaningful while IsFlashing is true.
type StrobeState struct {
	// IsFlashing reports whether the periodic alternation is running.
	IsFlashing bool
	// FlashOn is the current phase of the alternation.
	FlashOn bool
	// FlashSpeed is the interval between ticks in seconds, within [MinFlashSpeed, MaxFlashSpeed].
	FlashSpeed float64
	// DisplayFlashEnabled reports whether ticks also change the screen background.
	DisplayFlashEnabled bool
	// PanicActive reports whether panic mode is engaged.
	PanicActive bool
}

// NewStrobeState returns the startup state.
func NewStrobeState() StrobeState {
	return StrobeState{
		FlashSpeed:          DefaultFlashSpeed,
		DisplayFlashEnabled: true,
	}
}

// ClampFlashSpeed constrains seconds to [MinFlashSpeed, MaxFlashSpeed].
// NaN and infinities are rejected with ErrInvalidInput.
func ClampFlashSpeed(seconds float64) (float64, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("flash speed %v: %w", seconds, ErrInvalidInput)
	}

	return math.Min(math.Max(seconds, MinFlashSpeed), MaxFlashSpeed), nil
}

// FlashInterval converts a speed in seconds to a timer interval.
func FlashInterval(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// StepFlashSpeed moves seconds by the given number of slider steps,
// keeping the result on the 0.1 grid and inside the allowed range.
func StepFlashSpeed(seconds float64, steps int) float64 {
	next := math.Round((seconds+float64(steps)*FlashSpeedStep)*10) / 10

	return math.Min(math.Max(next, MinFlashSpeed), MaxFlashSpeed)
}
