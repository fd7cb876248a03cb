// Package ui is the Bubble Tea terminal interface of walk-buddy: the
// panic/strobe screen and the emergency contact settings screen.
//
// The model only renders controller snapshots and forwards key presses; the
// strobe controller stays the single owner of the strobe state.
package ui
