// Package safety contains core domain types for the strobe and panic logic.
//
// It defines StrobeState (toggle state owned by the controller), Settings
// (the persisted emergency contact), Alert (a panic message forwarded to the
// relay) and the error taxonomy shared by drivers and services.
package safety
