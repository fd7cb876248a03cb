// Package sos runs panic mode without the terminal UI, for scripts and
// global hotkeys: strobe, alarm and the emergency message until a timeout
// or a signal.
package sos
