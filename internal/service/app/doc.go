// Package app wires configuration, devices, the contact store and the strobe
// controller into the terminal UI and runs it.
package app
