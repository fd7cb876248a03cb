// Package settings provides the emergency contact store and the commands
// that read and change it from the CLI.
package settings
