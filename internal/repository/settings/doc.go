// Package settings implements persistence for the user Settings.
//
// The FileRepository stores the settings as a JSON key-value document on disk
// and exposes a Repository interface that the settings store depends on.
package settings
