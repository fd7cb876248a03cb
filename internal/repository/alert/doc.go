// Package alert implements persistence for the relay's last Alert.
//
// The FileRepository stores and loads the alert as JSON on disk and exposes a
// Repository interface that the relay service depends on.
package alert
