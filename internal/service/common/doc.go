// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for walk-buddy-relay with timeouts
// and a helper to detect the current system actor (hostname/username) that
// is attached to relayed alerts.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
