// Package integration holds end-to-end tests that run walk-buddy-relay on a
// local port and drive it through the real client, device factory and strobe
// controller.
package integration
