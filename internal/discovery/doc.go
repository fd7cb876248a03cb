// Package discovery advertises walk-buddy-relay on the local network with
// mDNS/DNS-SD and lets walk-buddy find it when the relay address is "auto".
package discovery
