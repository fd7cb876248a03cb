// Package relay runs walk-buddy-relay: a gRPC server that accepts panic
// alerts from walk-buddy instances, delivers them with its own message
// sender and remembers the most recent one.
package relay
