// Package relay implements the gRPC transport layer for the panic relay.
//
// The PanicRelay service carries alerts as google.protobuf.Struct payloads;
// this package holds the service descriptor, a thin client stub, the server
// adapter and the conversions between Struct and domain types.
package relay
