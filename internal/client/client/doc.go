// Package client is the console client's connection to the rollcall server.
//
// GRPCClient wraps the typed rpc stub, attaches the access token to every
// call and maps gRPC statuses back to sentinel errors: the domain errors of
// internal/common when the server reported one, otherwise ErrUnauthorized or
// ErrUnavailable.
package client
