// Package client talks to the tripcal backend.
//
// # Overview
//
// Client is the transport-agnostic contract: one method per backend
// operation. HTTPClient implements it over JSON/HTTP.
//
// Every response is normalized at this boundary. The payload is the "data"
// member when the body has one and the bare body otherwise. A failure may be
// signaled by a non-empty "error" or "errors" member or by "status":"error"
// with a "message"; all three are checked on every endpoint, so callers see a
// single error shape.
//
// # Error Handling
//
// Callers match with errors.Is / errors.As:
//
//   - ErrUnauthorized: the server rejected the session (HTTP 401/403).
//   - ErrUnavailable: the server could not be reached or answered with an
//     unreadable 5xx.
//   - *ServerError: the server reported a failure; Message is meant for the
//     user.
//
// Nothing is retried. All operations honor context cancellation.
package client
