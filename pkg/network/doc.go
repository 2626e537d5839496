// Package network builds typed HTTP requests from endpoints and environments,
// executes them through an injected transport, and classifies the outcome.
//
// A Request records the response type it expects; Fetch resolves the request
// against an Environment, sends it, maps the status code and body onto the
// closed Kind taxonomy, and returns either the decoded value or an *Error.
package network
