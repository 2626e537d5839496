package network

import (
	"errors"
	"fmt"
)

// Kind enumerates every failure a fetch can end in.
type Kind int

const (
	KindUnknown Kind = iota
	// KindURLRequestCreate: the wire request could not be assembled.
	KindURLRequestCreate
	// KindGeneric: the transport failed; Message holds its description.
	KindGeneric
	// KindHTTPResponse: the transport returned no HTTP response.
	KindHTTPResponse
	// KindHTTPData: a successful response carried no body.
	KindHTTPData
	// KindHTTPDataParsing: the body could not be decoded into the requested type.
	KindHTTPDataParsing
	KindInformational
	KindRedirection
	KindClientError
	KindServerError
	// KindUnexpected: the status code is outside 100-599.
	KindUnexpected
	// KindMissingEnvironment: neither the call nor the client supplied an environment.
	KindMissingEnvironment
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindURLRequestCreate:   "url_request_create_error",
	KindGeneric:            "generic_error",
	KindHTTPResponse:       "http_response_error",
	KindHTTPData:           "http_data_error",
	KindHTTPDataParsing:    "http_data_parsing_error",
	KindInformational:      "informational_response",
	KindRedirection:        "redirection",
	KindClientError:        "client_error",
	KindServerError:        "server_error",
	KindUnexpected:         "unexpected_error",
	KindMissingEnvironment: "missing_environment",
}

// String returns the snake_case kind name, or kind(N) for values outside the set.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single error type surfaced by Fetch.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("network: %s: %s", e.Kind, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("network: %s (status %d)", e.Kind, e.StatusCode)
	default:
		return "network: " + e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the Err* sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrURLRequestCreate   = &Error{Kind: KindURLRequestCreate}
	ErrGeneric            = &Error{Kind: KindGeneric}
	ErrHTTPResponse       = &Error{Kind: KindHTTPResponse}
	ErrHTTPData           = &Error{Kind: KindHTTPData}
	ErrHTTPDataParsing    = &Error{Kind: KindHTTPDataParsing}
	ErrInformational      = &Error{Kind: KindInformational}
	ErrRedirection        = &Error{Kind: KindRedirection}
	ErrClientError        = &Error{Kind: KindClientError}
	ErrServerError        = &Error{Kind: KindServerError}
	ErrUnexpected         = &Error{Kind: KindUnexpected}
	ErrMissingEnvironment = &Error{Kind: KindMissingEnvironment}
)

// ErrGETWithBody is returned by NewRequest when a GET request is given a body.
var ErrGETWithBody = errors.New("network: GET request must not carry a body")

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.Kind
	}
	return KindUnknown
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}
