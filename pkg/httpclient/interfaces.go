package httpclient

import (
	"context"
	"net/http"
	"time"
)

// Request is a fully assembled, transport-ready HTTP request.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte // sent only when non-nil
	Timeout time.Duration
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// A nil Response with a nil error means the transport produced no HTTP response.
type Client interface {
	Do(ctx context.Context, req *Request) (Response, error)
}

// ClientFunc lets an ordinary function act as a Client.
type ClientFunc func(ctx context.Context, req *Request) (Response, error)

// Do calls f.
func (f ClientFunc) Do(ctx context.Context, req *Request) (Response, error) { return f(ctx, req) }

// NewResponse builds an in-memory Response, useful for fakes and custom transports.
func NewResponse(status int, header http.Header, body []byte) Response {
	if header == nil {
		header = http.Header{}
	}
	return &staticResponse{status: status, header: header, body: body}
}

type staticResponse struct {
	status int
	header http.Header
	body   []byte
}

func (r *staticResponse) Body() []byte        { return r.body }
func (r *staticResponse) StatusCode() int     { return r.status }
func (r *staticResponse) Header() http.Header { return r.header }
