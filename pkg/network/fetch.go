package network

import (
	"context"

	"github.com/samvad-hq/netclient/pkg/httpclient"
)

// Result is the single outcome delivered by FetchAsync.
type Result[T any] struct {
	Value T
	Err   error
}

// Unwrap returns the value and error as a pair.
func (r Result[T]) Unwrap() (T, error) { return r.Value, r.Err }

// Fetch executes req and decodes a JSON response body into T.
func Fetch[T any](ctx context.Context, c *Client, req Request[T], opts ...CallOption) (T, error) {
	return FetchWith[T](ctx, c, req, JSONDecoding[T]{}, opts...)
}

// FetchWith executes req and decodes the body with dec. Every failure is an
// *Error; the steps run in order and stop at the first failure:
//
//	no environment          KindMissingEnvironment (no I/O happens)
//	URL cannot be built     KindURLRequestCreate
//	transport error         KindGeneric
//	no HTTP response        KindHTTPResponse
//	status outside 2xx      status family kind; the body is not read
//	empty body              KindHTTPData
//	body does not decode    KindHTTPDataParsing
//
// A nil client uses a shared resty-backed client with no default environment.
func FetchWith[T any](ctx context.Context, c *Client, req Request[T], dec Decoding[T], opts ...CallOption) (T, error) {
	var zero T
	if c == nil {
		c = sharedClient()
	}
	if dec == nil {
		dec = JSONDecoding[T]{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	env, enc := c.resolve(opts)
	if env == nil {
		return zero, c.fail(nil, newError(KindMissingEnvironment, nil))
	}

	wire, err := req.Wire(env, enc)
	if err != nil {
		return zero, c.fail(nil, err)
	}

	c.log.DebugObj("network request dispatched", "network_request", map[string]any{
		"method":     wire.Method,
		"url":        wire.URL,
		"has_body":   wire.Body != nil,
		"timeout_ms": wire.Timeout.Milliseconds(),
	})

	resp, err := c.transport.Do(ctx, wire)
	if err != nil {
		return zero, c.fail(wire, &Error{Kind: KindGeneric, Message: err.Error(), Err: err})
	}
	if resp == nil {
		return zero, c.fail(wire, newError(KindHTTPResponse, nil))
	}

	status := StatusCode(resp.StatusCode())
	if err := status.Classify(); err != nil {
		return zero, c.fail(wire, err)
	}

	body := resp.Body()
	if len(body) == 0 {
		return zero, c.fail(wire, &Error{Kind: KindHTTPData, StatusCode: int(status)})
	}

	value, ok := dec.Decode(body)
	if !ok {
		return zero, c.fail(wire, &Error{Kind: KindHTTPDataParsing, StatusCode: int(status)})
	}

	c.log.DebugObj("network request completed", "network_response", map[string]any{
		"method":     wire.Method,
		"url":        wire.URL,
		"status":     int(status),
		"body_bytes": len(body),
	})
	return value, nil
}

// FetchAsync runs FetchWith on its own goroutine. The returned channel yields
// exactly one Result and is then closed.
func FetchAsync[T any](ctx context.Context, c *Client, req Request[T], dec Decoding[T], opts ...CallOption) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		v, err := FetchWith[T](ctx, c, req, dec, opts...)
		out <- Result[T]{Value: v, Err: err}
	}()
	return out
}

func (c *Client) fail(wire *httpclient.Request, err error) error {
	fields := map[string]any{
		"kind":  KindOf(err).String(),
		"error": err.Error(),
	}
	if wire != nil {
		fields["method"] = wire.Method
		fields["url"] = wire.URL
	}
	c.log.WarnObj("network request failed", "network_error", fields)
	return err
}
