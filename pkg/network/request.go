package network

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/samvad-hq/netclient/pkg/httpclient"
)

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*$`)

// Request pairs an endpoint and method with an optional body and headers.
// T is the type the response body is decoded into; it carries no runtime value.
type Request[T any] struct {
	endpoint      Endpoint
	method        Method
	body          any
	customHeaders map[string]string
}

// RequestOption customizes NewRequest.
type RequestOption func(*requestOptions)

type requestOptions struct {
	body    any
	headers map[string]string
}

// WithBody sets the value serialized as the request body.
func WithBody(body any) RequestOption {
	return func(o *requestOptions) { o.body = body }
}

// WithCustomHeaders sets per-request headers. They override environment headers with the same key.
func WithCustomHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) { o.headers = cloneHeaders(headers) }
}

// NewRequest validates and builds a request. GET requests with a body are rejected with ErrGETWithBody.
// A nil pointer, map, slice or interface body counts as no body.
func NewRequest[T any](endpoint Endpoint, method Method, opts ...RequestOption) (Request[T], error) {
	var o requestOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if isNilBody(o.body) {
		o.body = nil
	}
	if method == MethodGet && o.body != nil {
		return Request[T]{}, ErrGETWithBody
	}
	return Request[T]{
		endpoint:      endpoint,
		method:        method,
		body:          o.body,
		customHeaders: o.headers,
	}, nil
}

// Endpoint returns the target path and query items.
func (r Request[T]) Endpoint() Endpoint { return r.endpoint }

// Method returns the HTTP verb.
func (r Request[T]) Method() Method { return r.method }

// Body returns the value to encode, or nil when the request has none.
func (r Request[T]) Body() any { return r.body }

// CustomHeaders returns a copy of the per-request headers.
func (r Request[T]) CustomHeaders() map[string]string { return cloneHeaders(r.customHeaders) }

// Wire assembles the transport-ready request for env. A URL that cannot be
// built yields an *Error of KindURLRequestCreate.
//
// A body is attached only for POST and PUT with EncodingJSON, and then
// Content-Type is set to application/json. Other encodings send no body.
func (r Request[T]) Wire(env Environment, enc Encoding) (*httpclient.Request, error) {
	if env == nil {
		return nil, newError(KindMissingEnvironment, nil)
	}

	query := append(r.endpoint.QueryItems(), env.CommonQueries()...)
	rawURL, err := buildURL(schemeOf(env), env.Host(), r.endpoint.Path(), query)
	if err != nil {
		return nil, &Error{Kind: KindURLRequestCreate, Err: err}
	}

	headers := mergeHeaders(env.CommonHeaders(), r.customHeaders)

	var body []byte
	if enc == EncodingJSON && (r.method == MethodPost || r.method == MethodPut) {
		headers[http.CanonicalHeaderKey("Content-Type")] = contentTypeJSON
		body = enc.encode(r.body)
	}

	return &httpclient.Request{
		Method:  string(r.method),
		URL:     rawURL,
		Headers: headers,
		Body:    body,
		Timeout: timeoutOf(env),
	}, nil
}

// mergeHeaders returns common overlaid with custom under canonical header
// names, so keys differing only by case collide and custom wins.
func mergeHeaders(common, custom map[string]string) map[string]string {
	out := make(map[string]string, len(common)+len(custom))
	for _, src := range []map[string]string{common, custom} {
		for _, k := range sortedKeys(src) {
			out[http.CanonicalHeaderKey(k)] = src[k]
		}
	}
	return out
}

// sortedKeys orders keys so that case variants inside one map resolve the same way on every call.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNilBody(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func buildURL(scheme, host, path string, query []QueryItem) (string, error) {
	if !schemePattern.MatchString(scheme) {
		return "", fmt.Errorf("invalid scheme %q", scheme)
	}
	if strings.TrimSpace(host) == "" {
		return "", errors.New("host is empty")
	}
	if path != "" && !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("path %q must start with /", path)
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     path,
		RawQuery: encodeQuery(query),
	}
	raw := u.String()

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Host != host {
		return "", fmt.Errorf("invalid host %q", host)
	}
	return raw, nil
}
