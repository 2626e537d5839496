package network

import "time"

// Defaults applied when an Environment leaves scheme or timeout unset.
const (
	DefaultScheme  = "https"
	DefaultTimeout = 30 * time.Second
)

// Environment is the deployment configuration a request is resolved against.
// Implementations returning an empty Scheme or a non-positive Timeout get
// DefaultScheme and DefaultTimeout.
type Environment interface {
	Scheme() string
	Host() string
	CommonHeaders() map[string]string
	CommonQueries() []QueryItem
	Timeout() time.Duration
}

// EnvironmentOption customizes NewEnvironment.
type EnvironmentOption func(*environment)

// WithName labels the environment; String reports it instead of the host.
func WithName(name string) EnvironmentOption {
	return func(e *environment) { e.name = name }
}

// WithScheme sets the URL scheme. Empty means DefaultScheme.
func WithScheme(scheme string) EnvironmentOption {
	return func(e *environment) { e.scheme = scheme }
}

// WithCommonHeaders sets the headers sent with every request.
func WithCommonHeaders(headers map[string]string) EnvironmentOption {
	return func(e *environment) { e.headers = cloneHeaders(headers) }
}

// WithCommonQueries sets the query items appended to every request.
func WithCommonQueries(queries ...QueryItem) EnvironmentOption {
	return func(e *environment) { e.queries = cloneQueryItems(queries) }
}

// WithTimeout sets the per-request timeout. Non-positive means DefaultTimeout.
func WithTimeout(timeout time.Duration) EnvironmentOption {
	return func(e *environment) { e.timeout = timeout }
}

type environment struct {
	name    string
	scheme  string
	host    string
	headers map[string]string
	queries []QueryItem
	timeout time.Duration
}

// NewEnvironment returns an immutable Environment for host.
func NewEnvironment(host string, opts ...EnvironmentOption) Environment {
	e := &environment{host: host}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.scheme == "" {
		e.scheme = DefaultScheme
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	if e.headers == nil {
		e.headers = map[string]string{}
	}
	return e
}

func (e *environment) Scheme() string                   { return e.scheme }
func (e *environment) Host() string                     { return e.host }
func (e *environment) CommonHeaders() map[string]string { return cloneHeaders(e.headers) }
func (e *environment) CommonQueries() []QueryItem       { return cloneQueryItems(e.queries) }
func (e *environment) Timeout() time.Duration           { return e.timeout }

// String returns the environment name, falling back to the host.
func (e *environment) String() string {
	if e.name != "" {
		return e.name
	}
	return e.host
}

func schemeOf(env Environment) string {
	if s := env.Scheme(); s != "" {
		return s
	}
	return DefaultScheme
}

func timeoutOf(env Environment) time.Duration {
	if t := env.Timeout(); t > 0 {
		return t
	}
	return DefaultTimeout
}

func cloneHeaders(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
