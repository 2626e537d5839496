package network

import (
	"sync"

	"github.com/samvad-hq/netclient/pkg/httpclient"
)

// Client executes requests through a transport. It is safe for concurrent use
// and never changes after construction.
type Client struct {
	transport  httpclient.Client
	defaultEnv Environment
	log        Logger
}

// ClientOption customizes NewClient.
type ClientOption func(*Client)

// WithDefaultEnvironment binds the environment used by calls that do not pass OnEnvironment.
func WithDefaultEnvironment(env Environment) ClientOption {
	return func(c *Client) { c.defaultEnv = env }
}

// WithLogger routes request logs to log. Nil keeps the silent default.
func WithLogger(log Logger) ClientOption {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// NewClient builds a client. A nil transport falls back to a resty-backed one;
// per-request timeouts come from the resolved environment.
func NewClient(transport httpclient.Client, opts ...ClientOption) *Client {
	if transport == nil {
		transport = httpclient.NewRestyClient(0)
	}
	c := &Client{
		transport: transport,
		log:       noopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// DefaultEnvironment returns the environment bound at construction, if any.
func (c *Client) DefaultEnvironment() Environment { return c.defaultEnv }

var sharedClient = sync.OnceValue(func() *Client { return NewClient(nil) })

// CallOption customizes a single fetch.
type CallOption func(*callOptions)

type callOptions struct {
	env Environment
	enc Encoding
}

// OnEnvironment resolves this call against env, taking precedence over the client default.
func OnEnvironment(env Environment) CallOption {
	return func(o *callOptions) { o.env = env }
}

// WithEncoding selects the body encoding for this call. The default is EncodingJSON.
func WithEncoding(enc Encoding) CallOption {
	return func(o *callOptions) { o.enc = enc }
}

func (c *Client) resolve(opts []CallOption) (Environment, Encoding) {
	o := callOptions{enc: EncodingJSON}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	env := o.env
	if env == nil {
		env = c.defaultEnv
	}
	return env, o.enc
}
