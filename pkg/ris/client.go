package ris

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/bft-labs/risclient/pkg/log"
)

// ErrNoTransport is returned (wrapped in *TransportError) when Process
// is called on a client without a transport.
var ErrNoTransport = errors.New("no transport configured")

// Client drives the validate -> send -> parse pipeline against the
// scoring service. It holds the active transport and a validator; it
// keeps no per-call state, so the only mutation after construction is
// SetTransport. Each Process call issues exactly one request: retry
// policy belongs to the caller.
type Client struct {
	validator *Validator
	logger    log.Logger

	// httpClient is forwarded to transports built by the convenience
	// constructors; injected transports ignore it.
	httpClient HTTPClient

	mu        sync.RWMutex
	transport Transport
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client's logger. The default discards all output.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets the HTTP client used by transports built through
// the convenience constructors.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a client around an injected transport. This is the seam
// for testing with a fake transport.
func New(transport Transport, opts ...Option) *Client {
	c := &Client{
		validator: NewValidator(),
		logger:    log.NewNoop(),
		transport: transport,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCertClient creates a client using certificate authentication: the
// PKCS12 container at p12Path is unlocked with the pass phrase and
// presented over mutual TLS.
func NewCertClient(passphrase, endpoint, p12Path string, opts ...Option) (*Client, error) {
	c := New(nil, opts...)
	t, err := NewCertTransport(passphrase, endpoint, p12Path, c.httpClient, c.logger)
	if err != nil {
		return nil, err
	}
	c.transport = t
	return c, nil
}

// NewCertClientFromReader is NewCertClient for an already-open PKCS12
// byte stream.
func NewCertClientFromReader(passphrase, endpoint string, p12 io.Reader, opts ...Option) (*Client, error) {
	c := New(nil, opts...)
	t, err := NewCertTransportFromReader(passphrase, endpoint, p12, c.httpClient, c.logger)
	if err != nil {
		return nil, err
	}
	c.transport = t
	return c, nil
}

// NewKeyClient creates a client using API-key authentication.
func NewKeyClient(endpoint, key string, opts ...Option) *Client {
	c := New(nil, opts...)
	c.transport = NewKeyTransport(endpoint, key, c.httpClient, c.logger)
	return c
}

// NewKeyClientFromFile is NewKeyClient with the key loaded from a file
// and trimmed of surrounding whitespace.
func NewKeyClientFromFile(endpoint, keyPath string, opts ...Option) (*Client, error) {
	c := New(nil, opts...)
	t, err := NewKeyTransportFromFile(endpoint, keyPath, c.httpClient, c.logger)
	if err != nil {
		return nil, err
	}
	c.transport = t
	return c, nil
}

// SetTransport replaces the active transport. Safe to call while other
// goroutines run Process; in-flight calls keep the transport they
// started with.
func (c *Client) SetTransport(t Transport) {
	c.mu.Lock()
	c.transport = t
	c.mu.Unlock()
}

// Process validates the request, sends it through the active
// transport, and parses the reply. The pipeline fails fast: the first
// failing stage terminates the call and no partial Response is ever
// returned. The error is exactly one of three kinds, inspectable with
// errors.As:
//
//   - *ValidationError: the request violates the rule set; the
//     transport was never invoked.
//   - *TransportError: sending failed, or closing the reply stream
//     failed after a successful parse (the parsed result is discarded
//     in that case; strict cleanup wins over a possibly-valid result).
//   - *ResponseError: the reply stream was malformed or unreadable.
//
// When the request's CloseOnFinish flag is unset, the reply stream is
// retained on the returned Response and the caller owns Response.Close.
func (c *Client) Process(ctx context.Context, req *Request) (*Response, error) {
	c.logger.Trace("processing request", log.Str("mode", string(req.Mode)))

	if errs := c.validator.Validate(req.Params(), req.Mode); len(errs) > 0 {
		c.logger.Debug("request failed validation", log.Int("errors", len(errs)))
		return nil, &ValidationError{Fields: errs}
	}

	c.mu.RLock()
	transport := c.transport
	c.mu.RUnlock()
	if transport == nil {
		return nil, &TransportError{Op: "send request", Err: ErrNoTransport}
	}

	stream, err := transport.Send(ctx, req.Params())
	if err != nil {
		return nil, err
	}

	resp, err := ParseResponse(stream)
	if err != nil {
		stream.Close()
		return nil, err
	}

	if req.CloseOnFinish {
		if cerr := stream.Close(); cerr != nil {
			return nil, &TransportError{Op: "close response stream", Err: cerr}
		}
	} else {
		resp.body = stream
	}

	c.logger.Debug("request processed",
		log.Str("session", resp.SessionID()),
		log.Int("keys", resp.Len()))
	return resp, nil
}
