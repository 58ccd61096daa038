package ris

import (
	"context"
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/pkcs12"

	"github.com/bft-labs/risclient/pkg/log"
)

// APIKeyHeader carries the API key on key-authenticated requests.
const APIKeyHeader = "X-RIS-Api-Key"

// DefaultTimeout bounds one request/response round trip when no custom
// HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// Transport sends one request's field mapping to the scoring service
// and returns the raw reply stream. Implementations hold connection
// configuration but no per-request state; they are safe for sequential
// reuse and must be assumed single-call-at-a-time unless documented
// otherwise. Failures are reported as *TransportError. Transports do
// not retry.
type Transport interface {
	Send(ctx context.Context, params *Params) (io.ReadCloser, error)
}

// HTTPClient abstracts HTTP request execution for testing and custom
// transports. The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// KeyTransport authenticates with an API key sent as a request header
// over HTTPS.
type KeyTransport struct {
	endpoint string
	key      string
	client   HTTPClient
	logger   log.Logger
}

// NewKeyTransport creates a transport using the given API key. A nil
// client falls back to an HTTP client with DefaultTimeout; a nil
// logger is replaced by a no-op logger.
func NewKeyTransport(endpoint, key string, client HTTPClient, logger log.Logger) *KeyTransport {
	return &KeyTransport{
		endpoint: endpoint,
		key:      key,
		client:   orDefaultClient(client),
		logger:   orNoop(logger),
	}
}

// NewKeyTransportFromFile reads the API key from a file, trimming
// surrounding whitespace. An unreadable file is a *TransportError.
func NewKeyTransportFromFile(endpoint, keyPath string, client HTTPClient, logger log.Logger) (*KeyTransport, error) {
	key, err := ReadKeyFile(keyPath)
	if err != nil {
		return nil, err
	}
	return NewKeyTransport(endpoint, key, client, logger), nil
}

// Send posts the form-encoded mapping with the API key header and
// returns the reply body.
func (t *KeyTransport) Send(ctx context.Context, params *Params) (io.ReadCloser, error) {
	return post(ctx, t.client, t.endpoint, params, func(req *http.Request) {
		req.Header.Set(APIKeyHeader, t.key)
	}, t.logger)
}

// CertTransport authenticates with a client certificate over mutual
// TLS. The private key and certificate chain come from a PKCS12
// container unlocked with a pass phrase.
type CertTransport struct {
	endpoint string
	client   HTTPClient
	logger   log.Logger
}

// NewCertTransport loads the PKCS12 container at p12Path. A non-nil
// client overrides the mutual-TLS client built from the container
// (useful for tests); a nil logger is replaced by a no-op logger.
func NewCertTransport(passphrase, endpoint, p12Path string, client HTTPClient, logger log.Logger) (*CertTransport, error) {
	data, err := os.ReadFile(p12Path)
	if err != nil {
		return nil, &TransportError{Op: "read key container " + p12Path, Err: err}
	}
	return newCertTransport(passphrase, endpoint, data, client, logger)
}

// NewCertTransportFromReader is NewCertTransport for an already-open
// PKCS12 byte stream.
func NewCertTransportFromReader(passphrase, endpoint string, p12 io.Reader, client HTTPClient, logger log.Logger) (*CertTransport, error) {
	data, err := io.ReadAll(p12)
	if err != nil {
		return nil, &TransportError{Op: "read key container", Err: err}
	}
	return newCertTransport(passphrase, endpoint, data, client, logger)
}

func newCertTransport(passphrase, endpoint string, p12 []byte, client HTTPClient, logger log.Logger) (*CertTransport, error) {
	if client == nil {
		cert, err := decodePKCS12(p12, passphrase)
		if err != nil {
			return nil, &TransportError{Op: "decode key container", Err: err}
		}
		client = &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					Certificates: []tls.Certificate{cert},
					MinVersion:   tls.VersionTLS12,
				},
			},
		}
	}
	return &CertTransport{
		endpoint: endpoint,
		client:   client,
		logger:   orNoop(logger),
	}, nil
}

// Send posts the form-encoded mapping over the mutual-TLS connection
// and returns the reply body.
func (t *CertTransport) Send(ctx context.Context, params *Params) (io.ReadCloser, error) {
	return post(ctx, t.client, t.endpoint, params, nil, t.logger)
}

// ReadKeyFile loads an API key from a file, trimming surrounding
// whitespace. Failures are reported as *TransportError.
func ReadKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &TransportError{Op: "read api key file " + path, Err: err}
	}
	return strings.TrimSpace(string(data)), nil
}

// decodePKCS12 converts a PKCS12 container into a TLS client
// certificate by re-encoding its safe bags as PEM.
func decodePKCS12(data []byte, passphrase string) (tls.Certificate, error) {
	blocks, err := pkcs12.ToPEM(data, passphrase)
	if err != nil {
		return tls.Certificate{}, err
	}
	var pemData []byte
	for _, b := range blocks {
		pemData = append(pemData, pem.EncodeToMemory(b)...)
	}
	return tls.X509KeyPair(pemData, pemData)
}

// post serializes the mapping as application/x-www-form-urlencoded and
// issues a single POST. Non-2xx statuses are a *TransportError; the
// reply body is returned unread otherwise.
func post(ctx context.Context, client HTTPClient, endpoint string, params *Params, auth func(*http.Request), logger log.Logger) (io.ReadCloser, error) {
	body := strings.NewReader(params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if auth != nil {
		auth(req)
	}

	logger.Trace("sending request", log.Str("endpoint", endpoint), log.Int("fields", params.Len()))

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "send request", Err: err}
	}
	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &TransportError{
			Op:  "send request",
			Err: fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	logger.Trace("response received", log.Int("status", resp.StatusCode))
	return resp.Body, nil
}

func orDefaultClient(client HTTPClient) HTTPClient {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func orNoop(logger log.Logger) log.Logger {
	if logger != nil {
		return logger
	}
	return log.NewNoop()
}
