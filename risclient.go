// Package risclient is a client for a remote fraud-risk scoring (RIS)
// service. It re-exports the pkg/ris API so small integrations need a
// single import.
//
// Example usage:
//
//	client := risclient.NewKeyClient("https://ris.example.com", apiKey)
//
//	req := risclient.NewInquiry()
//	req.SetMerchant("123456")
//	req.SetSession("0a1b2c3d4e5f")
//	req.SetTotal(10900)
//	req.SetCurrency("USD")
//	req.SetIPAddress("203.0.113.7")
//	req.SetPaymentType("CARD")
//	req.SetSite("DEFAULT")
//	req.SetMerchantAck(true)
//
//	resp, err := client.Process(ctx, req)
package risclient

import "github.com/bft-labs/risclient/pkg/ris"

// Core pipeline types. See pkg/ris for the full API.
type (
	Client          = ris.Client
	Request         = ris.Request
	Response        = ris.Response
	Params          = ris.Params
	Mode            = ris.Mode
	Decision        = ris.Decision
	Transport       = ris.Transport
	FieldError      = ris.FieldError
	ValidationError = ris.ValidationError
	TransportError  = ris.TransportError
	ResponseError   = ris.ResponseError
)

// Request modes.
const (
	ModeInquiry            = ris.ModeInquiry
	ModePhoneInquiry       = ris.ModePhoneInquiry
	ModeUpdate             = ris.ModeUpdate
	ModeUpdateWithResponse = ris.ModeUpdateWithResponse
)

// NewInquiry creates an inquiry request with MODE and VERS preset.
func NewInquiry() *Request {
	return ris.NewInquiry()
}

// NewUpdate creates an update request with MODE and VERS preset.
func NewUpdate() *Request {
	return ris.NewUpdate()
}

// New creates a client around an injected transport.
func New(transport Transport, opts ...ris.Option) *Client {
	return ris.New(transport, opts...)
}

// NewKeyClient creates a client using API-key authentication.
func NewKeyClient(endpoint, key string, opts ...ris.Option) *Client {
	return ris.NewKeyClient(endpoint, key, opts...)
}

// NewCertClient creates a client using certificate authentication from
// a PKCS12 container.
func NewCertClient(passphrase, endpoint, p12Path string, opts ...ris.Option) (*Client, error) {
	return ris.NewCertClient(passphrase, endpoint, p12Path, opts...)
}
