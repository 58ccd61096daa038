// Package ris is a client for a remote fraud-risk scoring service
// speaking the RIS line protocol.
//
// A request is an ordered field mapping with a declared mode. The
// client validates it against the RIS rule set, posts it through one
// of two authentication transports (mutual TLS from a PKCS12 container,
// or an API key), and parses the newline-delimited KEY=VALUE reply into
// an immutable Response.
//
// # Usage
//
//	client := ris.NewKeyClient("https://ris.example.com", apiKey)
//
//	req := ris.NewInquiry()
//	req.SetMerchant("123456")
//	req.SetSession("0a1b2c3d4e5f")
//	req.SetSite("DEFAULT")
//	req.SetTotal(10900)
//	req.SetCurrency("USD")
//	req.SetIPAddress("203.0.113.7")
//	req.SetPaymentType("CARD")
//	req.SetMerchantAck(true)
//
//	resp, err := client.Process(ctx, req)
//	if err != nil {
//	    var verr *ris.ValidationError
//	    if errors.As(err, &verr) {
//	        // fix the listed fields and retry
//	    }
//	    return err
//	}
//	decision, _ := resp.Decision()
//	score, _ := resp.Score()
//
// # Failure kinds
//
// Process returns exactly one of *ValidationError, *TransportError, or
// *ResponseError; callers branch on the kind with errors.As to decide
// whether to fix input, retry, or alert.
//
// # Concurrency
//
// A Client keeps no per-call state. Sharing one across goroutines is
// safe as long as the active transport is; the bundled HTTP transports
// are safe for concurrent sends.
package ris
