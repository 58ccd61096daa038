package ris

import (
	"fmt"
	"strings"
)

// FieldError describes a single violated validation rule.
type FieldError struct {
	// Field is the RIS field name the rule applies to.
	Field string

	// Message is a human-readable description of the violation.
	Message string
}

// String renders the error as "FIELD: message".
func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError is returned by Client.Process when the request fails
// client-side validation. No network activity has happened when this
// error is returned; fix the request and call Process again.
type ValidationError struct {
	// Fields lists every violated rule, in rule-table order.
	Fields []FieldError
}

// Error returns the field errors joined with newlines.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.String()
	}
	return strings.Join(msgs, "\n")
}

// TransportError is returned when sending the request or releasing the
// response stream fails: connection errors, TLS or authentication
// failures, non-2xx statuses, unreadable credential files.
type TransportError struct {
	// Op names the operation that failed.
	Op string

	// Err is the underlying cause.
	Err error
}

// Error returns the operation and underlying cause.
func (e *TransportError) Error() string {
	if e.Err == nil {
		return "ris: transport: " + e.Op
	}
	return fmt.Sprintf("ris: transport: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError is returned when the reply stream is malformed or cannot
// be read. It indicates a service-side anomaly or a transport corrupting
// the stream, not a problem with the request.
type ResponseError struct {
	// Line is the offending response line, if the failure was a
	// malformed line rather than a read error.
	Line string

	// Err is the underlying cause.
	Err error
}

// Error identifies the offending line or the read failure.
func (e *ResponseError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("ris: malformed response line %q", e.Line)
	}
	return fmt.Sprintf("ris: read response: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ResponseError) Unwrap() error {
	return e.Err
}
