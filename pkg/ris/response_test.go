package ris

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func mustParse(t *testing.T, stream string) *Response {
	t.Helper()
	resp, err := ParseResponse(strings.NewReader(stream))
	if err != nil {
		t.Fatalf("ParseResponse() error: %v", err)
	}
	return resp
}

func TestParseResponseRoundTrip(t *testing.T) {
	resp := mustParse(t, "A=1\nB=2\n")

	if v, ok := resp.Get("A"); !ok || v != "1" {
		t.Errorf("Get(A) = (%q, %v), want (1, true)", v, ok)
	}
	if v, ok := resp.Get("B"); !ok || v != "2" {
		t.Errorf("Get(B) = (%q, %v), want (2, true)", v, ok)
	}
	if v, ok := resp.Get("C"); ok {
		t.Errorf("Get(C) = (%q, %v), want absent", v, ok)
	}
}

func TestParseResponseValueKeepsEquals(t *testing.T) {
	resp := mustParse(t, "URL=https://example.com/?a=1&b=2\n")
	if v, _ := resp.Get("URL"); v != "https://example.com/?a=1&b=2" {
		t.Errorf("Get(URL) = %q, value must be taken verbatim", v)
	}
}

func TestParseResponseSkipsEmptyLines(t *testing.T) {
	resp := mustParse(t, "\nA=1\n\n\nB=2\n\n")
	if resp.Len() != 2 {
		t.Errorf("Len() = %d, want 2", resp.Len())
	}
}

func TestParseResponseDuplicateLastWins(t *testing.T) {
	resp := mustParse(t, "A=1\nA=2\n")
	if v, _ := resp.Get("A"); v != "2" {
		t.Errorf("Get(A) = %q, want 2 (last occurrence wins)", v)
	}
}

func TestParseResponseMalformedLine(t *testing.T) {
	resp, err := ParseResponse(strings.NewReader("A=1\nBADLINE\nB=2\n"))
	if resp != nil {
		t.Fatal("partial Response returned for malformed stream")
	}
	var rerr *ResponseError
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %T, want *ResponseError", err)
	}
	if rerr.Line != "BADLINE" {
		t.Errorf("rerr.Line = %q, want BADLINE", rerr.Line)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestParseResponseReadFailure(t *testing.T) {
	cause := errors.New("connection reset")
	resp, err := ParseResponse(io.MultiReader(strings.NewReader("A=1\n"), failingReader{cause}))
	if resp != nil {
		t.Fatal("partial Response returned for failed read")
	}
	var rerr *ResponseError
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %T, want *ResponseError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("read failure cause not wrapped")
	}
}

func TestResponseAccessors(t *testing.T) {
	resp := mustParse(t, strings.Join([]string{
		"VERS=0700",
		"MODE=Q",
		"TRAN=TR019",
		"SESS=0a1b2c3d4e5f",
		"AUTO=R",
		"SCOR=61",
		"WARNING_COUNT=1",
		"WARNING_0=unknown field KYCX",
		"RULES_TRIGGERED=2",
		"RULE_ID_0=101",
		"RULE_DESCRIPTION_0=billing country mismatch",
		"RULE_ID_1=240",
		"RULE_DESCRIPTION_1=order total over threshold",
		"",
	}, "\n"))

	if d, ok := resp.Decision(); !ok || d != DecisionReview {
		t.Errorf("Decision() = (%v, %v), want (R, true)", d, ok)
	}
	if s, ok := resp.Score(); !ok || s != 61 {
		t.Errorf("Score() = (%d, %v), want (61, true)", s, ok)
	}
	if resp.TransactionID() != "TR019" {
		t.Errorf("TransactionID() = %q", resp.TransactionID())
	}
	if resp.SessionID() != "0a1b2c3d4e5f" {
		t.Errorf("SessionID() = %q", resp.SessionID())
	}
	if resp.Mode() != "Q" {
		t.Errorf("Mode() = %q", resp.Mode())
	}
	if resp.IsError() {
		t.Error("IsError() = true for a clean response")
	}

	warnings := resp.Warnings()
	if len(warnings) != 1 || warnings[0] != "unknown field KYCX" {
		t.Errorf("Warnings() = %v", warnings)
	}

	rules := resp.Rules()
	if len(rules) != 2 {
		t.Fatalf("Rules() returned %d rules, want 2", len(rules))
	}
	if rules[0].ID != "101" || rules[0].Description != "billing country mismatch" {
		t.Errorf("Rules()[0] = %+v", rules[0])
	}
}

func TestResponseErrorReply(t *testing.T) {
	resp := mustParse(t, "MODE=E\nERRO=201\nERROR_COUNT=2\nERROR_0=201 MISSING_MERC\nERROR_1=221 MISSING_EMAL\n")

	if !resp.IsError() {
		t.Fatal("IsError() = false for an error reply")
	}
	if resp.ErrorCode() != "201" {
		t.Errorf("ErrorCode() = %q, want 201", resp.ErrorCode())
	}
	errs := resp.Errors()
	if len(errs) != 2 || errs[1] != "221 MISSING_EMAL" {
		t.Errorf("Errors() = %v", errs)
	}
}

func TestResponseScoreAbsentOrBad(t *testing.T) {
	resp := mustParse(t, "AUTO=A\n")
	if _, ok := resp.Score(); ok {
		t.Error("Score() reported present for absent SCOR")
	}
	resp = mustParse(t, "SCOR=high\n")
	if _, ok := resp.Score(); ok {
		t.Error("Score() reported present for non-numeric SCOR")
	}
}

func TestResponseCloseWithoutBody(t *testing.T) {
	resp := mustParse(t, "A=1\n")
	if err := resp.Close(); err != nil {
		t.Errorf("Close() = %v, want nil for detached response", err)
	}
}
