package ris

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Well-known RIS response keys.
const (
	KeyDecision      = "AUTO"
	KeyScore         = "SCOR"
	KeyTransactionID = "TRAN"
	KeySession       = "SESS"
	KeyMode          = "MODE"
	KeyErrorCode     = "ERRO"
	KeyErrorCount    = "ERROR_COUNT"
	KeyWarningCount  = "WARNING_COUNT"
	KeyRuleCount     = "RULES_TRIGGERED"
)

// Decision is the service's automated decision for a transaction.
type Decision string

const (
	DecisionApprove  Decision = "A"
	DecisionReview   Decision = "R"
	DecisionDecline  Decision = "D"
	DecisionEscalate Decision = "E"
)

// Rule is one service-side rule that fired while scoring a transaction.
type Rule struct {
	ID          string
	Description string
}

// Response is the parsed reply to one scoring request. It is immutable:
// lookups never modify it and no setters exist. When the request was
// sent with CloseOnFinish disabled, the raw reply stream is retained
// and the caller must release it with Close.
type Response struct {
	fields map[string]string
	body   io.Closer
}

// ParseResponse consumes a stream of newline-delimited KEY=VALUE lines
// and builds a Response. Empty lines are ignored. Each remaining line
// is split at its first '='; the key is taken exactly, the value
// verbatim including any further '=' characters. When a key repeats,
// the last occurrence wins. A line without '=' or a failed read aborts
// parsing with a *ResponseError; no partial Response is returned.
//
// The stream is consumed to EOF but not closed.
func ParseResponse(r io.Reader) (*Response, error) {
	fields := make(map[string]string)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &ResponseError{Line: line, Err: errors.New("missing '=' separator")}
		}
		fields[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, &ResponseError{Err: err}
	}

	return &Response{fields: fields}, nil
}

// Get returns the raw value for a response key. Unknown keys return
// ("", false).
func (r *Response) Get(key string) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Len returns the number of distinct response keys.
func (r *Response) Len() int {
	return len(r.fields)
}

// Fields returns a copy of every response key and value.
func (r *Response) Fields() map[string]string {
	out := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// Decision returns the automated decision, or false when the AUTO key
// is absent.
func (r *Response) Decision() (Decision, bool) {
	v, ok := r.fields[KeyDecision]
	if !ok {
		return "", false
	}
	return Decision(v), true
}

// Score returns the numeric risk score, or false when SCOR is absent
// or not numeric.
func (r *Response) Score() (int, bool) {
	v, ok := r.fields[KeyScore]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// TransactionID returns the RIS transaction identifier, empty when absent.
func (r *Response) TransactionID() string {
	return r.fields[KeyTransactionID]
}

// SessionID returns the echoed session identifier, empty when absent.
func (r *Response) SessionID() string {
	return r.fields[KeySession]
}

// Mode returns the echoed request mode, empty when absent.
func (r *Response) Mode() string {
	return r.fields[KeyMode]
}

// IsError reports whether the service answered with an error reply
// (an ERRO code or a non-zero ERROR_COUNT).
func (r *Response) IsError() bool {
	if _, ok := r.fields[KeyErrorCode]; ok {
		return true
	}
	return r.count(KeyErrorCount) > 0
}

// ErrorCode returns the ERRO code, empty when absent.
func (r *Response) ErrorCode() string {
	return r.fields[KeyErrorCode]
}

// Errors returns the service-side error texts ERROR_0..ERROR_N-1 as
// counted by ERROR_COUNT.
func (r *Response) Errors() []string {
	return r.indexed("ERROR_", r.count(KeyErrorCount))
}

// Warnings returns the warning texts WARNING_0..WARNING_N-1 as counted
// by WARNING_COUNT.
func (r *Response) Warnings() []string {
	return r.indexed("WARNING_", r.count(KeyWarningCount))
}

// Rules returns the rules that fired while scoring, assembled from
// RULES_TRIGGERED and the RULE_ID_N / RULE_DESCRIPTION_N pairs.
func (r *Response) Rules() []Rule {
	n := r.count(KeyRuleCount)
	rules := make([]Rule, 0, n)
	for i := 0; i < n; i++ {
		rules = append(rules, Rule{
			ID:          r.fields[fmt.Sprintf("RULE_ID_%d", i)],
			Description: r.fields[fmt.Sprintf("RULE_DESCRIPTION_%d", i)],
		})
	}
	return rules
}

// Close releases the retained reply stream. It is a no-op for
// responses whose request had CloseOnFinish set.
func (r *Response) Close() error {
	if r.body == nil {
		return nil
	}
	return r.body.Close()
}

func (r *Response) count(key string) int {
	v, ok := r.fields[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (r *Response) indexed(prefix string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.fields[prefix+strconv.Itoa(i)])
	}
	return out
}
