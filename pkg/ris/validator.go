package ris

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// inquiryModes are the modes describing a new order.
var inquiryModes = []Mode{ModeInquiry, ModePhoneInquiry}

// updateModes are the modes referencing an existing transaction.
var updateModes = []Mode{ModeUpdate, ModeUpdateWithResponse}

// rule is one entry of the validation rule table. Presence is checked
// against the request mode; the format tag is applied to any non-empty
// value regardless of mode.
type rule struct {
	field   string
	modes   []Mode // nil applies to every mode
	require bool
	tag     string // go-playground/validator tag for format checks
	desc    string // violation message for the format check
}

var ruleTable = []rule{
	{field: FieldVersion, require: true, tag: "numeric,len=4", desc: "must be a four-digit interface version"},
	{field: FieldMode, require: true},
	{field: FieldMerchant, require: true, tag: "numeric,len=6", desc: "must be a six-digit merchant id"},
	{field: FieldSession, require: true, tag: "alphanum,max=32", desc: "must be at most 32 alphanumeric characters"},
	{field: FieldSite, modes: inquiryModes, require: true, tag: "alphanum,max=8", desc: "must be at most 8 alphanumeric characters"},
	{field: FieldCurrency, modes: inquiryModes, require: true, tag: "alpha,uppercase,len=3", desc: "must be a three-letter ISO 4217 code"},
	{field: FieldTotal, modes: inquiryModes, require: true, tag: "numeric", desc: "must be an integer amount in lowest denomination"},
	{field: FieldMACK, modes: inquiryModes, require: true, tag: "oneof=Y N", desc: "must be Y or N"},
	{field: FieldIPAddress, modes: inquiryModes, require: true, tag: "ip", desc: "must be a valid IP address"},
	{field: FieldPaymentType, modes: inquiryModes, require: true, tag: "alphanum,max=8", desc: "must be at most 8 alphanumeric characters"},
	{field: FieldAuth, tag: "oneof=A D", desc: "must be A or D"},
	{field: FieldEmail, tag: "email,max=64", desc: "must be a valid email of at most 64 characters"},
	{field: FieldPhone, modes: []Mode{ModePhoneInquiry}, require: true, tag: "numeric,max=32", desc: "must be at most 32 digits"},
	{field: FieldCardLast4, tag: "numeric,len=4", desc: "must be the last four card digits"},
	{field: FieldTransactionID, modes: updateModes, require: true, tag: "alphanum,max=32", desc: "must be at most 32 alphanumeric characters"},
}

// exclusiveGroups lists field pairs that must not appear together.
var exclusiveGroups = [][2]string{
	{FieldPaymentToken, FieldCardLast4},
}

// Validator checks a request's field mapping against the RIS rule set.
// It is stateless and safe for concurrent use.
type Validator struct {
	formats *validator.Validate
}

// NewValidator creates a Validator with the built-in rule table.
func NewValidator() *Validator {
	return &Validator{formats: validator.New()}
}

// Validate applies every rule for the given mode and returns one
// FieldError per violated rule, in rule-table order. It is a total
// function: any mapping yields a (possibly empty) error list, never a
// panic or an error return. An empty result means the mapping satisfies
// every rule for its mode.
func (v *Validator) Validate(params *Params, mode Mode) []FieldError {
	var errs []FieldError

	for _, r := range ruleTable {
		val, present := params.Get(r.field)

		if r.require && appliesTo(r.modes, mode) && (!present || val == "") {
			errs = append(errs, FieldError{
				Field:   r.field,
				Message: fmt.Sprintf("required for mode %s", mode),
			})
			continue
		}
		if !present || val == "" {
			continue
		}

		if r.field == FieldMode && val != string(mode) {
			errs = append(errs, FieldError{
				Field:   FieldMode,
				Message: fmt.Sprintf("declared mode %s does not match field value %q", mode, val),
			})
			continue
		}

		if r.tag != "" && v.formats.Var(val, r.tag) != nil {
			errs = append(errs, FieldError{
				Field:   r.field,
				Message: fmt.Sprintf("invalid value %q: %s", val, r.desc),
			})
		}
	}

	for _, g := range exclusiveGroups {
		if params.Has(g[0]) && params.Has(g[1]) {
			errs = append(errs, FieldError{
				Field:   g[0],
				Message: fmt.Sprintf("mutually exclusive with %s", g[1]),
			})
		}
	}

	return errs
}

func appliesTo(modes []Mode, mode Mode) bool {
	if modes == nil {
		return true
	}
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}
