package ris

import "net/url"

// Params is an ordered mapping from RIS field name to string value.
// Field names are case-sensitive and unique; setting an existing field
// replaces its value but keeps its original position. Values are always
// strings; callers convert typed data before insertion.
//
// The zero value is not usable; create instances with NewParams.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams creates an empty parameter mapping.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set stores a field value, appending the field to the insertion order
// if it is new.
func (p *Params) Set(name, value string) {
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = value
}

// Get returns the value for a field and whether the field is present.
func (p *Params) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Has reports whether a field is present.
func (p *Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Len returns the number of fields.
func (p *Params) Len() int {
	return len(p.keys)
}

// Keys returns the field names in insertion order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Clone returns an independent snapshot of the mapping.
func (p *Params) Clone() *Params {
	c := &Params{
		keys:   make([]string, len(p.keys)),
		values: make(map[string]string, len(p.values)),
	}
	copy(c.keys, p.keys)
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// Encode serializes the mapping as application/x-www-form-urlencoded,
// preserving insertion order.
func (p *Params) Encode() string {
	var b []byte
	for i, k := range p.keys {
		if i > 0 {
			b = append(b, '&')
		}
		b = append(b, url.QueryEscape(k)...)
		b = append(b, '=')
		b = append(b, url.QueryEscape(p.values[k])...)
	}
	return string(b)
}
