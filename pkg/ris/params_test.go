package ris

import (
	"reflect"
	"testing"
)

func TestParamsOrder(t *testing.T) {
	p := NewParams()
	p.Set("B", "2")
	p.Set("A", "1")
	p.Set("C", "3")

	want := []string{"B", "A", "C"}
	if got := p.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestParamsOverwriteKeepsPosition(t *testing.T) {
	p := NewParams()
	p.Set("A", "1")
	p.Set("B", "2")
	p.Set("A", "9")

	want := []string{"A", "B"}
	if got := p.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if v, _ := p.Get("A"); v != "9" {
		t.Errorf("Get(A) = %q, want 9", v)
	}
}

func TestParamsGetAbsent(t *testing.T) {
	p := NewParams()
	if v, ok := p.Get("MISSING"); ok || v != "" {
		t.Errorf("Get(MISSING) = (%q, %v), want absent", v, ok)
	}
}

func TestParamsEncode(t *testing.T) {
	p := NewParams()
	p.Set("MODE", "Q")
	p.Set("EMAL", "a b@example.com")
	p.Set("NOTE", "x=y")

	want := "MODE=Q&EMAL=a+b%40example.com&NOTE=x%3Dy"
	if got := p.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestParamsCloneIndependent(t *testing.T) {
	p := NewParams()
	p.Set("A", "1")

	c := p.Clone()
	c.Set("A", "2")
	c.Set("B", "3")

	if v, _ := p.Get("A"); v != "1" {
		t.Errorf("original mutated: Get(A) = %q, want 1", v)
	}
	if p.Has("B") {
		t.Error("original gained key B from clone")
	}
}
