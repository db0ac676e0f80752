package render

import (
	"errors"
	"testing"
)

func TestCSSClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Person", "Person"},
		{"Multi-tissue_structure", "Multi-tissue_structure"},
		{"hello world", "hello-world"},
		{"a.b", "a-b"},
		{"a...b", "a-b"},
		{"-padded-", "padded"},
		{"123abc", "_123abc"},
		{"type-1", "type-1"},
	}
	for _, tc := range tests {
		got, err := CSSClass(tc.in)
		if err != nil {
			t.Errorf("CSSClass(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("CSSClass(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCSSClassKeepsCase(t *testing.T) {
	got, err := CSSClass("Cell")
	if err != nil {
		t.Fatalf("CSSClass() error = %v", err)
	}
	if got != "Cell" {
		t.Fatalf("CSSClass(Cell) = %q, case must be preserved", got)
	}
}

func TestCSSClassTransliterates(t *testing.T) {
	got, err := CSSClass("möbius straße")
	if err != nil {
		t.Fatalf("CSSClass() error = %v", err)
	}
	if got != "mobius-strasse" {
		t.Fatalf("CSSClass(möbius straße) = %q, want mobius-strasse", got)
	}
}

func TestCSSClassIdempotent(t *testing.T) {
	for _, in := range []string{"Person name", "123 go", "a.b.c", "Multi-tissue_structure"} {
		once, err := CSSClass(in)
		if err != nil {
			t.Fatalf("CSSClass(%q) error = %v", in, err)
		}
		twice, err := CSSClass(once)
		if err != nil {
			t.Fatalf("CSSClass(%q) error = %v", once, err)
		}
		if once != twice {
			t.Errorf("CSSClass not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCSSClassRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := CSSClass(in)
		var lerr *InvalidLabelError
		if !errors.As(err, &lerr) {
			t.Errorf("CSSClass(%q) error = %v, want InvalidLabelError", in, err)
		}
	}
}
