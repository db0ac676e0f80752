package so

import (
	"encoding/json"
	"testing"
)

func parseBody(t *testing.T, data string) Body {
	t.Helper()
	var b Body
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", data, err)
	}
	return b
}

func TestBodyString(t *testing.T) {
	b := parseBody(t, `"Person"`)
	if b.Kind() != BodyString || b.Label() != "Person" {
		t.Errorf("body = kind %v label %q, want string Person", b.Kind(), b.Label())
	}
}

func TestBodyObjectLabelPriority(t *testing.T) {
	tests := []struct {
		data string
		want string
	}{
		{`{"@id": "entity/1", "label": "Entity", "tag": "E"}`, "entity/1"},
		{`{"label": "Entity", "tag": "E"}`, "Entity"},
		{`{"tag": "E", "note": "z"}`, "E"},
		{`{"color": "red", "alt": "a"}`, "a"},
		{`{"count": 3}`, "3"},
		{`{}`, ""},
	}
	for _, tc := range tests {
		b := parseBody(t, tc.data)
		if b.Kind() != BodyObject {
			t.Errorf("kind of %s = %v, want object", tc.data, b.Kind())
		}
		if got := b.Label(); got != tc.want {
			t.Errorf("Label(%s) = %q, want %q", tc.data, got, tc.want)
		}
	}
}

func TestBodyList(t *testing.T) {
	b := parseBody(t, `["Person", "Organization"]`)
	if b.Kind() != BodyList || b.Label() != "Person" {
		t.Errorf("list body label = %q, want Person", b.Label())
	}

	b = parseBody(t, `[{"label": "Nested"}, "x"]`)
	if b.Label() != "Nested" {
		t.Errorf("nested list body label = %q, want Nested", b.Label())
	}

	b = parseBody(t, `[]`)
	if b.Label() != "" {
		t.Errorf("empty list body label = %q, want empty", b.Label())
	}
}

func TestBodyScalars(t *testing.T) {
	for data, want := range map[string]string{
		`true`: "true",
		`7`:    "7",
		`null`: "<nil>",
	} {
		b := parseBody(t, data)
		if b.Kind() != BodyString || b.Label() != want {
			t.Errorf("Label(%s) = %q, want %q", data, b.Label(), want)
		}
	}
}
