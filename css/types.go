// Package css provides a small stylesheet model with deterministic text
// output. It covers exactly what the annotation renderer emits: plain rules
// and @import references.
package css

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Rule is a single CSS rule: a raw selector (possibly grouped) plus property
// declarations. Property values are kept verbatim.
type Rule struct {
	Selector   string
	Properties map[string]string
}

// SetProperty records a property declaration, replacing any previous value.
func (r *Rule) SetProperty(name, value string) {
	if r.Properties == nil {
		r.Properties = make(map[string]string)
	}
	r.Properties[name] = value
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or Import is non-nil.
type StylesheetItem struct {
	Rule   *Rule
	Import *string
}

// Stylesheet is an ordered sequence of top-level items.
type Stylesheet struct {
	Items    []StylesheetItem
	Warnings []string // unsupported constructs seen while parsing
}

// AddRule appends a rule to the stylesheet.
func (s *Stylesheet) AddRule(r Rule) {
	s.Items = append(s.Items, StylesheetItem{Rule: &r})
}

// Imports returns all @import URLs in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(\"%s\");\n", cssEscapeDoubleQuoted(*item.Import))
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule)
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector)
	total += n
	if err != nil {
		return total, err
	}

	names := make([]string, 0, len(rule.Properties))
	for name := range rule.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n, err = fmt.Fprintf(w, "  %s: %s;\n", name, rule.Properties[name])
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
