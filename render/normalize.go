package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
)

// InvalidLabelError reports a type label that cannot be turned into a CSS
// class fragment. Labels are expected pre-validated by the caller, so this is
// an internal invariant violation rather than user input handling.
type InvalidLabelError struct {
	Label  string
	Reason string
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("invalid type label %q: %s", e.Label, e.Reason)
}

func init() {
	// Annotation types are case significant ("Cell" and "cell" are different
	// labels), so transliteration must not fold case. Set once here and
	// never toggled - slug globals are only read afterwards, which keeps
	// concurrent renders safe.
	slug.Lowercase = false
}

var (
	nonClassCharsRx = regexp.MustCompile(`[^_a-zA-Z0-9-]+`)
	dashRunRx       = regexp.MustCompile(`--+`)
	// CSS2 identifier grammar, w3.org/TR/CSS21/grammar.html#scanner
	cssIdentRx = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)
)

// CSSClass converts a non-empty type label into a string usable as part of a
// CSS class name: transliterated to ASCII, non-identifier character runs
// collapsed to single hyphens, trimmed, and prefixed with an underscore when
// the result would start with a digit. Normalization is idempotent.
func CSSClass(label string) (string, error) {
	if label == "" || strings.TrimSpace(label) == "" {
		return "", &InvalidLabelError{Label: label, Reason: "empty or whitespace only"}
	}

	c := slug.Make(label)
	c = nonClassCharsRx.ReplaceAllString(c, "-")
	c = dashRunRx.ReplaceAllString(c, "-")
	c = strings.Trim(c, "-")

	if len(c) > 0 && unicode.IsDigit(rune(c[0])) {
		c = "_" + c
	}

	// sanity check - anything failing the identifier grammar at this point
	// is a normalization bug, not bad input
	if !cssIdentRx.MatchString(c) {
		return "", &InvalidLabelError{Label: label, Reason: fmt.Sprintf("normalized form %q is not a valid CSS identifier", c)}
	}
	return c, nil
}
