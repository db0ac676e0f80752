// Package so defines the standoff annotation data model: offset intervals
// with type labels stored separately from the text they refer to.
package so

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Standoff is a single annotation: a half-open interval [Start, End) over the
// target text plus a type label. Offsets count code points of the target text.
type Standoff struct {
	Start int
	End   int
	Type  string
}

// MalformedStandoffError reports an annotation that cannot be turned into a
// valid interval.
type MalformedStandoffError struct {
	Start, End int
	Reason     string
}

func (e *MalformedStandoffError) Error() string {
	return fmt.Sprintf("malformed standoff [%d, %d): %s", e.Start, e.End, e.Reason)
}

// New validates offsets and creates a Standoff.
func New(start, end int, typ string) (Standoff, error) {
	if start < 0 {
		return Standoff{}, &MalformedStandoffError{Start: start, End: end, Reason: "negative start offset"}
	}
	if end < start {
		return Standoff{}, &MalformedStandoffError{Start: start, End: end, Reason: "end before start"}
	}
	return Standoff{Start: start, End: end, Type: typ}, nil
}

// ParseJSON decodes the command line form of standoffs: a JSON array of
// [start, end, body?] entries. Empty entries are ignored, a single offset
// makes a zero-width annotation at that offset and entries without a body get
// sequentially numbered "type-N" labels. The body element may be a plain
// string or a structured annotation body, it is flattened to one label here.
func ParseJSON(data []byte) ([]Standoff, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw [][]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unable to decode standoff JSON: %w", err)
	}

	standoffs := make([]Standoff, 0, len(raw))
	missing := 0
	for _, fields := range raw {
		if len(fields) < 1 {
			// ignore empties
			continue
		}

		start, err := decodeOffset(fields[0])
		if err != nil {
			return nil, err
		}
		end := start
		if len(fields) > 1 {
			if end, err = decodeOffset(fields[1]); err != nil {
				return nil, err
			}
		}

		var typ string
		if len(fields) > 2 {
			var body Body
			if err := json.Unmarshal(fields[2], &body); err != nil {
				return nil, fmt.Errorf("unable to decode annotation body: %w", err)
			}
			typ = body.Label()
		} else {
			missing++
			typ = fmt.Sprintf("type-%d", missing)
		}

		s, err := New(start, end, typ)
		if err != nil {
			return nil, err
		}
		standoffs = append(standoffs, s)
	}
	return standoffs, nil
}

func decodeOffset(raw json.RawMessage) (int, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, &MalformedStandoffError{Reason: fmt.Sprintf("offset %s is not a number", raw)}
	}
	v, err := n.Int64()
	if err != nil {
		return 0, &MalformedStandoffError{Reason: fmt.Sprintf("offset %s is not an integer", n)}
	}
	return int(v), nil
}
