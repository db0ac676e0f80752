package so

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// BodyKind identifies the shape of an annotation body.
type BodyKind int

const (
	BodyString BodyKind = iota
	BodyObject
	BodyList
)

// Body is the value of an annotation's "body" field. Open Annotation allows a
// plain string, a structured object or a list of either; the shape is
// resolved once when the body is decoded and never re-inspected afterwards.
type Body struct {
	kind BodyKind
	str  string
	obj  map[string]any
	list []Body
}

// body fields consulted, in order, when flattening an object to a label
const (
	bodyKeyID    = "@id"
	bodyKeyLabel = "label"
	bodyKeyTag   = "tag"
)

func (b Body) Kind() BodyKind {
	return b.kind
}

// UnmarshalJSON resolves the body shape. Non-string scalars are stringified.
func (b *Body) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		*b = Body{kind: BodyString}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Body{kind: BodyString, str: s}
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*b = Body{kind: BodyObject, obj: obj}
	case '[':
		var list []Body
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*b = Body{kind: BodyList, list: list}
	default:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*b = Body{kind: BodyString, str: fmt.Sprintf("%v", v)}
	}
	return nil
}

// Label flattens the body to a single type label. Each shape has exactly one
// flattening rule: strings are used as is, objects prefer the identifier
// field, then the human label, then the tag field, then the first remaining
// key in sorted order, and a list flattens to the label of its first element.
func (b Body) Label() string {
	switch b.kind {
	case BodyObject:
		return b.objectLabel()
	case BodyList:
		if len(b.list) == 0 {
			return ""
		}
		return b.list[0].Label()
	default:
		return b.str
	}
}

func (b Body) objectLabel() string {
	for _, key := range []string{bodyKeyID, bodyKeyLabel, bodyKeyTag} {
		if v, ok := b.obj[key]; ok {
			return stringify(v)
		}
	}

	keys := make([]string, 0, len(b.obj))
	for k := range b.obj {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return stringify(b.obj[keys[0]])
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
