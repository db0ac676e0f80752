package render

import (
	"fmt"
	"strings"
)

// formattingTags maps structural span types to the HTML tags rendering them.
// Spans with any other type render as highlight boxes.
var formattingTags = map[string]string{
	"bold":    "b",
	"italic":  "i",
	"sup":     "sup",
	"sub":     "sub",
	"section": "section",
}

// epsilon is the effectively-zero stacking height of formatting spans: small
// enough to never raise the integer height of a wrapping span, large enough
// to order a formatting span above the spans it wraps.
const epsilon = 0.0001

const heightUnset = -1.0

// span is the renderer's view of one standoff: the interval, the normalized
// CSS-safe type and nesting scratch state. Spans live in the arena of a
// single render call and refer to each other by arena index only.
type span struct {
	start, end int
	typ        string
	formatting bool

	// arena indices of spans found at least partially inside this one while
	// resolving heights; relational scratch state, not precise containment
	nested map[int]struct{}

	// memoized fractional stacking height, heightUnset until computed
	sortHeight float64

	// last emitted opening marker, kept so that crossing resolution can
	// retroactively flag continued/covered borders
	startMarker *marker
}

// marker is a single open or close event of a span at a text offset. Cont
// flags mark synthetic fragment boundaries inserted to avoid crossing tags,
// covered flags suppress borders hidden behind a covering span's fragment.
type marker struct {
	spanIdx int
	offset  int
	isEnd   bool

	contLeft, contRight       bool
	coveredLeft, coveredRight bool

	// at identical offsets, ending markers sort highest-last, starting
	// markers highest-first
	sortIdx float64
}

// job is the scratch state of one render call. Nothing in it is shared
// across calls, so independent renders may run concurrently.
type job struct {
	opts  *Options
	text  []rune
	spans []span
}

func (j *job) newMarker(spanIdx, offset int, isEnd, contLeft bool) *marker {
	m := &marker{
		spanIdx:  spanIdx,
		offset:   offset,
		isEnd:    isEnd,
		contLeft: contLeft,
		sortIdx:  j.spanSortHeight(spanIdx),
	}
	if !isEnd {
		m.sortIdx = -m.sortIdx
		// keep current start marker so that ending markers can affect tag style
		j.spans[spanIdx].startMarker = m
	}
	return m
}

// spanSortHeight returns the fractional height used for ordering: formatting
// spans sit an epsilon above their content instead of a full level.
func (j *job) spanSortHeight(i int) float64 {
	s := &j.spans[i]
	if s.sortHeight != heightUnset {
		return s.sortHeight
	}

	if len(s.nested) == 0 {
		s.sortHeight = 0
		return 0
	}

	own := 1.0
	if s.formatting {
		own = epsilon
	}
	max := 0
	for n := range s.nested {
		if h := j.spanHeight(n); h > max {
			max = h
		}
	}
	s.sortHeight = float64(max) + own
	return s.sortHeight
}

// spanHeight is the visualized stacking height: the fractional sort height
// with the virtual epsilon increments truncated away.
func (j *job) spanHeight(i int) int {
	return int(j.spanSortHeight(i))
}

// spanTag returns the HTML tag rendering the given span.
func (j *job) spanTag(i int) string {
	s := &j.spans[i]
	if !s.formatting {
		return j.opts.Tag
	}
	if s.typ == "section" {
		if tag, ok := j.opts.Headings.Tag(s.start, s.end); ok {
			return tag
		}
	}
	if tag, ok := formattingTags[s.typ]; ok {
		return tag
	}
	return s.typ
}

// renderMarker produces the literal tag text for a marker.
func (j *job) renderMarker(m *marker) string {
	tag := j.spanTag(m.spanIdx)
	if m.isEnd {
		return "</" + tag + ">"
	}
	s := &j.spans[m.spanIdx]
	if s.formatting {
		// formatting tags take no style
		return "<" + tag + ">"
	}

	var cls strings.Builder
	fmt.Fprintf(&cls, "ann ann-h%d ann-t%s", j.spanHeight(m.spanIdx), s.typ)
	if m.contLeft {
		cls.WriteString(" ann-contleft")
	}
	if m.contRight {
		cls.WriteString(" ann-contright")
	}
	if m.coveredLeft {
		cls.WriteString(" ann-openleft")
	}
	if m.coveredRight {
		cls.WriteString(" ann-openright")
	}
	return fmt.Sprintf("<%s class=%q>", tag, cls.String())
}
