package render

import (
	"math"
	"sort"
	"strings"
)

// segment is one element of the output stream: either a literal text run or
// a marker. Markers are kept as references because crossing resolution flags
// continued/covered borders on markers already emitted; the stream is turned
// into text only after the sweep finishes.
type segment struct {
	text string
	m    *marker
}

// assembleBody sweeps the marker stream left to right, splitting any span
// that would otherwise cross another span's boundary, and produces the final
// tag-balanced HTML body. legendHTML, when not empty, is placed in front of
// the annotated text.
func (j *job) assembleBody(legendHTML string) string {
	markers := make([]*marker, 0, 2*len(j.spans))
	for i := range j.spans {
		markers = append(markers, j.newMarker(i, j.spans[i].start, false, false))
		markers = append(markers, j.newMarker(i, j.spans[i].end, true, false))
	}
	sort.SliceStable(markers, func(a, b int) bool {
		if markers[a].offset != markers[b].offset {
			return markers[a].offset < markers[b].offset
		}
		return markers[a].sortIdx < markers[b].sortIdx
	})

	var out []segment

	// spans currently open, in emission order; the map tracks membership
	var openList []int
	openSet := make(map[int]struct{})

	i, o := 0, 0
	for i < len(markers) {
		if o != markers[i].offset {
			out = append(out, segment{text: j.slice(o, markers[i].offset)})
		}
		o = markers[i].offset

		// collect markers opening or closing at this offset and determine
		// the tallest span changing here
		var toOpen, toClose []*marker
		maxChangeHeight := -1
		last := i
		for k := i; k < len(markers) && markers[k].offset == o; k++ {
			if markers[k].isEnd {
				toClose = append(toClose, markers[k])
			} else {
				toOpen = append(toOpen, markers[k])
			}
			if h := j.spanHeight(markers[k].spanIdx); h > maxChangeHeight {
				maxChangeHeight = h
			}
			last = k
		}

		// open spans lower than the tallest change must close here to avoid
		// crossing tags; schedule a synthetic close plus a re-opening
		// fragment and note the lowest covered height
		minCoverHeight := math.Inf(1)
		for _, s := range append([]int(nil), openList...) {
			if j.spanHeight(s) < maxChangeHeight && j.spans[s].end != o {
				j.spans[s].startMarker.contRight = true
				toOpen = append(toOpen, j.newMarker(s, o, false, true))
				toClose = append(toClose, j.newMarker(s, o, true, false))
				if h := float64(j.spanHeight(s)); h < minCoverHeight {
					minCoverHeight = h
				}
			}
		}

		// mark tags behind covering ones so they render without the border
		// at the split edge
		for _, m := range toOpen {
			if float64(j.spanHeight(m.spanIdx)) > minCoverHeight {
				m.coveredLeft = true
			}
		}
		for _, m := range toClose {
			if float64(j.spanHeight(m.spanIdx)) > minCoverHeight {
				j.spans[m.spanIdx].startMarker.coveredRight = true
			}
		}

		sort.SliceStable(toOpen, func(a, b int) bool { return toOpen[a].sortIdx < toOpen[b].sortIdx })
		sort.SliceStable(toClose, func(a, b int) bool { return toClose[a].sortIdx < toClose[b].sortIdx })

		// emit closes before opens; a close for a span that only opens at
		// this same offset belongs to a zero-width span and is emitted right
		// after the opens instead
		var zeroWidth []*marker
		for _, m := range toClose {
			if _, ok := openSet[m.spanIdx]; !ok {
				zeroWidth = append(zeroWidth, m)
				continue
			}
			out = append(out, segment{m: m})
			delete(openSet, m.spanIdx)
			openList = removeIdx(openList, m.spanIdx)
		}
		for _, m := range toOpen {
			out = append(out, segment{m: m})
			if _, ok := openSet[m.spanIdx]; !ok {
				openSet[m.spanIdx] = struct{}{}
				openList = append(openList, m.spanIdx)
			}
		}
		for _, m := range zeroWidth {
			out = append(out, segment{m: m})
			delete(openSet, m.spanIdx)
			openList = removeIdx(openList, m.spanIdx)
		}

		i = last + 1
	}
	out = append(out, segment{text: j.slice(o, len(j.text))})

	var sb strings.Builder
	sb.WriteString(legendHTML)
	for _, seg := range out {
		if seg.m != nil {
			sb.WriteString(j.renderMarker(seg.m))
		} else {
			sb.WriteString(seg.text)
		}
	}
	return sb.String()
}

// slice returns the text run between two code point offsets, clamped to the
// text bounds.
func (j *job) slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(j.text) {
		to = len(j.text)
	}
	if from >= to {
		return ""
	}
	return string(j.text[from:to])
}

func removeIdx(list []int, idx int) []int {
	for i, v := range list {
		if v == idx {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
