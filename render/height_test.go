package render

import "testing"

// newTestJob builds render scratch state directly from intervals, bypassing
// standoff parsing and label normalization.
func newTestJob(text string, spans ...span) *job {
	opts := DefaultOptions()
	j := &job{opts: &opts, text: []rune(text)}
	for _, s := range spans {
		s.nested = make(map[int]struct{})
		s.sortHeight = heightUnset
		j.spans = append(j.spans, s)
	}
	return j
}

func highlight(start, end int, typ string) span {
	return span{start: start, end: end, typ: typ}
}

func formatting(start, end int, typ string) span {
	return span{start: start, end: end, typ: typ, formatting: true}
}

func TestResolveHeightsEmpty(t *testing.T) {
	j := newTestJob("some text")
	if max := j.resolveHeights(); max != -1 {
		t.Fatalf("resolveHeights() = %d, want -1 for no spans", max)
	}
}

func TestResolveHeightsSingle(t *testing.T) {
	j := newTestJob("some text", highlight(0, 4, "A"))
	if max := j.resolveHeights(); max != 0 {
		t.Fatalf("resolveHeights() = %d, want 0", max)
	}
	if h := j.spanHeight(0); h != 0 {
		t.Errorf("height = %d, want 0", h)
	}
}

func TestResolveHeightsContainment(t *testing.T) {
	j := newTestJob("0123456789", highlight(0, 10, "A"), highlight(2, 5, "B"))
	if max := j.resolveHeights(); max != 1 {
		t.Fatalf("resolveHeights() = %d, want 1", max)
	}
	if h := j.spanHeight(0); h != 1 {
		t.Errorf("outer height = %d, want 1", h)
	}
	if h := j.spanHeight(1); h != 0 {
		t.Errorf("inner height = %d, want 0", h)
	}
}

func TestResolveHeightsChain(t *testing.T) {
	j := newTestJob("0123456789",
		highlight(0, 10, "A"),
		highlight(1, 9, "B"),
		highlight(2, 8, "C"))
	if max := j.resolveHeights(); max != 2 {
		t.Fatalf("resolveHeights() = %d, want 2", max)
	}
	for i, want := range []int{2, 1, 0} {
		if h := j.spanHeight(i); h != want {
			t.Errorf("span %d height = %d, want %d", i, h, want)
		}
	}
}

func TestResolveHeightsOverlap(t *testing.T) {
	// partial overlap: the leftmost span counts the other as nested
	j := newTestJob("0123456789ABCDE", highlight(0, 10, "A"), highlight(5, 15, "B"))
	if max := j.resolveHeights(); max != 1 {
		t.Fatalf("resolveHeights() = %d, want 1", max)
	}
	if h := j.spanHeight(0); h != 1 {
		t.Errorf("left span height = %d, want 1", h)
	}
	if h := j.spanHeight(1); h != 0 {
		t.Errorf("right span height = %d, want 0", h)
	}
}

func TestResolveHeightsFormattingEpsilon(t *testing.T) {
	// a formatting span between two highlights must not add a full level
	j := newTestJob("0123456789",
		highlight(0, 10, "A"),
		formatting(2, 8, "bold"),
		highlight(3, 6, "C"))
	if max := j.resolveHeights(); max != 1 {
		t.Fatalf("resolveHeights() = %d, want 1", max)
	}
	if h := j.spanHeight(0); h != 1 {
		t.Errorf("outer highlight height = %d, want 1", h)
	}
	if h := j.spanHeight(1); h != 0 {
		t.Errorf("formatting height = %d, want 0", h)
	}
	if h := j.spanHeight(2); h != 0 {
		t.Errorf("inner highlight height = %d, want 0", h)
	}
}

func TestResolveHeightsFormattingSoleChild(t *testing.T) {
	// a highlight whose only nested span is a formatting tag still gains a
	// full level
	j := newTestJob("0123456789", highlight(0, 10, "A"), formatting(2, 8, "bold"))
	if max := j.resolveHeights(); max != 1 {
		t.Fatalf("resolveHeights() = %d, want 1", max)
	}
	if h := j.spanHeight(0); h != 1 {
		t.Errorf("wrapping highlight height = %d, want 1", h)
	}
}

func TestResolveHeightsSiblings(t *testing.T) {
	j := newTestJob("0123456789", highlight(0, 3, "A"), highlight(5, 8, "B"))
	if max := j.resolveHeights(); max != 0 {
		t.Fatalf("resolveHeights() = %d, want 0 for disjoint spans", max)
	}
}
