package render

import "sort"

// resolveHeights determines the visualized stacking height of every span and
// returns the maximum, or -1 when there are no spans.
//
// Algorithm:
//
//  1. define a strict total order of spans: leftmost first, longest first on
//     ties;
//
//  2. traverse spans in that order keeping the list of open spans sorted
//     longest-first, and record every later span into the "nested" set of
//     each earlier open span (simple but highly sub-optimal - worst case is
//     cubic in the number of concurrently open spans, acceptable at the
//     annotation densities this renderer sees);
//
//  3. resolve height as 0 for spans with nothing nested and
//     max(height(nested))+increment otherwise, where formatting spans
//     contribute an epsilon increment instead of a full level.
func (j *job) resolveHeights() int {
	order := make([]int, len(j.spans))
	for i := range order {
		order[i] = i
	}
	// leftmost first, longest first on ties
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := &j.spans[order[a]], &j.spans[order[b]]
		if sa.start != sb.start {
			return sa.start < sb.start
		}
		return sa.end-sa.start > sb.end-sb.start
	})

	var open []int
	for _, cur := range order {
		// drop spans that ended before the new span starts
		kept := open[:0]
		for _, o := range open {
			if j.spans[o].end > j.spans[cur].start {
				kept = append(kept, o)
			}
		}
		open = append(kept, cur)

		// longest first, earliest start on ties
		sort.SliceStable(open, func(a, b int) bool {
			sa, sb := &j.spans[open[a]], &j.spans[open[b]]
			la, lb := sa.end-sa.start, sb.end-sb.start
			if la != lb {
				return la > lb
			}
			return sa.start < sb.start
		})

		for a := 0; a < len(open); a++ {
			for b := a + 1; b < len(open); b++ {
				j.spans[open[a]].nested[open[b]] = struct{}{}
			}
		}
	}

	max := -1
	for i := range j.spans {
		if h := j.spanHeight(i); h > max {
			max = h
		}
	}
	return max
}
