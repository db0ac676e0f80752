package render

// HeadingPolicy controls the promotion of section spans into HTML heading
// tags: short sections near the top of the document become h2, later short
// sections h3, and anything longer than MaxLength stays a plain section.
type HeadingPolicy struct {
	Enable    bool
	MaxLength int
	TopOffset int
}

// Tag returns the heading tag for a section span covering [start, end), or
// ok == false when the span does not qualify for promotion.
func (p HeadingPolicy) Tag(start, end int) (tag string, ok bool) {
	if !p.Enable || end-start >= p.MaxLength {
		return "", false
	}
	if start < p.TopOffset {
		return "h2", true
	}
	return "h3", true
}
