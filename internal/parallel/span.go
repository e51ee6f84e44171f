package parallel

// Span is the half-open range [Start, End).
type Span struct {
	Start, End int
}

// Len returns End - Start.
func (s Span) Len() int { return s.End - s.Start }

// Split divides [0, n) into at most parts contiguous spans of at least
// minLen each, in order. Leftover items go to the first spans. It returns
// a single span when n is too small to split and nil when n <= 0.
func Split(n, parts, minLen int) []Span {
	if n <= 0 {
		return nil
	}
	minLen = max(1, minLen)
	parts = max(1, min(parts, n/minLen))

	out := make([]Span, parts)
	size, extra := n/parts, n%parts
	start := 0
	for i := range out {
		l := size
		if i < extra {
			l++
		}
		out[i] = Span{Start: start, End: start + l}
		start += l
	}
	return out
}
