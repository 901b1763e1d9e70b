package buffer

import "fmt"

// Range spans from Start to End. End may precede Start until Normalize.
type Range struct {
	Start Position
	End   Position

	// Inclusive means the character under End belongs to the range.
	Inclusive bool

	// Linewise means the range covers whole lines from Start.Line to End.Line.
	Linewise bool
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	kind := "exclusive"
	switch {
	case r.Linewise:
		kind = "linewise"
	case r.Inclusive:
		kind = "inclusive"
	}
	return fmt.Sprintf("[%s %s %s]", r.Start, r.End, kind)
}

// Normalize returns the range with Start at or before End.
func (r Range) Normalize() Range {
	if r.End.Offset < r.Start.Offset {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Span returns the half-open rune offsets [start, end) covered by a
// normalized charwise range. Inclusive ends never extend past the end of
// their line.
func (r Range) Span(lines Lines) (int, int) {
	r = r.Normalize()
	end := r.End.Offset
	if r.Inclusive && r.End.Column < lines.RuneLen(r.End.Line) {
		end++
	}
	return r.Start.Offset, end
}

// LineSpan returns the first and last line covered by the range.
func (r Range) LineSpan() (int, int) {
	r = r.Normalize()
	return r.Start.Line, r.End.Line
}

// IsEmpty returns true if a charwise range covers no text.
func (r Range) IsEmpty(lines Lines) bool {
	if r.Linewise {
		return false
	}
	start, end := r.Span(lines)
	return start == end
}
