package buffer

import "fmt"

// Position is a location in a Lines value.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns a human-readable representation as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare returns -1 if p is before other, 0 if equal, 1 if after.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p is before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p is after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}
