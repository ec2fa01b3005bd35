package scan

import "fmt"

// Range is a half-open byte range [Start, End) into scanned content.
type Range struct {
	Start int `json:"start"` // Inclusive start offset
	End   int `json:"end"`   // Exclusive end offset
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (Start <= End).
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Overlaps returns true if this range overlaps with another range.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// In returns the substring of content covered by the range.
// It panics if the range lies outside content, like a slice expression.
func (r Range) In(content string) string {
	return content[r.Start:r.End]
}
