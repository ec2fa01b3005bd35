package scan

import (
	"iter"
	"strings"
)

// Mode selects what a Scanner yields.
type Mode int

const (
	// ModeMatches yields the ranges where the query occurs.
	ModeMatches Mode = iota
	// ModeGaps yields the ranges between occurrences of the query.
	ModeGaps
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeMatches:
		return "matches"
	case ModeGaps:
		return "gaps"
	default:
		return "unknown"
	}
}

// Scanner is a forward-only cursor over content that yields successive
// match or gap ranges on demand.
//
// The remainder still to be scanned is always [cursor, len(content)).
// cursor never decreases. Once Next reports false it keeps reporting false.
type Scanner struct {
	query   string
	content string
	cursor  int
	mode    Mode
	done    bool
}

// New returns a Scanner yielding every non-overlapping occurrence of query
// in content, leftmost first.
func New(query, content string) *Scanner {
	return NewWithMode(query, content, ModeMatches)
}

// NewInverted returns a Scanner yielding the spans of content between
// occurrences of query.
func NewInverted(query, content string) *Scanner {
	return NewWithMode(query, content, ModeGaps)
}

// NewWithMode returns a Scanner over content in the given mode.
func NewWithMode(query, content string, mode Mode) *Scanner {
	return &Scanner{
		query:   query,
		content: content,
		mode:    mode,
	}
}

// Query returns the string being searched for.
func (s *Scanner) Query() string {
	return s.query
}

// Content returns the full content being scanned.
func (s *Scanner) Content() string {
	return s.content
}

// Mode returns the scanner mode.
func (s *Scanner) Mode() Mode {
	return s.mode
}

// Remainder returns the range of content not yet consumed.
func (s *Scanner) Remainder() Range {
	return Range{Start: s.cursor, End: len(s.content)}
}

// Next advances the cursor and returns the next range.
// It returns false when no further range exists.
//
// In ModeGaps an empty range is returned between adjacent matches and
// before a match at the start of content. The collecting methods drop
// those; callers of Next see them.
func (s *Scanner) Next() (Range, bool) {
	if s.done {
		return Range{}, false
	}

	var (
		r  Range
		ok bool
	)
	if s.mode == ModeGaps {
		r, ok = s.nextGap()
	} else {
		r, ok = s.nextMatch()
	}
	if !ok {
		s.done = true
	}
	return r, ok
}

// find searches the remainder for the query and returns the match range in
// content coordinates. An empty query never matches.
func (s *Scanner) find() (Range, bool) {
	if s.query == "" {
		return Range{}, false
	}
	idx := strings.Index(s.content[s.cursor:], s.query)
	if idx < 0 {
		return Range{}, false
	}
	start := s.cursor + idx
	return Range{Start: start, End: start + len(s.query)}, true
}

func (s *Scanner) nextMatch() (Range, bool) {
	m, ok := s.find()
	if !ok {
		return Range{}, false
	}
	s.cursor = m.End
	return m, true
}

func (s *Scanner) nextGap() (Range, bool) {
	end := len(s.content)
	start := s.cursor

	gapEnd, next := end, end
	if m, ok := s.find(); ok {
		gapEnd, next = m.Start, min(m.End, end)
	}

	s.cursor = next
	if start == gapEnd && next == end {
		return Range{}, false
	}
	return Range{Start: start, End: gapEnd}, true
}

// All returns an iterator over the raw ranges produced by Next, including
// empty gaps. Ranging over it consumes the scanner.
func (s *Scanner) All() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		for {
			r, ok := s.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Collect drains the scanner and returns every non-empty range in scan order.
func (s *Scanner) Collect() []Range {
	return s.CollectFunc(nil)
}

// CollectFunc is like Collect but calls effect with each non-empty range
// before it is appended. effect receives a copy; it cannot change the result.
func (s *Scanner) CollectFunc(effect func(Range)) []Range {
	var out []Range
	for r := range s.All() {
		if r.IsEmpty() {
			continue
		}
		if effect != nil {
			effect(r)
		}
		out = append(out, r)
	}
	return out
}

// CollectStrings drains the scanner and returns the substring of content
// for every non-empty range.
func (s *Scanner) CollectStrings() []string {
	return Map(s, func(r Range) string {
		return r.In(s.content)
	})
}

// Map drains s and returns fn applied to every non-empty range, in scan order.
func Map[R any](s *Scanner, fn func(Range) R) []R {
	var out []R
	for r := range s.All() {
		if r.IsEmpty() {
			continue
		}
		out = append(out, fn(r))
	}
	return out
}
