package scan

import (
	"slices"
	"strings"
)

// StringFunc transforms a span of content.
type StringFunc func(string) string

// piece is a transformed span tagged with its offset in the original content.
type piece struct {
	text  string
	start int
}

// Reassemble rebuilds content with every occurrence of query passed through
// matchFn and every span between occurrences passed through gapFn.
// A nil function leaves its spans unchanged.
func Reassemble(content, query string, gapFn, matchFn StringFunc) string {
	matches := Map(New(query, content), tagWith(content, matchFn))
	gaps := Map(NewInverted(query, content), tagWith(content, gapFn))

	pieces := append(matches, gaps...)
	slices.SortStableFunc(pieces, func(a, b piece) int {
		return a.start - b.start
	})

	var sb strings.Builder
	sb.Grow(len(content))
	for _, p := range pieces {
		sb.WriteString(p.text)
	}
	return sb.String()
}

// Transform rebuilds content with every occurrence of query passed through
// matchFn. Text between occurrences is kept as is.
func Transform(query, content string, matchFn StringFunc) string {
	return Reassemble(content, query, nil, matchFn)
}

func tagWith(content string, fn StringFunc) func(Range) piece {
	return func(r Range) piece {
		text := r.In(content)
		if fn != nil {
			text = fn(text)
		}
		return piece{text: text, start: r.Start}
	}
}

// Query is a literal search string. Its methods mirror the package-level
// Transform and Reassemble for callers that prefer method style.
type Query string

// Transform is Transform(string(q), content, matchFn).
func (q Query) Transform(content string, matchFn StringFunc) string {
	return Transform(string(q), content, matchFn)
}

// Reassemble is Reassemble(content, string(q), gapFn, matchFn).
func (q Query) Reassemble(content string, gapFn, matchFn StringFunc) string {
	return Reassemble(content, string(q), gapFn, matchFn)
}

// Scanner returns a Scanner for q over content in the given mode.
func (q Query) Scanner(content string, mode Mode) *Scanner {
	return NewWithMode(string(q), content, mode)
}
