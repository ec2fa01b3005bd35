package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerMatches(t *testing.T) {
	s := New("foo", "foobarfoobaz")
	require.Equal(t, []string{"foo", "foo"}, s.CollectStrings())
}

func TestScannerGaps(t *testing.T) {
	s := NewInverted("foo", "foobarfoobaz")
	require.Equal(t, []string{"bar", "baz"}, s.CollectStrings())
}

func TestScannerRanges(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		content string
		mode    Mode
		want    []Range
	}{
		{"matches", "foo", "foobarfoobaz", ModeMatches, []Range{{0, 3}, {6, 9}}},
		{"gaps", "foo", "foobarfoobaz", ModeGaps, []Range{{3, 6}, {9, 12}}},
		{"non-overlapping", "aa", "aaaaa", ModeMatches, []Range{{0, 2}, {2, 4}}},
		{"non-overlapping gaps", "aa", "aaaaa", ModeGaps, []Range{{4, 5}}},
		{"trailing match", "baz", "foobaz", ModeMatches, []Range{{3, 6}}},
		{"trailing match gaps", "baz", "foobaz", ModeGaps, []Range{{0, 3}}},
		{"absent", "xyz", "foobar", ModeMatches, nil},
		{"absent gaps", "xyz", "foobar", ModeGaps, []Range{{0, 6}}},
		{"whole content", "abc", "abc", ModeMatches, []Range{{0, 3}}},
		{"whole content gaps", "abc", "abc", ModeGaps, nil},
		{"empty content", "abc", "", ModeMatches, nil},
		{"empty content gaps", "abc", "", ModeGaps, nil},
		{"multibyte", "é", "café é", ModeMatches, []Range{{3, 5}, {6, 8}}},
		{"multibyte gaps", "é", "café é", ModeGaps, []Range{{0, 3}, {5, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWithMode(tt.query, tt.content, tt.mode).Collect()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScannerQueryAbsent(t *testing.T) {
	content := "hello world"

	assert.Empty(t, New("zzz", content).Collect())

	gaps := NewInverted("zzz", content).Collect()
	require.Len(t, gaps, 1)
	assert.Equal(t, Range{Start: 0, End: len(content)}, gaps[0])
}

func TestScannerAdjacentMatches(t *testing.T) {
	var raw []Range
	for r := range NewInverted("a", "aa").All() {
		raw = append(raw, r)
	}
	require.Equal(t, []Range{{0, 0}}, raw)

	// Empty gaps before and between the matches, then the tail.
	raw = raw[:0]
	for r := range NewInverted("a", "aab").All() {
		raw = append(raw, r)
	}
	require.Equal(t, []Range{{0, 0}, {1, 1}, {2, 3}}, raw)

	assert.Empty(t, NewInverted("a", "aa").CollectStrings())
	assert.Empty(t, NewInverted("a", "aa").Collect())
	assert.Empty(t, Map(NewInverted("a", "aa"), Range.String))
}

func TestScannerLeadingMatchGap(t *testing.T) {
	s := NewInverted("foo", "foobar")

	r, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, Range{0, 0}, r)

	r, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, Range{3, 6}, r)

	_, ok = s.Next()
	assert.False(t, ok)
}

func TestScannerExhaustionIsSticky(t *testing.T) {
	for _, mode := range []Mode{ModeMatches, ModeGaps} {
		t.Run(mode.String(), func(t *testing.T) {
			s := NewWithMode("o", "foo boo", mode)
			for {
				if _, ok := s.Next(); !ok {
					break
				}
			}
			remainder := s.Remainder()
			for i := 0; i < 3; i++ {
				_, ok := s.Next()
				assert.False(t, ok)
				assert.Equal(t, remainder, s.Remainder())
			}
		})
	}
}

func TestScannerCursorMonotonic(t *testing.T) {
	content := "abcabcXabc"
	for _, mode := range []Mode{ModeMatches, ModeGaps} {
		s := NewWithMode("abc", content, mode)
		prev := 0
		for range s.All() {
			rem := s.Remainder()
			assert.GreaterOrEqual(t, rem.Start, prev)
			assert.Equal(t, len(content), rem.End)
			prev = rem.Start
		}
	}
}

func TestScannerEmptyQuery(t *testing.T) {
	assert.Empty(t, New("", "abc").Collect())

	gaps := NewInverted("", "abc").Collect()
	assert.Equal(t, []Range{{0, 3}}, gaps)

	assert.Empty(t, NewInverted("", "").Collect())
}

func TestScannerCollectFunc(t *testing.T) {
	var seen []Range
	got := New("o", "foo boo").CollectFunc(func(r Range) {
		seen = append(seen, r)
		r.Start = 100
	})

	want := []Range{{1, 2}, {2, 3}, {5, 6}, {6, 7}}
	assert.Equal(t, want, got)
	assert.Equal(t, want, seen)
}

func TestScannerCollectFuncSkipsEmptyGaps(t *testing.T) {
	calls := 0
	got := NewInverted("a", "aab").CollectFunc(func(Range) { calls++ })
	assert.Equal(t, []Range{{2, 3}}, got)
	assert.Equal(t, 1, calls)
}

func TestMap(t *testing.T) {
	lens := Map(New("ab", "abxxabab"), Range.Len)
	assert.Equal(t, []int{2, 2, 2}, lens)

	starts := Map(NewInverted("ab", "abxxabab"), func(r Range) int { return r.Start })
	assert.Equal(t, []int{2}, starts)
}

func TestScannerAccessors(t *testing.T) {
	s := NewInverted("q", "content")
	assert.Equal(t, "q", s.Query())
	assert.Equal(t, "content", s.Content())
	assert.Equal(t, ModeGaps, s.Mode())
	assert.Equal(t, Range{0, 7}, s.Remainder())
}

func TestScannerAllStopsEarly(t *testing.T) {
	s := New("a", "aaaa")
	for range s.All() {
		break
	}
	// The remaining three matches are still available.
	assert.Len(t, s.Collect(), 3)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "matches", ModeMatches.String())
	assert.Equal(t, "gaps", ModeGaps.String())
	assert.Equal(t, "unknown", Mode(7).String())
}

func TestRange(t *testing.T) {
	r := NewRange(2, 5)
	assert.Equal(t, "[2:5)", r.String())
	assert.Equal(t, 3, r.Len())
	assert.False(t, r.IsEmpty())
	assert.True(t, r.IsValid())
	assert.True(t, r.Overlaps(Range{4, 8}))
	assert.False(t, r.Overlaps(Range{5, 8}))
	assert.Equal(t, "cde", r.In("abcdefg"))
	assert.False(t, Range{3, 2}.IsValid())
	assert.True(t, Range{4, 4}.IsEmpty())
}

// FuzzComplementarity checks that matches and gaps together tile the content.
func FuzzComplementarity(f *testing.F) {
	f.Add("foo", "foobarfoobaz")
	f.Add("a", "aa")
	f.Add("", "abc")
	f.Add("xyz", "")
	f.Add("日本", "日本語日本")

	f.Fuzz(func(t *testing.T, query, content string) {
		ranges := append(New(query, content).Collect(), NewInverted(query, content).Collect()...)

		covered := make([]int, len(content))
		for _, r := range ranges {
			if !r.IsValid() || r.End > len(content) {
				t.Fatalf("range %s out of bounds for %d bytes", r, len(content))
			}
			for i := r.Start; i < r.End; i++ {
				covered[i]++
			}
		}
		for i, n := range covered {
			if n != 1 {
				t.Fatalf("offset %d covered %d times (query %q, content %q)", i, n, query, content)
			}
		}

		if query != "" {
			for _, m := range New(query, content).CollectStrings() {
				if m != query {
					t.Fatalf("match %q != query %q", m, query)
				}
			}
		}
		if !strings.Contains(content, query) || query == "" {
			if n := len(New(query, content).Collect()); n != 0 {
				t.Fatalf("expected no matches, got %d", n)
			}
		}
	})
}
