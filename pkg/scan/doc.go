// Package scan finds literal substring occurrences in a string.
//
// A Scanner walks a content string from left to right and yields, one at a
// time, either every non-overlapping occurrence of a query (ModeMatches) or
// every span of content between those occurrences (ModeGaps). Ranges are
// half-open byte offsets into the original content.
//
// Building on the Scanner, Reassemble rebuilds the whole content after
// transforming matched and unmatched spans independently:
//
//	out := scan.Reassemble("foobarfoobaz", "foo", strings.ToUpper, nil)
//	// out == "fooBARfooBAZ"
//
// A Scanner is a single-use cursor. It is not safe for concurrent use.
package scan
