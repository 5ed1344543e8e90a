// Package text provides rune-aware helpers for listing titles and search keywords,
// which are mostly Hangul and must never be cut in the middle of a character.
package text

import "unicode/utf8"

// CountRunes counts the Unicode characters (runes) in s, not its bytes.
//
//	CountRunes("hello")     // 5
//	CountRunes("중고책")     // 3
//	CountRunes("책👋")       // 2
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// Ellipsis is appended by Truncate.
const Ellipsis = "…"

// Truncate shortens s to at most limit runes, ending with Ellipsis when anything was
// cut. A non-positive limit returns "".
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if CountRunes(s) <= limit {
		return s
	}
	if limit == 1 {
		return Ellipsis
	}
	n := 0
	for i := range s {
		if n == limit-1 {
			return s[:i] + Ellipsis
		}
		n++
	}
	return s
}
