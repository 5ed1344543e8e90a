package pagination

// FetchLimit is the number of rows to read for a page of limit items. The extra row
// only tells whether another page exists and is never returned.
func FetchLimit(limit int) int {
	return limit + 1
}

// SplitPage trims rows read with FetchLimit back to limit and reports whether a
// further page exists.
//
// Examples:
//   - 13 rows, limit 12 -> first 12 rows, true
//   - 12 rows, limit 12 -> all 12 rows, false
//   - 5 rows, limit 12  -> all 5 rows, false
func SplitPage[T any](rows []T, limit int) ([]T, bool) {
	if limit < 0 {
		limit = 0
	}
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
