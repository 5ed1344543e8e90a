// Package search holds helpers shared by the SQL adapters for substring search.
package search

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE metacharacters in s and wraps the result in % so it
// matches s anywhere in the column. The pattern assumes backslash as escape
// character, which is PostgreSQL's default and must be declared with ESCAPE '\' in
// SQLite.
func EscapeLike(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
