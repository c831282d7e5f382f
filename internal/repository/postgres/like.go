package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes ILIKE metacharacters so user-supplied search text
// matches literally instead of acting as a pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
