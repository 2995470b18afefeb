package helper

import (
	"regexp"
	"strings"
)

var IdentifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func IsValidIdentifier(s string) bool {
	return IdentifierRegex.MatchString(s)
}

// QuoteIdentifier wraps s in double quotes, the identifier quoting shared by
// SQLite and PostgreSQL. Embedded quotes are doubled.
func QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
