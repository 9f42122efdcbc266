// Package patterns maps semantic column names to ready-made regular
// expressions (Go RE2 syntax).
package patterns

import "strings"

const (
	// Generic is used when no column is known at all.
	Generic = `\b\w+\b`
	// Words matches runs of alphabetic words and is the default for columns
	// with no recognized keyword.
	Words = `\b[A-Za-z]+(?:\s[A-Za-z]+)*\b`
	// MatchAll matches any value, including the empty string.
	MatchAll = `.*`
)

// Entry pairs a column-name keyword with its expression.
type Entry struct {
	Keyword string
	Expr    string
}

// library is scanned in order; the first keyword contained in the column
// name wins.
var library = []Entry{
	{"email", `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`},
	{"phone", `\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`},
	{"name", `\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)*\b`},
	{"id", `\b\d+\b`},
	{"address", `\b\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd)\b`},
	{"zip", `\b\d{5}(?:-\d{4})?\b`},
	{"ssn", `\b\d{3}-\d{2}-\d{4}\b`},
	{"credit", `\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`},
	{"url", `https?://[^\s]+`},
	{"date", `\b\d{1,2}/\d{1,2}/\d{4}\b`},
}

// Entries returns a copy of the keyword table in priority order.
func Entries() []Entry {
	out := make([]Entry, len(library))
	copy(out, library)
	return out
}

// For picks the expression for columnName. instructionLowered is the
// lower-cased instruction; a "replace ... column ... with" request means the
// whole cell is replaced and overrides keyword matching.
func For(columnName, instructionLowered string) string {
	if columnName == "" {
		return Generic
	}
	if WholeColumn(instructionLowered) {
		return MatchAll
	}

	column := strings.ToLower(columnName)
	for _, e := range library {
		if strings.Contains(column, e.Keyword) {
			return e.Expr
		}
	}
	return Words
}

// WholeColumn reports whether a lower-cased instruction asks to replace the
// entire column.
func WholeColumn(instructionLowered string) bool {
	return strings.Contains(instructionLowered, "replace") &&
		strings.Contains(instructionLowered, "column") &&
		strings.Contains(instructionLowered, "with")
}
