package resolver

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/regexify/regexify/internal/domain"
	"github.com/regexify/regexify/internal/patterns"
)

const (
	// DefaultReplacement is used when the instruction names no replacement.
	DefaultReplacement = "REDACTED"
	// DefaultColumn labels the target when there are no columns at all.
	DefaultColumn = "Name"
)

// columnKeywords are tried in order when no column is named literally.
var columnKeywords = []string{"name", "email", "phone", "contact", "address", "id"}

// Fallback extracts an edit from the instruction with fixed rules. It never
// fails and its pattern always compiles.
func Fallback(instruction string, available []string) domain.EditTriple {
	lowered := strings.ToLower(instruction)

	target := findColumn(lowered, available)

	return domain.EditTriple{
		TargetColumn: targetOrDefault(target, available),
		Pattern:      patterns.For(target, lowered),
		Replacement:  replacementFrom(instruction),
	}
}

func findColumn(lowered string, available []string) string {
	for _, col := range available {
		if strings.Contains(lowered, strings.ToLower(col)) {
			return col
		}
	}

	for _, keyword := range columnKeywords {
		if !strings.Contains(lowered, keyword) {
			continue
		}
		for _, col := range available {
			if strings.Contains(strings.ToLower(col), keyword) {
				return col
			}
		}
		// Display label only; it may not exist in the dataset.
		return cases.Title(language.English).String(keyword)
	}
	return ""
}

func targetOrDefault(target string, available []string) string {
	switch {
	case target != "":
		return target
	case len(available) > 0:
		return available[0]
	default:
		return DefaultColumn
	}
}

// replacementFrom takes the text after the first "with", case-sensitive.
func replacementFrom(instruction string) string {
	_, after, found := strings.Cut(instruction, "with")
	if !found {
		return DefaultReplacement
	}
	value := strings.Trim(strings.TrimSpace(after), `"'`)
	if value == "" {
		return DefaultReplacement
	}
	return value
}
