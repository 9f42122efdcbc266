// Package columns maps inexact column names onto the real columns of a
// dataset.
package columns

import (
	"strings"

	"github.com/samber/lo"
)

// Reconcile returns the column of available that best matches candidate:
// a case-insensitive exact match, then the first column that contains or is
// contained in candidate, then the first column. With no columns it returns
// candidate unchanged.
func Reconcile(candidate string, available []string) string {
	if len(available) == 0 {
		return candidate
	}

	target := strings.ToLower(candidate)

	if col, ok := lo.Find(available, func(col string) bool {
		return strings.ToLower(col) == target
	}); ok {
		return col
	}

	if col, ok := lo.Find(available, func(col string) bool {
		lower := strings.ToLower(col)
		return strings.Contains(target, lower) || strings.Contains(lower, target)
	}); ok {
		return col
	}

	// Never leave the caller without a column.
	return available[0]
}

// Contains reports whether name is exactly one of available.
func Contains(available []string, name string) bool {
	return lo.Contains(available, name)
}
