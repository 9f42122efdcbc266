// Package replace applies a resolved edit to exactly one column of a table.
package replace

import (
	"fmt"
	"regexp"

	"github.com/regexify/regexify/internal/domain"
	"github.com/regexify/regexify/internal/i18n"
	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/table"
)

// Apply substitutes every non-overlapping match of pattern in the string form
// of each cell of column with replacement, inserted literally. Only cells
// whose text changes are counted. The table is written only when at least
// one cell changed. Failures are reported in the outcome, never returned.
func Apply(t *table.Table, column, pattern, replacement string) (outcome domain.ReplacementOutcome) {
	if t == nil || !t.HasColumn(column) {
		return domain.ReplacementOutcome{
			Message: fmt.Sprintf(i18n.T("replace_column_not_found"), column),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			debuglog.Debug(debuglog.Basic, "replacement on %q panicked: %v\n", column, r)
			outcome = failed(column, fmt.Errorf("%v", r))
		}
	}()

	re, err := regexp.Compile(pattern)
	if err != nil {
		return failed(column, err)
	}

	original, _ := t.ColumnStrings(column)
	modified := make([]string, len(original))
	matches := 0
	for i, value := range original {
		modified[i] = re.ReplaceAllLiteralString(value, replacement)
		if modified[i] != value {
			matches++
		}
	}

	if matches == 0 {
		return domain.ReplacementOutcome{
			Message: fmt.Sprintf(i18n.T("replace_no_matches"), column, pattern),
		}
	}

	if err := t.SetColumn(column, modified); err != nil {
		return failed(column, err)
	}
	debuglog.Debug(debuglog.Detailed, "replaced %d cells in %q with pattern %q\n", matches, column, pattern)

	return domain.ReplacementOutcome{
		Modified:         true,
		MatchesFound:     matches,
		ProcessedColumns: []string{column},
		Message:          fmt.Sprintf(i18n.T("replace_success"), column, matches),
	}
}

func failed(column string, err error) domain.ReplacementOutcome {
	return domain.ReplacementOutcome{
		Message: fmt.Sprintf(i18n.T("replace_failed"), column, err),
	}
}
