package resolver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/regexify/regexify/internal/columns"
	"github.com/regexify/regexify/internal/domain"
)

var (
	ErrEmptyAnswer     = errors.New("empty answer")
	ErrMalformedAnswer = errors.New("malformed answer")
	ErrInvalidPattern  = errors.New("invalid pattern")
)

var fenceReplacer = strings.NewReplacer("```", "", "`", "")

// ParseAnswer validates a raw model answer of the form
// column|||pattern|||replacement. Code fences and backticks are removed, the
// pattern must compile, and a column that is not exactly one of available is
// reconciled against it.
func ParseAnswer(raw string, available []string) (domain.EditTriple, error) {
	content := strings.TrimSpace(fenceReplacer.Replace(raw))
	if content == "" {
		return domain.EditTriple{}, ErrEmptyAnswer
	}

	if n := strings.Count(content, Delimiter); n != 2 {
		return domain.EditTriple{}, fmt.Errorf("%w: want 2 %q delimiters, got %d", ErrMalformedAnswer, Delimiter, n)
	}
	parts := strings.Split(content, Delimiter)

	triple := domain.EditTriple{
		TargetColumn: strings.TrimSpace(parts[0]),
		Pattern:      strings.TrimSpace(parts[1]),
		Replacement:  strings.TrimSpace(parts[2]),
	}

	if _, err := regexp.Compile(triple.Pattern); err != nil {
		return domain.EditTriple{}, fmt.Errorf("%w %q: %v", ErrInvalidPattern, triple.Pattern, err)
	}

	if len(available) > 0 && !columns.Contains(available, triple.TargetColumn) {
		triple.TargetColumn = columns.Reconcile(triple.TargetColumn, available)
	}
	return triple, nil
}
