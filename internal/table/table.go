// Package table holds the in-memory tabular data an edit is applied to.
package table

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

// ErrMalformed marks input that does not form a rectangular table.
var ErrMalformed = errors.New("malformed table")

// Table is a rectangular grid of cells with named columns. Cells may hold any
// value; Stringify defines their text form.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New builds a table. Short rows are padded with nil cells. A row with more
// cells than columns is rejected, since writing it back would drop data.
func New(columns []string, rows [][]any) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformed, c)
		}
		index[c] = i
	}

	normalized := make([][]any, len(rows))
	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells for %d columns", ErrMalformed, i+1, len(row), len(columns))
		}
		r := make([]any, len(columns))
		copy(r, row)
		normalized[i] = r
	}

	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    normalized,
	}, nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// ColumnStrings returns the string form of every cell in column.
func (t *Table) ColumnStrings(column string) ([]string, bool) {
	i, ok := t.index[column]
	if !ok {
		return nil, false
	}
	return lo.Map(t.rows, func(row []any, _ int) string {
		return Stringify(row[i])
	}), true
}

// SetColumn replaces every cell of column with values.
func (t *Table) SetColumn(column string, values []string) error {
	i, ok := t.index[column]
	if !ok {
		return fmt.Errorf("column %q not found", column)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q: got %d values for %d rows", column, len(values), len(t.rows))
	}
	for r, v := range values {
		t.rows[r][i] = v
	}
	return nil
}

// Records returns up to n rows as column→value maps, in the shape used for
// previews. n <= 0 means all rows.
func (t *Table) Records(n int) []map[string]any {
	if n <= 0 || n > len(t.rows) {
		n = len(t.rows)
	}
	out := make([]map[string]any, n)
	for r := 0; r < n; r++ {
		rec := make(map[string]any, len(t.columns))
		for i, c := range t.columns {
			rec[c] = t.rows[r][i]
		}
		out[r] = rec
	}
	return out
}

// TextColumns returns the columns holding at least one non-numeric value.
// Empty cells are ignored, so an all-empty column counts as numeric.
func (t *Table) TextColumns() []string {
	return lo.Filter(t.columns, func(c string, i int) bool {
		return lo.SomeBy(t.rows, func(row []any) bool {
			return !numeric(row[i])
		})
	})
}

// Stringify is the lossy text form of a cell used for matching.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func numeric(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case int, int32, int64, uint64, float32, float64:
		return true
	case string:
		if x == "" {
			return true
		}
		_, err := strconv.ParseFloat(x, 64)
		return err == nil
	default:
		return false
	}
}
