package table

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXFile reads the first sheet of the workbook at path. The first row is
// the header; empty cells become nil.
func ReadXLSXFile(path string) (*Table, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open workbook: %w", ErrMalformed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: could not read sheet %q: %w", ErrMalformed, sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no header row", ErrMalformed, sheets[0])
	}

	rows := make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]any, len(record))
		for i, field := range record {
			if field != "" {
				row[i] = field
			}
		}
		rows = append(rows, row)
	}
	return New(records[0], rows)
}

// WriteXLSX writes t as a single-sheet workbook.
func WriteXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := t.Columns()
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for r, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for i, v := range row {
			if v != nil {
				values[i] = Stringify(v)
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// WriteXLSXFile replaces the workbook at path.
func WriteXLSXFile(path string, t *Table) error {
	return replaceFile(path, ".regexify-*.xlsx", func(w io.Writer) error {
		return WriteXLSX(w, t)
	})
}
