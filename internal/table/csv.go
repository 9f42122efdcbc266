package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadCSV parses a header row followed by data rows. Empty fields become nil
// cells; every other field is kept as a string.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: csv has no header row", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read csv header: %w", ErrMalformed, err)
	}

	var rows [][]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: could not read csv row %d: %w", ErrMalformed, len(rows)+1, err)
		}
		row := make([]any, len(record))
		for i, field := range record {
			if field != "" {
				row[i] = field
			}
		}
		rows = append(rows, row)
	}

	return New(header, rows)
}

// ReadCSVFile reads the CSV file at path.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes the header and every row using Stringify.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.columns); err != nil {
		return err
	}
	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, cell := range row {
			record[i] = Stringify(cell)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile replaces the CSV file at path.
func WriteCSVFile(path string, t *Table) error {
	return replaceFile(path, ".regexify-*.csv", func(w io.Writer) error {
		return WriteCSV(w, t)
	})
}

// replaceFile writes through a temporary file in the same directory and
// renames it over path, so readers never observe a partial write.
func replaceFile(path, pattern string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
