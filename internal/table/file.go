package table

import (
	"path/filepath"
	"strings"
)

// SpreadsheetExt is the workbook extension; any other file is read as CSV.
const SpreadsheetExt = ".xlsx"

func IsSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SpreadsheetExt)
}

// ReadFile reads path as a workbook or as CSV depending on its extension.
func ReadFile(path string) (*Table, error) {
	if IsSpreadsheet(path) {
		return ReadXLSXFile(path)
	}
	return ReadCSVFile(path)
}

// WriteFile replaces path in the format its extension names.
func WriteFile(path string, t *Table) error {
	if IsSpreadsheet(path) {
		return WriteXLSXFile(path, t)
	}
	return WriteCSVFile(path, t)
}
