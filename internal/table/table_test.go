package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "ID,Name,Email\n1,John,john@test.com\n2,Jane,jane@test.com\n"

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "Name", "Email"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())

	names, ok := tbl.ColumnStrings("Name")
	require.True(t, ok)
	assert.Equal(t, []string{"John", "Jane"}, names)

	assert.Equal(t, []string{"Name", "Email"}, tbl.TextColumns())
}

func TestReadCSVShortRowsAndEmpty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("A,B\n1\n2,x\n"))
	require.NoError(t, err)

	assert.Nil(t, tbl.Records(1)[0]["B"])
	b, _ := tbl.ColumnStrings("B")
	assert.Equal(t, []string{"", "x"}, b)

	_, err = ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadCSVRejectsLongRows(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("A,B\n1,2\n3,x,extra\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "row 2 has 3 cells for 2 columns")
}

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := New([]string{"A", "A"}, nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestColumnsIsACopy(t *testing.T) {
	tbl, err := New([]string{"A", "B"}, nil)
	require.NoError(t, err)

	cols := tbl.Columns()
	cols[0] = "changed"
	assert.Equal(t, []string{"A", "B"}, tbl.Columns())
}

func TestSetColumn(t *testing.T) {
	tbl, err := New([]string{"A"}, [][]any{{1}, {2}})
	require.NoError(t, err)

	require.NoError(t, tbl.SetColumn("A", []string{"x", "y"}))
	got, _ := tbl.ColumnStrings("A")
	assert.Equal(t, []string{"x", "y"}, got)

	assert.Error(t, tbl.SetColumn("missing", []string{"x", "y"}))
	assert.Error(t, tbl.SetColumn("A", []string{"x"}))
}

func TestRecords(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	recs := tbl.Records(1)
	require.Len(t, recs, 1)
	assert.Equal(t, "John", recs[0]["Name"])

	assert.Len(t, tbl.Records(0), 2)
	assert.Len(t, tbl.Records(50), 2)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{42, "42"},
		{int64(-7), "-7"},
		{1.5, "1.5"},
		{2.0, "2"},
		{true, "true"},
		{[]byte("b"), "b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stringify(tt.in))
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, sampleCSV, buf.String())

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSVFile(path, tbl))

	again, err := ReadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Records(0), again.Records(0))
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	tbl, err := New([]string{"ID", "Name", "Note"}, [][]any{
		{1, "John", nil},
		{2, "Jane", "vip"},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "people.xlsx")
	require.NoError(t, WriteFile(path, tbl))

	again, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name", "Note"}, again.Columns())
	assert.Equal(t, 2, again.Len())

	names, _ := again.ColumnStrings("Name")
	assert.Equal(t, []string{"John", "Jane"}, names)
	notes, _ := again.ColumnStrings("Note")
	assert.Equal(t, []string{"", "vip"}, notes)
	assert.Equal(t, "1", again.Records(1)[0]["ID"])
}

func TestReadFileDispatch(t *testing.T) {
	dir := t.TempDir()
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, WriteFile(csvPath, tbl))
	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(raw))

	assert.True(t, IsSpreadsheet("Book.XLSX"))
	assert.False(t, IsSpreadsheet("data.csv"))

	_, err = ReadFile(filepath.Join(dir, "missing.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "text.xlsx"), []byte(sampleCSV), 0o644))
	_, err = ReadFile(filepath.Join(dir, "text.xlsx"))
	assert.ErrorIs(t, err, ErrMalformed)
}
