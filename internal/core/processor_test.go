package core

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexify/regexify/internal/domain"
	"github.com/regexify/regexify/internal/i18n"
	"github.com/regexify/regexify/internal/plugins/ai/dryrun"
	"github.com/regexify/regexify/internal/resolver"
	"github.com/regexify/regexify/internal/table"
)

const sampleCSV = "ID,Name,Email\n1,John,john@test.com\n2,Jane,jane@test.com\n3,John,\n"

func TestMain(m *testing.M) {
	if _, err := i18n.Init("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func sample(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return tbl
}

func processor(answer string) *Processor {
	return NewProcessor(resolver.New(dryrun.NewClient(answer), time.Second), 0)
}

func TestProcessMaskWholeColumn(t *testing.T) {
	tbl := sample(t)

	res := processor("Name|||.*|||RHOMBUS").Process(context.Background(), tbl, "Mask all values in Name column with RHOMBUS")

	assert.Equal(t, "Mask all values in Name column with RHOMBUS", res.InputText)
	assert.Equal(t, "Name", res.TargetColumn)
	assert.Equal(t, ".*", res.RegexPattern)
	assert.Equal(t, "RHOMBUS", res.ReplacementValue)
	assert.Equal(t, domain.SourceModel, res.ResolvedBy)
	assert.Equal(t, 3, res.MatchesFound)
	assert.Equal(t, []string{"Name"}, res.ColumnsProcessed)
	assert.Contains(t, res.Message, "3 replacements")

	names, _ := tbl.ColumnStrings("Name")
	assert.Equal(t, []string{"RHOMBUS", "RHOMBUS", "RHOMBUS"}, names)
	require.Len(t, res.Preview, 3)
	assert.Equal(t, "RHOMBUS", res.Preview[0]["Name"])
	assert.Equal(t, "john@test.com", res.Preview[0]["Email"])
}

func TestProcessEmailOnly(t *testing.T) {
	tbl := sample(t)

	res := processor(`Email|||\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b|||HIDDEN`).
		Process(context.Background(), tbl, "Find emails in Email column and replace with HIDDEN")

	assert.Equal(t, 2, res.MatchesFound)
	emails, _ := tbl.ColumnStrings("Email")
	assert.Equal(t, []string{"HIDDEN", "HIDDEN", ""}, emails)
	names, _ := tbl.ColumnStrings("Name")
	assert.Equal(t, []string{"John", "Jane", "John"}, names)
}

func TestProcessNoMatchLeavesTableUntouched(t *testing.T) {
	tbl := sample(t)

	res := processor(`Name|||\d{9}|||X`).Process(context.Background(), tbl, "Replace nine digit numbers in Name with X")

	assert.Equal(t, 0, res.MatchesFound)
	assert.Empty(t, res.ColumnsProcessed)
	assert.NotNil(t, res.ColumnsProcessed)
	assert.Contains(t, res.Message, "No matches")

	fresh := sample(t)
	assert.Equal(t, fresh.Records(0), tbl.Records(0))
}

func TestProcessReportsReconciledColumn(t *testing.T) {
	tbl := sample(t)

	res := processor("Address|||.*|||X").Process(context.Background(), tbl, "Replace the Address column with X")

	assert.Equal(t, "ID", res.TargetColumn)
	assert.Equal(t, []string{"ID"}, res.ColumnsProcessed)
	ids, _ := tbl.ColumnStrings("ID")
	assert.Equal(t, []string{"X", "X", "X"}, ids)
}

func TestProcessFallsBackWithoutAnswer(t *testing.T) {
	tbl := sample(t)

	res := processor("").Process(context.Background(), tbl, "Replace the Name column with REDACTED")

	assert.Equal(t, domain.SourceFallback, res.ResolvedBy)
	assert.Equal(t, "Name", res.TargetColumn)
	assert.Equal(t, 3, res.MatchesFound)
}

func TestProcessPreviewIsBounded(t *testing.T) {
	var b strings.Builder
	b.WriteString("Name\n")
	for i := 0; i < 25; i++ {
		b.WriteString("Someone\n")
	}
	tbl, err := table.ReadCSV(strings.NewReader(b.String()))
	require.NoError(t, err)

	res := NewProcessor(resolver.New(nil, 0), 0).Process(context.Background(), tbl, "Replace the Name column with X")

	assert.Equal(t, 25, res.MatchesFound)
	assert.Len(t, res.Preview, DefaultPreviewRows)
}
