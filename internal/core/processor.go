package core

import (
	"context"

	"github.com/regexify/regexify/internal/domain"
	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/replace"
	"github.com/regexify/regexify/internal/resolver"
	"github.com/regexify/regexify/internal/table"
)

const DefaultPreviewRows = 10

// Processor runs one instruction against one table: capture the columns,
// resolve an edit, apply it and preview the result.
type Processor struct {
	resolver    *resolver.Resolver
	previewRows int
}

func NewProcessor(r *resolver.Resolver, previewRows int) *Processor {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	return &Processor{resolver: r, previewRows: previewRows}
}

// Process mutates t in place when the edit matches anything. It never fails;
// problems are reported in the result message.
func (o *Processor) Process(ctx context.Context, t *table.Table, instruction string) (result domain.ProcessResult) {
	available := domain.ColumnSet(t.Columns())

	resolution := o.resolver.ResolveDetailed(ctx, instruction, available)
	debuglog.Debug(debuglog.Basic, "processing %q: column=%q source=%s\n",
		instruction, resolution.TargetColumn, resolution.Source)

	outcome := replace.Apply(t, resolution.TargetColumn, resolution.Pattern, resolution.Replacement)

	processed := outcome.ProcessedColumns
	if processed == nil {
		processed = []string{}
	}

	return domain.ProcessResult{
		InputText:        instruction,
		TargetColumn:     resolution.TargetColumn,
		RegexPattern:     resolution.Pattern,
		ReplacementValue: resolution.Replacement,
		ColumnsProcessed: processed,
		MatchesFound:     outcome.MatchesFound,
		Message:          outcome.Message,
		Preview:          t.Records(o.previewRows),
		ResolvedBy:       resolution.Source,
	}
}
