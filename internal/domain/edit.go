package domain

// ColumnSet is the ordered list of column names a resolution runs against.
// It is captured from the table before resolution starts.
type ColumnSet []string

// EditTriple is a resolved single-column edit.
type EditTriple struct {
	TargetColumn string `json:"target_column"`
	Pattern      string `json:"regex_pattern"`
	Replacement  string `json:"replacement_value"`
}

// ResolutionSource records which resolver produced an EditTriple.
type ResolutionSource string

const (
	SourceModel    ResolutionSource = "model"
	SourceFallback ResolutionSource = "fallback"
)

// Resolution is an EditTriple together with where it came from.
type Resolution struct {
	EditTriple
	Source ResolutionSource `json:"resolved_by"`
}

// ReplacementOutcome reports what Apply did to the table.
// MatchesFound > 0 iff Modified, and then ProcessedColumns holds exactly the
// target column.
type ReplacementOutcome struct {
	Modified         bool     `json:"modified"`
	MatchesFound     int      `json:"matches_found"`
	ProcessedColumns []string `json:"columns_processed"`
	Message          string   `json:"message"`
}

// ProcessResult is the caller-facing result of one instruction.
type ProcessResult struct {
	InputText        string           `json:"input_text"`
	TargetColumn     string           `json:"target_column"`
	RegexPattern     string           `json:"regex_pattern"`
	ReplacementValue string           `json:"replacement_value"`
	ColumnsProcessed []string         `json:"columns_processed"`
	MatchesFound     int              `json:"matches_found"`
	Message          string           `json:"message"`
	Preview          []map[string]any `json:"processed_data_preview"`
	ResolvedBy       ResolutionSource `json:"resolved_by"`
}
