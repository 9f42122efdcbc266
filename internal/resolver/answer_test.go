package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexify/regexify/internal/domain"
)

func TestParseAnswer(t *testing.T) {
	available := []string{"ID", "Name", "Email"}

	tests := []struct {
		name      string
		raw       string
		available []string
		want      domain.EditTriple
		wantErr   error
	}{
		{
			name:      "plain",
			raw:       "Name|||.*|||RHOMBUS",
			available: available,
			want:      domain.EditTriple{TargetColumn: "Name", Pattern: ".*", Replacement: "RHOMBUS"},
		},
		{
			name:      "code fence and whitespace",
			raw:       "```\n Email ||| \\b\\w+@\\w+\\.com\\b ||| HIDDEN \n```",
			available: available,
			want:      domain.EditTriple{TargetColumn: "Email", Pattern: `\b\w+@\w+\.com\b`, Replacement: "HIDDEN"},
		},
		{
			name:      "backticks",
			raw:       "`Name`|||`.*`|||`X`",
			available: available,
			want:      domain.EditTriple{TargetColumn: "Name", Pattern: ".*", Replacement: "X"},
		},
		{
			name:      "empty replacement",
			raw:       "Name|||.*|||",
			available: available,
			want:      domain.EditTriple{TargetColumn: "Name", Pattern: ".*", Replacement: ""},
		},
		{
			name:      "case mismatch is reconciled",
			raw:       "email|||@|||X",
			available: available,
			want:      domain.EditTriple{TargetColumn: "Email", Pattern: "@", Replacement: "X"},
		},
		{
			name:      "unknown column falls to first",
			raw:       "Address|||.*|||X",
			available: available,
			want:      domain.EditTriple{TargetColumn: "ID", Pattern: ".*", Replacement: "X"},
		},
		{
			name: "no columns keeps answer column",
			raw:  "Whatever|||.*|||X",
			want: domain.EditTriple{TargetColumn: "Whatever", Pattern: ".*", Replacement: "X"},
		},
		{name: "empty", raw: " ``` ", available: available, wantErr: ErrEmptyAnswer},
		{name: "prose", raw: "I think you want the Name column.", available: available, wantErr: ErrMalformedAnswer},
		{name: "two segments", raw: "Name|||.*", available: available, wantErr: ErrMalformedAnswer},
		{name: "four segments", raw: "Name|||.*|||X|||Y", available: available, wantErr: ErrMalformedAnswer},
		{name: "unbalanced group", raw: "Name|||([a-z|||X", available: available, wantErr: ErrInvalidPattern},
		{name: "lookahead is not RE2", raw: "Name|||(?=x)|||X", available: available, wantErr: ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswer(tt.raw, tt.available)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserPrompt(t *testing.T) {
	prompt := UserPrompt("Replace the Name column with X", []string{"ID", "Name", "Email"})
	assert.Contains(t, prompt, `"Replace the Name column with X"`)
	assert.Contains(t, prompt, "Available columns in the dataset: ID, Name, Email")
	assert.Contains(t, prompt, `[A-Za-z0-9._%+-]`)
	assert.NotContains(t, prompt, "%!")

	bare := UserPrompt("100% of names", nil)
	assert.NotContains(t, bare, "Available columns")
	assert.Contains(t, bare, "100% of names")
}
