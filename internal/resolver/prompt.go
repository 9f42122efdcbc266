package resolver

import (
	"fmt"
	"strings"
)

// Delimiter separates the three fields of a model answer.
const Delimiter = "|||"

// SystemPrompt fixes the answer shape for every vendor.
const SystemPrompt = "You are a data processing assistant. Always respond in the exact format: TARGET_COLUMN|||REGEX_PATTERN|||REPLACEMENT_VALUE"

const userPromptTemplate = `Analyze this data processing request: "%s"%s

CRITICAL: Return ONLY in this format: TARGET_COLUMN|||REGEX_PATTERN|||REPLACEMENT_VALUE

Examples:
- "Replace the Name column with REDACTED" → Name|||.*|||REDACTED
- "Find emails in Email column and replace with HIDDEN" → Email|||\b[A-Za-z0-9._%%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b|||HIDDEN
- "Replace phone numbers in Contact column with [PHONE]" → Contact|||\b\d{3}-\d{3}-\d{4}\b|||[PHONE]
- "Mask all values in Name column with RHOMBUS" → Name|||.*|||RHOMBUS
- "Find credit cards in Payment column" → Payment|||\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b|||[CARD]
- "Turn every city in the City column into the word Somewhere" → City|||.*|||Somewhere

Rules:
1. Identify the target column from the user's description
2. Generate a regex (RE2 syntax, no lookarounds or backreferences) that matches VALUES in that column, not the column name
3. Use the replacement value specified by the user, or create an appropriate placeholder
4. Escape regex metacharacters with a single backslash
5. If the user wants to replace ALL values in a column, use .* as the pattern

Your response (format: column|||pattern|||replacement):`

// UserPrompt embeds the instruction and the available columns.
func UserPrompt(instruction string, available []string) string {
	columnContext := ""
	if len(available) > 0 {
		columnContext = "\nAvailable columns in the dataset: " + strings.Join(available, ", ")
	}
	return fmt.Sprintf(userPromptTemplate, instruction, columnContext)
}
