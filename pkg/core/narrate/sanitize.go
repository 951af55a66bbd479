package narrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"github.com/yuin/goldmark"
)

// statementEnvelope is the JSON shape LLM narrators are instructed to return.
type statementEnvelope struct {
	Statement string `json:"statement"`
}

// parseStatement recovers the statement from raw model output. Models wrap
// JSON in code fences, drop quotes, or leave commas dangling, so parsing runs
// a ladder: strict JSON, then repaired JSON, then lenient HJSON.
func parseStatement(raw string) (string, error) {
	cleaned := stripCodeFences(raw)

	var env statementEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err == nil && env.Statement != "" {
		return strings.TrimSpace(env.Statement), nil
	}

	if repaired, err := jsonrepair.RepairJSON(cleaned); err == nil {
		if err := json.Unmarshal([]byte(repaired), &env); err == nil && env.Statement != "" {
			return strings.TrimSpace(env.Statement), nil
		}
	}

	if err := hjson.Unmarshal([]byte(cleaned), &env); err == nil && env.Statement != "" {
		return strings.TrimSpace(env.Statement), nil
	}

	return "", fmt.Errorf("model output carried no statement: %q", raw)
}

// parseValidatedStatement runs the parse ladder and then rejects statements
// that do not render as markdown, so downstream renderers never see a blank or
// unrenderable statement.
func parseValidatedStatement(raw string) (string, error) {
	statement, err := parseStatement(raw)
	if err != nil {
		return "", err
	}
	if !ValidMarkdown(statement) {
		return "", fmt.Errorf("statement does not render as markdown: %q", statement)
	}
	return statement, nil
}

// stripCodeFences removes an outer markdown code block if present
// (e.g. ```json ... ```).
func stripCodeFences(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```markdown")
	cleaned = strings.TrimPrefix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// ValidMarkdown checks that a statement renders to non-empty markdown output.
// Goldmark is very permissive, so this mainly rejects blank or
// whitespace-only statements.
func ValidMarkdown(input string) bool {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(input), &buf); err != nil {
		return false
	}
	return strings.TrimSpace(buf.String()) != ""
}
