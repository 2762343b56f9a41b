package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("no JSON object found in model output")

// ExtractJSON pulls the first brace-delimited span out of free-form model
// output and parses it. Models wrap JSON in prose or code fences often
// enough that trusting the raw text is not an option.
func ExtractJSON(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errNoJSON
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, errors.New("model output is not valid JSON: " + err.Error())
	}
	return result, nil
}
