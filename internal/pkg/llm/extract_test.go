package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPlainObject(t *testing.T) {
	result, err := ExtractJSON(`{"score": 7.5, "summary": "ok"}`)
	require.NoError(t, err)
	assert.Equal(t, 7.5, result["score"])
	assert.Equal(t, "ok", result["summary"])
}

func TestExtractJSONCodeFence(t *testing.T) {
	result, err := ExtractJSON("```json\n{\"total\": 3}\n```")
	require.NoError(t, err)
	assert.Equal(t, float64(3), result["total"])
}

func TestExtractJSONSurroundingProse(t *testing.T) {
	result, err := ExtractJSON("Here is the analysis you asked for:\n{\"ok\": true}\nLet me know if you need more.")
	require.NoError(t, err)
	assert.Equal(t, true, result["ok"])
}

func TestExtractJSONNestedBraces(t *testing.T) {
	result, err := ExtractJSON(`{"kpi": {"nps": 8}}`)
	require.NoError(t, err)
	kpi, ok := result["kpi"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(8), kpi["nps"])
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("I could not produce an analysis.")
	assert.Error(t, err)
}

func TestExtractJSONMalformed(t *testing.T) {
	_, err := ExtractJSON(`{"unterminated": `)
	assert.Error(t, err)
}
