package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/StorePulse/StorePulse/internal/pkg/llm"
)

// fakeGateway returns a canned JSON map, or a gateway error.
type fakeGateway struct {
	result     map[string]any
	err        error
	lastPrompt string
	lastSystem string
	calls      int
}

func (f *fakeGateway) Ask(_ context.Context, system, prompt string) (map[string]any, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestAnalyzeBasicSentimentCountsKnownLabels(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{
		"sentiments": []any{"positive", "positive", "negative", "neutral"},
		"score":      7.5,
		"keywords":   []any{"service", "wait time"},
		"summary":    "mostly positive",
	}}

	result := AnalyzeBasicSentiment(context.Background(), gw, []string{"a", "b", "c", "d"})

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Positive)
	assert.Equal(t, 1, result.Neutral)
	assert.Equal(t, 1, result.Negative)
	assert.Equal(t, 7.5, result.Score)
	assert.Equal(t, []string{"service", "wait time"}, result.Keywords)
	assert.Equal(t, "mostly positive", result.Summary)
}

func TestAnalyzeBasicSentimentPadsShortLabelList(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{
		"sentiments": []any{"positive"},
	}}

	result := AnalyzeBasicSentiment(context.Background(), gw, []string{"a", "b", "c"})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Positive)
	// missing labels become neutral
	assert.Equal(t, 2, result.Neutral)
	assert.Equal(t, 0, result.Negative)
}

func TestAnalyzeBasicSentimentTruncatesLongLabelList(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{
		"sentiments": []any{"negative", "negative", "negative", "negative", "negative"},
	}}

	result := AnalyzeBasicSentiment(context.Background(), gw, []string{"a", "b"})

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Negative)
}

func TestAnalyzeBasicSentimentDropsUnknownLabels(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{
		"sentiments": []any{"positive", "mixed", "angry"},
	}}

	result := AnalyzeBasicSentiment(context.Background(), gw, []string{"a", "b", "c"})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Positive)
	assert.Equal(t, 0, result.Neutral)
	assert.Equal(t, 0, result.Negative)
}

func TestAnalyzeBasicSentimentGatewayErrorFallsBackToNeutral(t *testing.T) {
	gw := &fakeGateway{err: &llm.CallError{Message: "rate limited"}}

	result := AnalyzeBasicSentiment(context.Background(), gw, []string{"a", "b", "c"})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Neutral)
	assert.Equal(t, 0, result.Positive)
	assert.Equal(t, 0, result.Negative)
	assert.NotNil(t, result.Keywords)
}

func TestAnalyzeBasicSentimentEmptyInputSkipsGateway(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{}}

	result := AnalyzeBasicSentiment(context.Background(), gw, nil)

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, gw.calls)
}

func TestAnalyzeBasicSentimentCapsSampleSize(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{}}

	reviews := make([]string, basicSentimentMaxInput+20)
	for i := range reviews {
		reviews[i] = "review"
	}

	result := AnalyzeBasicSentiment(context.Background(), gw, reviews)

	assert.Equal(t, basicSentimentMaxInput, result.Total)
	assert.Equal(t, basicSentimentMaxInput, result.Neutral)
}
