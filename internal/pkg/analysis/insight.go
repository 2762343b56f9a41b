package analysis

import (
	"context"
	"strings"

	"github.com/StorePulse/StorePulse/internal/pkg/llm"
)

const reviewInsightSystem = "You are a CX analyst grouping customer reviews by topic. " +
	"Always respond with a single JSON object and nothing else."

const reviewInsightMaxInput = 50

// InsightItem groups related review experiences under one sentiment.
type InsightItem struct {
	Sentiment string   `json:"sentiment"`
	Topics    []string `json:"topics"`
	Summary   string   `json:"summary"`
}

// InsightResult is the topic-grouped review report.
type InsightResult struct {
	Total          int           `json:"total"`
	Items          []InsightItem `json:"items"`
	OverallSummary string        `json:"overall_summary"`
}

func reviewInsightPrompt(reviews []string) string {
	var b strings.Builder
	b.WriteString("Below is a list of customer reviews.\n\nReviews:\n")
	b.WriteString(strings.Join(reviews, "\n"))
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Group recurring experiences and issues together\n")
	b.WriteString("- Sentiment must be one of positive, neutral, negative\n")
	b.WriteString("- No text outside the JSON object\n\n")
	b.WriteString(`Format:
{
  "items": [
    {
      "sentiment": "positive | neutral | negative",
      "topics": ["topic 1", "topic 2"],
      "summary": "short summary"
    }
  ],
  "overall_summary": "summary of all reviews"
}`)
	return b.String()
}

func normalizeReviewInsight(raw map[string]any, inputCount int) InsightResult {
	result := InsightResult{
		Total:          inputCount,
		Items:          []InsightItem{},
		OverallSummary: toString(raw["overall_summary"]),
	}
	for _, v := range toSlice(raw["items"]) {
		m := toMap(v)
		result.Items = append(result.Items, InsightItem{
			Sentiment: toString(m["sentiment"]),
			Topics:    toStringSlice(m["topics"]),
			Summary:   toString(m["summary"]),
		})
	}
	return result
}

func fallbackReviewInsight(inputCount int) InsightResult {
	return InsightResult{
		Total: inputCount,
		Items: []InsightItem{},
	}
}

var reviewInsightSpec = reportSpec[InsightResult]{
	system:    reviewInsightSystem,
	maxInput:  reviewInsightMaxInput,
	prompt:    reviewInsightPrompt,
	normalize: normalizeReviewInsight,
	fallback:  fallbackReviewInsight,
}

// AnalyzeReviewInsight groups reviews into topic/sentiment clusters.
func AnalyzeReviewInsight(ctx context.Context, gw llm.Gateway, reviews []string) InsightResult {
	return runReport(ctx, gw, reviewInsightSpec, reviews)
}
