package analysis

import (
	"context"
	"strings"

	"github.com/StorePulse/StorePulse/internal/pkg/llm"
)

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

const basicSentimentSystem = "You are a CX analyst classifying customer review data. " +
	"Always respond with a single JSON object and nothing else."

const basicSentimentMaxInput = 50

// SentimentResult is the basic sentiment report. Positive + Neutral +
// Negative always equals Total for the three known labels; the model is not
// trusted to get the counts right.
type SentimentResult struct {
	Total    int      `json:"total"`
	Positive int      `json:"positive"`
	Neutral  int      `json:"neutral"`
	Negative int      `json:"negative"`
	Score    float64  `json:"score"`
	Keywords []string `json:"keywords"`
	Summary  string   `json:"summary"`
}

func basicSentimentPrompt(reviews []string) string {
	var b strings.Builder
	b.WriteString("Below is a list of customer survey and review texts.\n\nReviews:\n")
	b.WriteString(strings.Join(reviews, "\n"))
	b.WriteString("\n\nClassify the sentiment of each review.\n\nRules:\n")
	b.WriteString("- Pick exactly one sentiment per review\n")
	b.WriteString("- The only allowed values are positive, neutral, negative\n")
	b.WriteString("- Do not compute any counts yourself\n")
	b.WriteString("- Keep keywords in the language of the original text\n\n")
	b.WriteString("Answer in this JSON format only:\n\n")
	b.WriteString(`{
  "sentiments": ["positive", "neutral", ...],
  "score": overall satisfaction from 0 to 10 with one decimal,
  "keywords": ["five key phrases"],
  "summary": "a short summary of all reviews"
}`)
	return b.String()
}

// normalizeSentiments enforces the count invariant: pad the tail with
// neutral when the model returned too few labels, truncate when too many.
func normalizeSentiments(raw []any, inputCount int) []string {
	sentiments := make([]string, 0, inputCount)
	for _, v := range raw {
		if len(sentiments) == inputCount {
			break
		}
		sentiments = append(sentiments, toString(v))
	}
	for len(sentiments) < inputCount {
		sentiments = append(sentiments, SentimentNeutral)
	}
	return sentiments
}

func normalizeBasicSentiment(raw map[string]any, inputCount int) SentimentResult {
	sentiments := normalizeSentiments(toSlice(raw["sentiments"]), inputCount)

	result := SentimentResult{
		Total:    inputCount,
		Score:    toFloat(raw["score"]),
		Keywords: toStringSlice(raw["keywords"]),
		Summary:  toString(raw["summary"]),
	}
	// Only the three known labels are tallied; anything else the model
	// invents is dropped.
	for _, s := range sentiments {
		switch s {
		case SentimentPositive:
			result.Positive++
		case SentimentNeutral:
			result.Neutral++
		case SentimentNegative:
			result.Negative++
		}
	}
	return result
}

func fallbackBasicSentiment(inputCount int) SentimentResult {
	return SentimentResult{
		Total:    inputCount,
		Neutral:  inputCount,
		Keywords: []string{},
	}
}

var basicSentimentSpec = reportSpec[SentimentResult]{
	system:    basicSentimentSystem,
	maxInput:  basicSentimentMaxInput,
	prompt:    basicSentimentPrompt,
	normalize: normalizeBasicSentiment,
	fallback:  fallbackBasicSentiment,
}

// AnalyzeBasicSentiment classifies a review batch into the sentiment triple
// plus score, keywords and summary. A gateway failure degrades to an
// all-neutral result instead of an error.
func AnalyzeBasicSentiment(ctx context.Context, gw llm.Gateway, reviews []string) SentimentResult {
	return runReport(ctx, gw, basicSentimentSpec, reviews)
}
