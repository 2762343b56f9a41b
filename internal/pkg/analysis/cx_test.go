package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/StorePulse/StorePulse/internal/pkg/llm"
)

func TestAnalyzeCXDashboardFullReport(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{
		"executive_summary": map[string]any{"summary": "Customers like the staff but hate the queue."},
		"rating":            4.2,
		"kpi": map[string]any{
			"sentiment": map[string]any{"positive": 60.0, "neutral": 25.0, "negative": 15.0},
			"nps":       7.8,
		},
		"drivers_of_satisfaction": []any{
			map[string]any{"label": "friendly staff", "impact": 3.5},
		},
		"areas_for_improvement": []any{
			map[string]any{"label": "long queues", "impact": -2.0},
			map[string]any{"label": "pricing", "impact": 0.0},
		},
		"strategic_insights": []any{
			map[string]any{"title": "Queue times drive churn", "description": "Repeat complaints."},
			map[string]any{"title": "", "description": "dropped, no title"},
		},
		"risk_and_action_plan": map[string]any{
			"churn_risk": "medium",
			"actions": []any{
				map[string]any{"area": "checkout", "action": "open a second register at peak hours"},
			},
		},
	}}

	report := AnalyzeCXDashboard(context.Background(), gw, []string{"r1", "r2", "r3"})

	assert.Equal(t, "Customers like the staff but hate the queue.", report.ExecutiveSummary)
	assert.Equal(t, 4.2, report.Rating)
	assert.Equal(t, 60.0, report.Sentiment.Positive)
	assert.Equal(t, 7.8, report.NPS)
	assert.Equal(t, 3, report.TotalReviews)

	assert.Len(t, report.Drivers, 1)
	assert.Equal(t, SentimentPositive, report.Drivers[0].Type)

	// negative impact => negative type, zero impact => positive type
	assert.Len(t, report.Improvements, 2)
	assert.Equal(t, SentimentNegative, report.Improvements[0].Type)
	assert.Equal(t, SentimentPositive, report.Improvements[1].Type)

	// insights without a title are dropped
	assert.Len(t, report.StrategicInsights, 1)

	// churn risk is upper-cased into the known set
	assert.Equal(t, ChurnLevelMedium, report.ChurnRisk)

	assert.Len(t, report.Actions, 1)
	assert.Equal(t, "checkout", report.Actions[0].Area)
}

func TestAnalyzeCXDashboardUnknownChurnRiskDefaultsToLow(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{
		"risk_and_action_plan": map[string]any{"churn_risk": "catastrophic"},
	}}

	report := AnalyzeCXDashboard(context.Background(), gw, []string{"r1"})

	assert.Equal(t, ChurnLevelLow, report.ChurnRisk)
}

func TestAnalyzeCXDashboardGatewayErrorFallsBack(t *testing.T) {
	gw := &fakeGateway{err: &llm.CallError{Message: "overloaded"}}

	report := AnalyzeCXDashboard(context.Background(), gw, []string{"r1", "r2"})

	assert.Equal(t, 2, report.TotalReviews)
	assert.Equal(t, ChurnLevelLow, report.ChurnRisk)
	assert.NotNil(t, report.Drivers)
	assert.NotNil(t, report.Improvements)
	assert.NotNil(t, report.StrategicInsights)
	assert.NotNil(t, report.Actions)
}

func TestNormalizeIssuesSkipsUnlabeled(t *testing.T) {
	items := normalizeIssues([]any{
		map[string]any{"label": "", "impact": 1.0},
		map[string]any{"impact": -1.0},
		map[string]any{"label": "kept", "impact": -1.0},
	})

	assert.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].Label)
	assert.Equal(t, SentimentNegative, items[0].Type)
}

func TestAnalyzeReviewInsightNormalizesItems(t *testing.T) {
	gw := &fakeGateway{result: map[string]any{
		"items": []any{
			map[string]any{
				"sentiment": "negative",
				"topics":    []any{"delivery", "packaging"},
				"summary":   "orders arrive damaged",
			},
		},
		"overall_summary": "mixed experience",
	}}

	result := AnalyzeReviewInsight(context.Background(), gw, []string{"r1", "r2"})

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "mixed experience", result.OverallSummary)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, []string{"delivery", "packaging"}, result.Items[0].Topics)
}
