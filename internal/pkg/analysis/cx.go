package analysis

import (
	"context"
	"strings"

	"github.com/StorePulse/StorePulse/internal/pkg/llm"
)

const cxDashboardSystem = "You are a customer experience consultant analyzing store reviews. " +
	"Always respond with a single JSON object and nothing else."

const cxDashboardMaxInput = 80

// IssueItem is one labeled issue in the drivers/improvements matrix. Type is
// derived from Impact, never taken from the model.
type IssueItem struct {
	Label  string  `json:"label"`
	Impact float64 `json:"impact"`
	Type   string  `json:"type"`
}

// Insight is one strategic observation with its reasoning.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ActionItem is one concrete step the owner can take.
type ActionItem struct {
	Area   string `json:"area"`
	Action string `json:"action"`
}

// SentimentShare holds the sentiment distribution as percentages.
type SentimentShare struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// CXReport is the extended dashboard report.
type CXReport struct {
	ExecutiveSummary  string         `json:"executive_summary"`
	Rating            float64        `json:"rating"`
	Sentiment         SentimentShare `json:"sentiment"`
	NPS               float64        `json:"nps"`
	Drivers           []IssueItem    `json:"drivers_of_satisfaction"`
	Improvements      []IssueItem    `json:"areas_for_improvement"`
	StrategicInsights []Insight      `json:"strategic_insights"`
	ChurnRisk         string         `json:"churn_risk"`
	Actions           []ActionItem   `json:"actions"`
	TotalReviews      int            `json:"total_reviews"`
}

func cxDashboardPrompt(reviews []string) string {
	var b strings.Builder
	b.WriteString("Below are Google reviews for one store, written by real customers ")
	b.WriteString("within a selected period. Estimate satisfaction and recommendation ")
	b.WriteString("metrics from the review texts alone.\n\nReviews:\n")
	b.WriteString(strings.Join(reviews, "\n"))
	b.WriteString(`

Analysis rules:
1. rating (0-5): perceived overall satisfaction from the texts, not the
   actual star ratings.
2. nps (0-10): estimate recommendation intent; weigh promoters (strong
   praise, return intent) against detractors (complaints, no return intent).
3. sentiment: classify reviews positive/neutral/negative and report the
   shares as percentages.
4. drivers_of_satisfaction: recurring reasons for praise, each with a
   numeric impact weight.
5. areas_for_improvement: recurring complaints, each with a numeric impact
   weight (negative numbers mean the issue hurts satisfaction).
6. strategic_insights: three observations that matter commercially, each
   explaining why.
7. actions: concrete steps the owner can execute on site, no generic advice.
8. churn_risk: LOW, MEDIUM or HIGH.

Respond only with JSON matching this schema exactly:

{
  "executive_summary": {"summary": "2-3 sentences"},
  "rating": 0.0,
  "kpi": {
    "sentiment": {"positive": 0.0, "neutral": 0.0, "negative": 0.0},
    "nps": 0.0
  },
  "drivers_of_satisfaction": [{"label": "...", "impact": 0.0}],
  "areas_for_improvement": [{"label": "...", "impact": 0.0}],
  "strategic_insights": [{"title": "...", "description": "..."}],
  "risk_and_action_plan": {
    "churn_risk": "LOW | MEDIUM | HIGH",
    "actions": [{"area": "...", "action": "..."}]
  }
}`)
	return b.String()
}

// normalizeIssues derives each issue's polarity from its impact sign. An
// impact of exactly zero counts as positive.
func normalizeIssues(raw []any) []IssueItem {
	items := make([]IssueItem, 0, len(raw))
	for _, v := range raw {
		m := toMap(v)
		label := toString(m["label"])
		if label == "" {
			continue
		}
		item := IssueItem{
			Label:  label,
			Impact: toFloat(m["impact"]),
		}
		if item.Impact < 0 {
			item.Type = SentimentNegative
		} else {
			item.Type = SentimentPositive
		}
		items = append(items, item)
	}
	return items
}

func normalizeCXReport(raw map[string]any, inputCount int) CXReport {
	kpi := toMap(raw["kpi"])
	sentiment := toMap(kpi["sentiment"])
	riskPlan := toMap(raw["risk_and_action_plan"])

	report := CXReport{
		ExecutiveSummary: toString(toMap(raw["executive_summary"])["summary"]),
		Rating:           toFloat(raw["rating"]),
		Sentiment: SentimentShare{
			Positive: toFloat(sentiment["positive"]),
			Neutral:  toFloat(sentiment["neutral"]),
			Negative: toFloat(sentiment["negative"]),
		},
		NPS:          toFloat(kpi["nps"]),
		Drivers:      normalizeIssues(toSlice(raw["drivers_of_satisfaction"])),
		Improvements: normalizeIssues(toSlice(raw["areas_for_improvement"])),
		ChurnRisk:    normalizeChurnRisk(toString(riskPlan["churn_risk"])),
		TotalReviews: inputCount,
	}

	report.StrategicInsights = make([]Insight, 0)
	for _, v := range toSlice(raw["strategic_insights"]) {
		m := toMap(v)
		if title := toString(m["title"]); title != "" {
			report.StrategicInsights = append(report.StrategicInsights, Insight{
				Title:       title,
				Description: toString(m["description"]),
			})
		}
	}

	report.Actions = make([]ActionItem, 0)
	for _, v := range toSlice(riskPlan["actions"]) {
		m := toMap(v)
		if action := toString(m["action"]); action != "" {
			report.Actions = append(report.Actions, ActionItem{
				Area:   toString(m["area"]),
				Action: action,
			})
		}
	}

	return report
}

func normalizeChurnRisk(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case ChurnLevelHigh:
		return ChurnLevelHigh
	case ChurnLevelMedium:
		return ChurnLevelMedium
	default:
		return ChurnLevelLow
	}
}

func fallbackCXReport(inputCount int) CXReport {
	return CXReport{
		Drivers:           []IssueItem{},
		Improvements:      []IssueItem{},
		StrategicInsights: []Insight{},
		Actions:           []ActionItem{},
		ChurnRisk:         ChurnLevelLow,
		TotalReviews:      inputCount,
	}
}

var cxDashboardSpec = reportSpec[CXReport]{
	system:    cxDashboardSystem,
	maxInput:  cxDashboardMaxInput,
	prompt:    cxDashboardPrompt,
	normalize: normalizeCXReport,
	fallback:  fallbackCXReport,
}

// AnalyzeCXDashboard builds the extended CX report for a date-filtered
// review set. A gateway failure returns an empty but well-shaped report.
func AnalyzeCXDashboard(ctx context.Context, gw llm.Gateway, reviews []string) CXReport {
	return runReport(ctx, gw, cxDashboardSpec, reviews)
}
