package controllers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/analysis"
	"github.com/StorePulse/StorePulse/internal/pkg/usercontext"
)

type customerView struct {
	Name          string     `json:"name"`
	ReviewCount   int64      `json:"review_count"`
	AvgRating     float64    `json:"avg_rating"`
	LastReviewAt  *time.Time `json:"last_review_at"`
	Sentiment     string     `json:"sentiment"`
	ChurnScore    int        `json:"churn_score"`
	ChurnLevel    string     `json:"churn_level"`
	NegativeRatio float64    `json:"negative_ratio"`
}

// customerSentiment is a cheap heuristic label, no LLM call. A mostly
// negative history wins over a mediocre average.
func customerSentiment(avgRating, negativeRatio float64) string {
	if negativeRatio >= 0.5 {
		return "negative"
	}
	if avgRating < 4 {
		return "neutral"
	}
	return "positive"
}

// HandleListCustomers returns the churn-scored customer list for a store,
// ordered by risk.
func HandleListCustomers(c *fiber.Ctx) error {
	storeID, ok := parseStoreID(c.Query("store_id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid_store_id", "store_id query parameter is required")
	}

	userCtx := usercontext.GetUserContext(c)
	stats, err := repository.GetGlobalFactory().GetReviewRepository().
		CustomerStats(userCtx.TenantID, storeID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load customer stats")
	}

	now := time.Now().UTC()
	customers := make([]customerView, 0, len(stats))
	highRisk := 0
	var ratingSum float64

	for _, s := range stats {
		lastSeen := now
		if s.LastReviewAt != nil {
			lastSeen = *s.LastReviewAt
		}
		score := analysis.ChurnScore(s.AvgRating, s.NegativeRatio, lastSeen, now)
		level := analysis.ChurnLevel(score)
		if level == analysis.ChurnLevelHigh {
			highRisk++
		}
		ratingSum += s.AvgRating

		customers = append(customers, customerView{
			Name:          s.AuthorName,
			ReviewCount:   s.ReviewCount,
			AvgRating:     s.AvgRating,
			LastReviewAt:  s.LastReviewAt,
			Sentiment:     customerSentiment(s.AvgRating, s.NegativeRatio),
			ChurnScore:    score,
			ChurnLevel:    level,
			NegativeRatio: s.NegativeRatio,
		})
	}

	avgSatisfaction := 0.0
	if len(customers) > 0 {
		avgSatisfaction = ratingSum / float64(len(customers))
	}

	// Highest risk first so the dashboard surfaces who to win back.
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].ChurnScore > customers[j].ChurnScore
	})

	return c.JSON(fiber.Map{
		"store_id":             storeID,
		"total_customers":      len(customers),
		"high_risk":            highRisk,
		"average_satisfaction": avgSatisfaction,
		"customers":            customers,
	})
}
