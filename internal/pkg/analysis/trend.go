package analysis

import (
	"math"
	"sort"

	"github.com/StorePulse/StorePulse/app/models"
)

const (
	TrendUnitDay   = "day"
	TrendUnitMonth = "month"
)

// highlightDelta marks buckets whose average rating jumped at least this
// much versus the previous bucket.
const highlightDelta = 0.3

// TrendPoint is one bucket of the rating-trend series.
type TrendPoint struct {
	Date        string  `json:"date"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
	Highlight   bool    `json:"highlight"`
}

// ComputeRatingTrend buckets rated reviews by day or month and flags sudden
// rating shifts. Reviews without a rating or without a provider timestamp
// are skipped. Grouping happens here rather than in SQL so the same code
// runs against MySQL and the sqlite test database.
func ComputeRatingTrend(reviews []models.GoogleReview, unit string) []TrendPoint {
	layout := "2006-01-02"
	if unit == TrendUnitMonth {
		layout = "2006-01"
	}

	type bucket struct {
		sum   int
		count int
	}
	buckets := make(map[string]*bucket)
	for _, r := range reviews {
		if r.Rating == nil || r.CreatedAtGoogle == nil {
			continue
		}
		key := r.CreatedAtGoogle.UTC().Format(layout)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += *r.Rating
		b.count++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]TrendPoint, 0, len(keys))
	prev := math.NaN()
	for _, key := range keys {
		b := buckets[key]
		avg := math.Round(float64(b.sum)/float64(b.count)*100) / 100

		point := TrendPoint{
			Date:        key,
			AvgRating:   avg,
			ReviewCount: b.count,
		}
		if !math.IsNaN(prev) && math.Abs(avg-prev) >= highlightDelta {
			point.Highlight = true
		}
		points = append(points, point)
		prev = avg
	}
	return points
}
