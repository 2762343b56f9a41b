package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/StorePulse/StorePulse/app/models"
)

func reviewAt(day time.Time, rating int) models.GoogleReview {
	return models.GoogleReview{
		Rating:          &rating,
		CreatedAtGoogle: &day,
	}
}

func TestComputeRatingTrendDailyBuckets(t *testing.T) {
	d1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	points := ComputeRatingTrend([]models.GoogleReview{
		reviewAt(d1, 4),
		reviewAt(d1, 5),
		reviewAt(d2, 3),
	}, TrendUnitDay)

	assert.Len(t, points, 2)
	assert.Equal(t, "2025-03-01", points[0].Date)
	assert.Equal(t, 4.5, points[0].AvgRating)
	assert.Equal(t, 2, points[0].ReviewCount)
	assert.Equal(t, "2025-03-02", points[1].Date)
	assert.Equal(t, 3.0, points[1].AvgRating)
}

func TestComputeRatingTrendMonthlyBuckets(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	points := ComputeRatingTrend([]models.GoogleReview{
		reviewAt(jan, 5),
		reviewAt(feb, 5),
		reviewAt(feb, 4),
	}, TrendUnitMonth)

	assert.Len(t, points, 2)
	assert.Equal(t, "2025-01", points[0].Date)
	assert.Equal(t, "2025-02", points[1].Date)
	assert.Equal(t, 4.5, points[1].AvgRating)
}

func TestComputeRatingTrendHighlightsJumps(t *testing.T) {
	d1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	points := ComputeRatingTrend([]models.GoogleReview{
		reviewAt(d1, 4),
		reviewAt(d2, 4), // no change, no highlight
		reviewAt(d3, 2), // drops by 2, highlighted
	}, TrendUnitDay)

	assert.Len(t, points, 3)
	assert.False(t, points[0].Highlight, "first bucket has no previous to compare against")
	assert.False(t, points[1].Highlight)
	assert.True(t, points[2].Highlight)
}

func TestComputeRatingTrendSkipsUnratedAndUndated(t *testing.T) {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rating := 5

	points := ComputeRatingTrend([]models.GoogleReview{
		{Rating: nil, CreatedAtGoogle: &d},
		{Rating: &rating, CreatedAtGoogle: nil},
		reviewAt(d, 5),
	}, TrendUnitDay)

	assert.Len(t, points, 1)
	assert.Equal(t, 1, points[0].ReviewCount)
}

func TestComputeRatingTrendEmptyInput(t *testing.T) {
	points := ComputeRatingTrend(nil, TrendUnitDay)
	assert.Empty(t, points)
}
