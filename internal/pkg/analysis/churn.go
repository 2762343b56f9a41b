package analysis

import "time"

const (
	ChurnLevelLow    = "LOW"
	ChurnLevelMedium = "MEDIUM"
	ChurnLevelHigh   = "HIGH"
)

// ChurnScore estimates how likely a customer is not to return, 0-100.
//
// Three weighted terms:
//   - rating: (5 - avg) * 8, so a perfect 5.0 contributes 0 and each point
//     below 5 adds 8 (max 40 for ratings in 1-5)
//   - negative ratio: linear 0-30 over ratio 0-1
//   - recency: 0 for gaps of 30 days or less, then min(days, 90)/90 * 30
//
// The sum is clamped to 100 and truncated to an integer. Pure function; the
// reference time is injected so scoring is reproducible.
func ChurnScore(avgRating, negativeRatio float64, lastReviewAt, now time.Time) int {
	score := (5 - avgRating) * 8

	score += negativeRatio * 30

	daysInactive := int(now.Sub(lastReviewAt).Hours() / 24)
	if daysInactive > 30 {
		if daysInactive > 90 {
			daysInactive = 90
		}
		score += float64(daysInactive) / 90 * 30
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}

// ChurnLevel maps a score to the three-level risk label.
func ChurnLevel(score int) string {
	switch {
	case score >= 70:
		return ChurnLevelHigh
	case score >= 40:
		return ChurnLevelMedium
	default:
		return ChurnLevelLow
	}
}
