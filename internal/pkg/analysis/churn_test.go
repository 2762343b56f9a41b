package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChurnScoreHappyCustomer(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	lastReview := now.AddDate(0, 0, -10)

	score := ChurnScore(5.0, 0.0, lastReview, now)
	assert.Equal(t, 0, score, "a perfect recent customer scores zero")
	assert.Equal(t, ChurnLevelLow, ChurnLevel(score))
}

func TestChurnScoreWorstCase(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	lastReview := now.AddDate(0, 0, -200)

	// (5-1)*8 + 1*30 + 30 = 92, but ratings below 1 would push past 100
	score := ChurnScore(1.0, 1.0, lastReview, now)
	assert.Equal(t, 92, score)
	assert.Equal(t, ChurnLevelHigh, ChurnLevel(score))
}

func TestChurnScoreClampedAt100(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	lastReview := now.AddDate(0, 0, -365)

	// An average of 0 is out of the 1-5 range but must still clamp cleanly.
	assert.Equal(t, 100, ChurnScore(0.0, 1.0, lastReview, now))
}

func TestChurnScoreRecencyGrace(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 30 days or less of inactivity adds nothing.
	within := ChurnScore(3.0, 0.0, now.AddDate(0, 0, -30), now)
	beyond := ChurnScore(3.0, 0.0, now.AddDate(0, 0, -31), now)
	assert.Equal(t, 16, within)
	assert.Greater(t, beyond, within, "inactivity beyond 30 days raises the score")
}

func TestChurnScoreRecencyCapsAt90Days(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	at90 := ChurnScore(3.0, 0.0, now.AddDate(0, 0, -90), now)
	at300 := ChurnScore(3.0, 0.0, now.AddDate(0, 0, -300), now)
	assert.Equal(t, at90, at300, "recency term caps at 90 days")
}

func TestChurnLevelThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: 0, want: ChurnLevelLow},
		{score: 39, want: ChurnLevelLow},
		{score: 40, want: ChurnLevelMedium},
		{score: 69, want: ChurnLevelMedium},
		{score: 70, want: ChurnLevelHigh},
		{score: 100, want: ChurnLevelHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChurnLevel(tt.score), "ChurnLevel(%d)", tt.score)
	}
}
