package models

import (
	"time"
)

// GoogleReview is one deduplicated customer review for a store. The pair
// (store_id, google_review_id) is unique; re-syncing the same review must
// not create a second row.
type GoogleReview struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	TenantID       uint   `gorm:"index" json:"tenant_id"`
	StoreID        string `gorm:"index:store_review,unique;type:varchar(191)" json:"store_id"`
	GoogleReviewID string `gorm:"index:store_review,unique;type:varchar(191)" json:"google_review_id"`

	AuthorName string `gorm:"type:varchar(200);default:null" json:"author_name"`
	// Rating is 1-5, or NULL when the provider sent nothing usable.
	Rating  *int   `json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAtGoogle *time.Time `json:"created_at_google"`
	UpdatedAtGoogle *time.Time `json:"updated_at_google"`

	FetchedAt time.Time `gorm:"autoCreateTime" json:"fetched_at"`
}

func (GoogleReview) TableName() string {
	return "google_reviews"
}

var starRatingLabels = map[string]int{
	"ONE":   1,
	"TWO":   2,
	"THREE": 3,
	"FOUR":  4,
	"FIVE":  5,
}

// NormalizeStarRating maps the provider's rating representations to a 1-5
// integer. The reviews API reports categorical labels ("ONE".."FIVE"), older
// payloads carry plain integers. Unrecognized values map to nil, never to a
// sentinel.
func NormalizeStarRating(value any) *int {
	switch v := value.(type) {
	case int:
		if v >= 1 && v <= 5 {
			return &v
		}
	case float64:
		n := int(v)
		if float64(n) == v && n >= 1 && n <= 5 {
			return &n
		}
	case string:
		if n, ok := starRatingLabels[v]; ok {
			return &n
		}
	}
	return nil
}

// ParseGoogleTime parses the RFC3339 timestamps the provider reports.
// Unparseable or empty values are stored as NULL, not a sentinel date.
func ParseGoogleTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	// Some payloads omit the zone designator.
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return &t
	}
	return nil
}
