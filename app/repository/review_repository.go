package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/models"
	"github.com/StorePulse/StorePulse/internal/pkg/googlebiz"
)

// reviewRepository implements ReviewRepository
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Sync loads the set of already-stored review ids for the store in one
// query, partitions the batch, and inserts only the new rows inside a
// transaction. Either all new reviews land or none do.
func (r *reviewRepository) Sync(tenantID uint, storeID string, raw []googlebiz.RawReview) (*SyncResult, error) {
	var existingIDs []string
	err := r.db.Model(&models.GoogleReview{}).
		Where("tenant_id = ? AND store_id = ?", tenantID, storeID).
		Pluck("google_review_id", &existingIDs).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	var newReviews []models.GoogleReview
	for _, rv := range raw {
		if rv.ReviewID == "" {
			continue
		}
		if _, ok := existing[rv.ReviewID]; ok {
			continue
		}
		// Guard against duplicates inside the batch itself too.
		existing[rv.ReviewID] = struct{}{}

		newReviews = append(newReviews, models.GoogleReview{
			TenantID:        tenantID,
			StoreID:         storeID,
			GoogleReviewID:  rv.ReviewID,
			AuthorName:      rv.Reviewer,
			Rating:          models.NormalizeStarRating(rv.StarRating),
			Comment:         rv.Comment,
			CreatedAtGoogle: models.ParseGoogleTime(rv.CreateTime),
			UpdatedAtGoogle: models.ParseGoogleTime(rv.UpdateTime),
		})
	}

	if len(newReviews) > 0 {
		err = r.db.Transaction(func(tx *gorm.DB) error {
			return tx.CreateInBatches(newReviews, 200).Error
		})
		if err != nil {
			return nil, err
		}
	}

	return &SyncResult{
		Fetched:  len(raw),
		Inserted: len(newReviews),
		Skipped:  len(raw) - len(newReviews),
	}, nil
}

func (r *reviewRepository) storeQuery(tenantID uint, storeID string, from, to *time.Time) *gorm.DB {
	q := r.db.Model(&models.GoogleReview{}).
		Where("tenant_id = ? AND store_id = ?", tenantID, storeID)
	if from != nil {
		q = q.Where("created_at_google >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at_google <= ?", *to)
	}
	return q
}

// ListByStore returns the stored reviews for one store, optionally filtered
// by the provider-reported creation date.
func (r *reviewRepository) ListByStore(tenantID uint, storeID string, from, to *time.Time) ([]models.GoogleReview, error) {
	var reviews []models.GoogleReview
	err := r.storeQuery(tenantID, storeID, from, to).
		Order("created_at_google ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListTexts returns only the non-empty comment texts, the shape the analysis
// prompts consume.
func (r *reviewRepository) ListTexts(tenantID uint, storeID string, from, to *time.Time) ([]string, error) {
	var texts []string
	err := r.storeQuery(tenantID, storeID, from, to).
		Where("comment <> ''").
		Order("created_at_google ASC").
		Pluck("comment", &texts).Error
	if err != nil {
		return nil, err
	}
	return texts, nil
}

// StoreAggregates returns review count and average rating per store.
func (r *reviewRepository) StoreAggregates(tenantID uint) ([]StoreAggregate, error) {
	var aggregates []StoreAggregate
	err := r.db.Model(&models.GoogleReview{}).
		Select("store_id, COUNT(*) AS review_count, COALESCE(AVG(rating), 0) AS avg_rating").
		Where("tenant_id = ?", tenantID).
		Group("store_id").
		Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}
	return aggregates, nil
}

// CustomerStats aggregates review activity per author for the churn list.
// Reviews rated 2 or below count as negative. Aggregation happens in Go,
// like the trend bucketing, so MySQL and the sqlite test driver behave
// identically for the timestamp max.
func (r *reviewRepository) CustomerStats(tenantID uint, storeID string) ([]CustomerStat, error) {
	var reviews []models.GoogleReview
	err := r.db.
		Where("tenant_id = ? AND store_id = ? AND author_name <> ''", tenantID, storeID).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	type agg struct {
		count     int64
		ratingSum int
		rated     int64
		negative  int64
		last      *time.Time
	}
	byAuthor := make(map[string]*agg)
	order := []string{}
	for i := range reviews {
		rv := &reviews[i]
		a := byAuthor[rv.AuthorName]
		if a == nil {
			a = &agg{}
			byAuthor[rv.AuthorName] = a
			order = append(order, rv.AuthorName)
		}
		a.count++
		if rv.Rating != nil {
			a.ratingSum += *rv.Rating
			a.rated++
			if *rv.Rating <= 2 {
				a.negative++
			}
		}
		if rv.CreatedAtGoogle != nil && (a.last == nil || rv.CreatedAtGoogle.After(*a.last)) {
			a.last = rv.CreatedAtGoogle
		}
	}

	stats := make([]CustomerStat, 0, len(order))
	for _, name := range order {
		a := byAuthor[name]
		stat := CustomerStat{
			AuthorName:   name,
			ReviewCount:  a.count,
			LastReviewAt: a.last,
		}
		if a.rated > 0 {
			stat.AvgRating = float64(a.ratingSum) / float64(a.rated)
			stat.NegativeRatio = float64(a.negative) / float64(a.rated)
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
