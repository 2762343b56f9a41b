package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/StorePulse/StorePulse/app/models"
	"github.com/StorePulse/StorePulse/internal/pkg/googlebiz"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.ProviderAccount{},
		&models.GoogleReview{},
		&models.AnalysisRun{},
	))

	t.Cleanup(func() {
		db.Exec("DELETE FROM google_reviews")
		db.Exec("DELETE FROM provider_accounts")
		db.Exec("DELETE FROM analysis_runs")
		db.Exec("DELETE FROM users")
		db.Exec("DELETE FROM tenants")
	})

	return db
}

const testStore = "accounts/1/locations/7"

func TestSyncInsertsAndDeduplicates(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	batch := []googlebiz.RawReview{
		{ReviewID: "r1", Reviewer: "Alice", StarRating: "FIVE", Comment: "great", CreateTime: "2025-01-02T10:00:00Z"},
		{ReviewID: "r2", Reviewer: "Bob", StarRating: "ONE", Comment: "bad", CreateTime: "2025-01-03T10:00:00Z"},
	}

	result, err := repo.Sync(1, testStore, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Skipped)

	// re-applying the same batch is a no-op
	result, err = repo.Sync(1, testStore, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 2, result.Skipped)

	reviews, err := repo.ListByStore(1, testStore, nil, nil)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestSyncDeduplicatesWithinBatch(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	result, err := repo.Sync(1, testStore, []googlebiz.RawReview{
		{ReviewID: "r1", Comment: "first copy"},
		{ReviewID: "r1", Comment: "second copy"},
		{ReviewID: "", Comment: "no id, dropped"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Fetched)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 2, result.Skipped)
}

func TestSyncNormalizesRatingsAndTimestamps(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	_, err := repo.Sync(1, testStore, []googlebiz.RawReview{
		{ReviewID: "r1", StarRating: "THREE", CreateTime: "2025-01-02T10:00:00Z"},
		{ReviewID: "r2", StarRating: float64(5), CreateTime: "2025-01-02T10:00:00"},
		{ReviewID: "r3", StarRating: "SOMETIMES", CreateTime: "not a date"},
	})
	require.NoError(t, err)

	reviews, err := repo.ListByStore(1, testStore, nil, nil)
	require.NoError(t, err)
	require.Len(t, reviews, 3)

	byID := map[string]models.GoogleReview{}
	for _, r := range reviews {
		byID[r.GoogleReviewID] = r
	}

	require.NotNil(t, byID["r1"].Rating)
	assert.Equal(t, 3, *byID["r1"].Rating)
	assert.NotNil(t, byID["r1"].CreatedAtGoogle)

	require.NotNil(t, byID["r2"].Rating)
	assert.Equal(t, 5, *byID["r2"].Rating)
	assert.NotNil(t, byID["r2"].CreatedAtGoogle, "zoneless timestamps still parse")

	assert.Nil(t, byID["r3"].Rating, "unknown labels store NULL, not a sentinel")
	assert.Nil(t, byID["r3"].CreatedAtGoogle)
}

func TestListByStoreDateFilter(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	_, err := repo.Sync(1, testStore, []googlebiz.RawReview{
		{ReviewID: "old", Comment: "old", CreateTime: "2024-06-01T00:00:00Z"},
		{ReviewID: "mid", Comment: "mid", CreateTime: "2025-01-15T00:00:00Z"},
		{ReviewID: "new", Comment: "new", CreateTime: "2025-06-01T00:00:00Z"},
	})
	require.NoError(t, err)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	reviews, err := repo.ListByStore(1, testStore, &from, &to)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "mid", reviews[0].GoogleReviewID)
}

func TestListTextsSkipsEmptyComments(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	_, err := repo.Sync(1, testStore, []googlebiz.RawReview{
		{ReviewID: "r1", Comment: "has text", CreateTime: "2025-01-01T00:00:00Z"},
		{ReviewID: "r2", Comment: "", CreateTime: "2025-01-02T00:00:00Z"},
	})
	require.NoError(t, err)

	texts, err := repo.ListTexts(1, testStore, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"has text"}, texts)
}

func TestStoreAggregates(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	_, err := repo.Sync(1, testStore, []googlebiz.RawReview{
		{ReviewID: "r1", StarRating: "FIVE"},
		{ReviewID: "r2", StarRating: "THREE"},
		{ReviewID: "r3"}, // unrated, excluded from AVG but counted
	})
	require.NoError(t, err)
	_, err = repo.Sync(2, "accounts/9/locations/9", []googlebiz.RawReview{
		{ReviewID: "other-tenant", StarRating: "ONE"},
	})
	require.NoError(t, err)

	aggregates, err := repo.StoreAggregates(1)
	require.NoError(t, err)
	require.Len(t, aggregates, 1)
	assert.Equal(t, testStore, aggregates[0].StoreID)
	assert.Equal(t, int64(3), aggregates[0].ReviewCount)
	assert.Equal(t, 4.0, aggregates[0].AvgRating)
}

func TestCustomerStats(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	_, err := repo.Sync(1, testStore, []googlebiz.RawReview{
		{ReviewID: "r1", Reviewer: "Alice", StarRating: "FIVE", CreateTime: "2025-01-01T00:00:00Z"},
		{ReviewID: "r2", Reviewer: "Alice", StarRating: "ONE", CreateTime: "2025-03-01T00:00:00Z"},
		{ReviewID: "r3", Reviewer: "Bob", StarRating: "FOUR", CreateTime: "2025-02-01T00:00:00Z"},
		{ReviewID: "r4", Reviewer: "", StarRating: "ONE"}, // anonymous, excluded
	})
	require.NoError(t, err)

	stats, err := repo.CustomerStats(1, testStore)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byName := map[string]CustomerStat{}
	for _, s := range stats {
		byName[s.AuthorName] = s
	}

	alice := byName["Alice"]
	assert.Equal(t, int64(2), alice.ReviewCount)
	assert.Equal(t, 3.0, alice.AvgRating)
	assert.Equal(t, 0.5, alice.NegativeRatio)
	require.NotNil(t, alice.LastReviewAt)

	bob := byName["Bob"]
	assert.Equal(t, int64(1), bob.ReviewCount)
	assert.Equal(t, 0.0, bob.NegativeRatio)
}
