package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/models"
	"github.com/StorePulse/StorePulse/internal/pkg/googlebiz"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// ProviderAccountRepository is the credential store: one refresh token per
// (user, provider).
type ProviderAccountRepository interface {
	GetByUserAndProvider(userID uint, provider string) (*models.ProviderAccount, error)
	// Upsert merges into an existing row. An empty incoming refresh token
	// never overwrites a stored non-empty one.
	Upsert(account *models.ProviderAccount) error
	Delete(userID uint, provider string) error
}

// SyncResult reports what one sync call did with the collected batch.
type SyncResult struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// StoreAggregate is the per-store rollup shown on the store list.
type StoreAggregate struct {
	StoreID     string  `json:"store_id"`
	ReviewCount int64   `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`
}

// CustomerStat aggregates one review author's activity for churn scoring.
type CustomerStat struct {
	AuthorName    string     `json:"author_name"`
	ReviewCount   int64      `json:"review_count"`
	AvgRating     float64    `json:"avg_rating"`
	NegativeRatio float64    `json:"negative_ratio"`
	LastReviewAt  *time.Time `json:"last_review_at"`
}

// ReviewRepository owns the google_reviews table.
type ReviewRepository interface {
	// Sync deduplicates raw against stored review ids and inserts the new
	// partition in one transaction. Idempotent: re-applying the same batch
	// inserts nothing.
	Sync(tenantID uint, storeID string, raw []googlebiz.RawReview) (*SyncResult, error)
	ListByStore(tenantID uint, storeID string, from, to *time.Time) ([]models.GoogleReview, error)
	ListTexts(tenantID uint, storeID string, from, to *time.Time) ([]string, error)
	StoreAggregates(tenantID uint) ([]StoreAggregate, error)
	CustomerStats(tenantID uint, storeID string) ([]CustomerStat, error)
}

// AnalysisRunRepository persists normalizer output blobs.
type AnalysisRunRepository interface {
	Create(run *models.AnalysisRun) error
	GetByUUID(tenantID uint, uuid string) (*models.AnalysisRun, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User            UserRepository
	ProviderAccount ProviderAccountRepository
	Review          ReviewRepository
	AnalysisRun     AnalysisRunRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:            NewUserRepository(db),
		ProviderAccount: NewProviderAccountRepository(db),
		Review:          NewReviewRepository(db),
		AnalysisRun:     NewAnalysisRunRepository(db),
	}
}
