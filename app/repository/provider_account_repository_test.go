package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/models"
)

func TestUpsertCreatesThenMerges(t *testing.T) {
	repo := NewProviderAccountRepository(newTestDB(t))

	first := &models.ProviderAccount{
		UserID:            1,
		Provider:          "google",
		ProviderAccountID: "acct-123",
		RefreshToken:      "initial-token",
		Scope:             "email profile",
	}
	require.NoError(t, repo.Upsert(first))

	// reconnect without a refresh token: the stored one must survive
	second := &models.ProviderAccount{
		UserID:            1,
		Provider:          "google",
		ProviderAccountID: "acct-123",
		RefreshToken:      "",
		Scope:             "email profile business.manage",
	}
	require.NoError(t, repo.Upsert(second))

	stored, err := repo.GetByUserAndProvider(1, "google")
	require.NoError(t, err)
	assert.Equal(t, "initial-token", stored.RefreshToken)
	assert.Equal(t, "email profile business.manage", stored.Scope)
	assert.Equal(t, first.ID, stored.ID, "still a single row")
}

func TestUpsertReplacesTokenWhenProvided(t *testing.T) {
	repo := NewProviderAccountRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&models.ProviderAccount{
		UserID: 1, Provider: "google", RefreshToken: "old",
	}))
	require.NoError(t, repo.Upsert(&models.ProviderAccount{
		UserID: 1, Provider: "google", RefreshToken: "new",
	}))

	stored, err := repo.GetByUserAndProvider(1, "google")
	require.NoError(t, err)
	assert.Equal(t, "new", stored.RefreshToken)
}

func TestGetByUserAndProviderNotFound(t *testing.T) {
	repo := NewProviderAccountRepository(newTestDB(t))

	_, err := repo.GetByUserAndProvider(42, "google")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRemovesCredential(t *testing.T) {
	repo := NewProviderAccountRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&models.ProviderAccount{
		UserID: 1, Provider: "google", RefreshToken: "tok",
	}))
	require.NoError(t, repo.Delete(1, "google"))

	_, err := repo.GetByUserAndProvider(1, "google")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAnalysisRunRoundTrip(t *testing.T) {
	repo := NewAnalysisRunRepository(newTestDB(t))

	run := &models.AnalysisRun{
		UUID:         "440e8b9a-97b5-4a0a-9a2f-111111111111",
		TenantID:     1,
		StoreID:      testStore,
		Source:       "google",
		TotalReviews: 12,
		RawResult:    `{"total":12}`,
	}
	require.NoError(t, repo.Create(run))

	stored, err := repo.GetByUUID(1, run.UUID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.TotalReviews)

	// runs are tenant-scoped
	_, err = repo.GetByUUID(2, run.UUID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
