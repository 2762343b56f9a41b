package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/models"
)

// providerAccountRepository implements ProviderAccountRepository
type providerAccountRepository struct {
	db *gorm.DB
}

// NewProviderAccountRepository creates a new credential store instance
func NewProviderAccountRepository(db *gorm.DB) ProviderAccountRepository {
	return &providerAccountRepository{db: db}
}

// GetByUserAndProvider retrieves the credential for a (user, provider) pair
func (r *providerAccountRepository) GetByUserAndProvider(userID uint, provider string) (*models.ProviderAccount, error) {
	var account models.ProviderAccount
	err := r.db.Where("user_id = ? AND provider = ?", userID, provider).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Upsert merges the incoming credential into the unique (user, provider) row.
// Google only issues a refresh token on first consent; a later connect that
// arrives without one must keep the stored token instead of blanking it.
func (r *providerAccountRepository) Upsert(account *models.ProviderAccount) error {
	var existing models.ProviderAccount
	err := r.db.Where("user_id = ? AND provider = ?", account.UserID, account.Provider).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(account).Error
	}
	if err != nil {
		return err
	}

	existing.ProviderAccountID = account.ProviderAccountID
	if account.RefreshToken != "" {
		existing.RefreshToken = account.RefreshToken
	}
	if account.Scope != "" {
		existing.Scope = account.Scope
	}
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*account = existing
	return nil
}

// Delete removes the credential for a (user, provider) pair
func (r *providerAccountRepository) Delete(userID uint, provider string) error {
	return r.db.Where("user_id = ? AND provider = ?", userID, provider).
		Delete(&models.ProviderAccount{}).Error
}
