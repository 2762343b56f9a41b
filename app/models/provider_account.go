package models

import "time"

// ProviderAccount stores one OAuth refresh-token credential per
// (user, provider). Access tokens are minted on demand and never persisted.
type ProviderAccount struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"index:user_provider,unique" json:"user_id"`
	Provider          string    `gorm:"index:user_provider,unique;type:varchar(50)" json:"provider"`
	ProviderAccountID string    `gorm:"type:varchar(191)" json:"provider_account_id"`
	RefreshToken      string    `gorm:"type:text" json:"-"`
	Scope             string    `gorm:"type:text" json:"scope"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProviderAccount) TableName() string {
	return "provider_accounts"
}
