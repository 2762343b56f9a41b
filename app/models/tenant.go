package models

import "time"

// Tenant scopes every business-owner account. Reviews and analysis runs are
// partitioned by tenant so one connected Google account never leaks into
// another owner's dashboards.
type Tenant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150)" json:"name"`
	Plan      string    `gorm:"type:varchar(50);default:'free'" json:"plan"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
