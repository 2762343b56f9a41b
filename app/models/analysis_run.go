package models

import "time"

// AnalysisRun records one completed analysis: how many reviews went in and
// the raw JSON the normalizer produced. The result itself is opaque here.
type AnalysisRun struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         string    `gorm:"uniqueIndex;type:varchar(36)" json:"uuid"`
	TenantID     uint      `gorm:"index" json:"tenant_id"`
	StoreID      string    `gorm:"type:varchar(191);default:null" json:"store_id"`
	Source       string    `gorm:"type:varchar(50)" json:"source"` // "file" or "google"
	TotalReviews int       `json:"total_reviews"`
	RawResult    string    `gorm:"type:longtext" json:"raw_result"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
