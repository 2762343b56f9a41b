package repository

import (
	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/models"
)

// analysisRunRepository implements AnalysisRunRepository
type analysisRunRepository struct {
	db *gorm.DB
}

// NewAnalysisRunRepository creates a new analysis run repository instance
func NewAnalysisRunRepository(db *gorm.DB) AnalysisRunRepository {
	return &analysisRunRepository{db: db}
}

// Create persists one analysis run record
func (r *analysisRunRepository) Create(run *models.AnalysisRun) error {
	return r.db.Create(run).Error
}

// GetByUUID retrieves a run by its public identifier, scoped to the tenant
func (r *analysisRunRepository) GetByUUID(tenantID uint, uuid string) (*models.AnalysisRun, error) {
	var run models.AnalysisRun
	err := r.db.Where("tenant_id = ? AND uuid = ?", tenantID, uuid).First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}
