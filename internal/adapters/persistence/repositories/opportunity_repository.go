package repositories

import (
	"context"

	"ufa-alliance/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// OpportunityRepository handles the community-opportunities directory
type OpportunityRepository struct {
	db *gorm.DB
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// SearchFilter narrows a directory search
type SearchFilter struct {
	Query    string
	Category string
	County   string
}

// Search returns active opportunities matching the filter
func (r *OpportunityRepository) Search(ctx context.Context, filter SearchFilter, offset, limit int) ([]*models.Opportunity, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Opportunity{}).Where("is_active = ?", true)

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR organization LIKE ?", like, like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.County != "" {
		q = q.Where("county = ?", filter.County)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var opportunities []*models.Opportunity
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&opportunities).Error; err != nil {
		return nil, 0, err
	}

	return opportunities, total, nil
}

// GetByID gets an opportunity by ID
func (r *OpportunityRepository) GetByID(ctx context.Context, id uint) (*models.Opportunity, error) {
	var opp models.Opportunity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&opp).Error
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

// Create creates a new opportunity
func (r *OpportunityRepository) Create(ctx context.Context, opp *models.Opportunity) error {
	return r.db.WithContext(ctx).Create(opp).Error
}

// Update updates an opportunity
func (r *OpportunityRepository) Update(ctx context.Context, opp *models.Opportunity) error {
	return r.db.WithContext(ctx).Save(opp).Error
}

// Delete soft deletes an opportunity
func (r *OpportunityRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Opportunity{}, id).Error
}
