package services

import (
	"context"
	"errors"
	"log"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/core/domain"

	"gorm.io/gorm"
)

// ErrOpportunityNotFound is returned for an unknown opportunity id
var ErrOpportunityNotFound = errors.New("opportunity not found")

// OpportunityService serves the community-opportunities directory
type OpportunityService struct {
	repo *repositories.OpportunityRepository
}

// NewOpportunityService creates a new opportunity service
func NewOpportunityService(repo *repositories.OpportunityRepository) *OpportunityService {
	return &OpportunityService{repo: repo}
}

// SearchOpportunities returns active openings matching the filter
func (s *OpportunityService) SearchOpportunities(ctx context.Context, filter repositories.SearchFilter, offset, limit int) ([]*models.Opportunity, int64, error) {
	return s.repo.Search(ctx, filter, offset, limit)
}

// GetOpportunity returns a single opportunity
func (s *OpportunityService) GetOpportunity(ctx context.Context, id uint) (*models.Opportunity, error) {
	opp, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOpportunityNotFound
	}
	return opp, err
}

// CreateOpportunity creates a directory entry
func (s *OpportunityService) CreateOpportunity(ctx context.Context, opp *models.Opportunity) error {
	if opp.Title == "" {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Create(ctx, opp); err != nil {
		return err
	}
	log.Printf("✅ Opportunity created: %s", opp.Title)
	return nil
}

// UpdateOpportunity updates a directory entry
func (s *OpportunityService) UpdateOpportunity(ctx context.Context, opp *models.Opportunity) error {
	if _, err := s.GetOpportunity(ctx, opp.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, opp)
}

// DeleteOpportunity removes a directory entry
func (s *OpportunityService) DeleteOpportunity(ctx context.Context, id uint) error {
	if _, err := s.GetOpportunity(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
