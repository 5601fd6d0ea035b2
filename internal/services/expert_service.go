// internal/services/expert_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/agrisakti/agrisakti-backend/internal/models"
)

type ExpertService struct {
	db *gorm.DB
}

func NewExpertService(db *gorm.DB) *ExpertService {
	return &ExpertService{db: db}
}

func (s *ExpertService) ListExperts() ([]models.Expert, error) {
	var experts []models.Expert
	if err := s.db.Order("created_at ASC").Find(&experts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch experts: %w", err)
	}
	return experts, nil
}
