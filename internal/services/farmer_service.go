// internal/services/farmer_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisakti/agrisakti-backend/internal/models"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type FarmerService struct {
	db *gorm.DB
}

// UpdateProfileRequest carries patch semantics: only fields present in the
// request body are written, absent fields keep their stored values.
type UpdateProfileRequest struct {
	LandArea        *float64 `json:"land_area" validate:"omitempty,gte=0"`
	Location        *string  `json:"location" validate:"omitempty,max=255"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,gte=0"`
	Language        *string  `json:"language" validate:"omitempty,oneof=en ta"`
}

type CreateSoilTestRequest struct {
	Ph            float64  `json:"ph" validate:"required,gte=0,lte=14"`
	Moisture      float64  `json:"moisture" validate:"required,gte=0,lte=100"`
	OrganicCarbon *float64 `json:"organic_carbon" validate:"omitempty,gte=0"`
	Nitrogen      *float64 `json:"nitrogen" validate:"omitempty,gte=0"`
	Phosphorus    *float64 `json:"phosphorus" validate:"omitempty,gte=0"`
	Potassium     *float64 `json:"potassium" validate:"omitempty,gte=0"`
	Notes         *string  `json:"notes"`
}

func NewFarmerService(db *gorm.DB) *FarmerService {
	return &FarmerService{db: db}
}

func (s *FarmerService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *FarmerService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.LandArea != nil {
		updates["land_area"] = *req.LandArea
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.ExperienceYears != nil {
		updates["experience_years"] = *req.ExperienceYears
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
		if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
			return nil, fmt.Errorf("failed to reload profile: %w", err)
		}
	}

	return &user, nil
}

// CreateSoilTest runs the soil model and persists sample plus derived
// recommendation as one append-only row owned by the caller.
func (s *FarmerService) CreateSoilTest(userID uuid.UUID, req *CreateSoilTestRequest) (*models.SoilTest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sample := SoilSample{
		Ph:       req.Ph,
		Moisture: req.Moisture,
	}
	if req.Nitrogen != nil {
		sample.Nitrogen = *req.Nitrogen
	}
	if req.Phosphorus != nil {
		sample.Phosphorus = *req.Phosphorus
	}
	if req.Potassium != nil {
		sample.Potassium = *req.Potassium
	}

	result := RunSoilModel(sample)

	test := &models.SoilTest{
		UserID:          userID,
		Ph:              req.Ph,
		Moisture:        req.Moisture,
		OrganicCarbon:   req.OrganicCarbon,
		Nitrogen:        req.Nitrogen,
		Phosphorus:      req.Phosphorus,
		Potassium:       req.Potassium,
		Notes:           req.Notes,
		RecommendedCrop: result.RecommendedCrop,
		ExpectedYield:   result.ExpectedYield,
		ProfitScore:     result.ProfitScore,
		RiskLevel:       result.RiskLevel,
	}

	if err := s.db.Create(test).Error; err != nil {
		return nil, fmt.Errorf("failed to create soil test: %w", err)
	}

	return test, nil
}

// ListSoilTests returns the caller's tests, newest first.
func (s *FarmerService) ListSoilTests(userID uuid.UUID) ([]models.SoilTest, error) {
	var tests []models.SoilTest
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tests).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch soil tests: %w", err)
	}
	return tests, nil
}
