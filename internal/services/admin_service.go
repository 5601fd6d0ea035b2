// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisakti/agrisakti-backend/internal/models"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type BlockUserRequest struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// UnblockUserRequest names the restored role explicitly; the service does
// not remember or guess what the account was before it was blocked.
type UnblockUserRequest struct {
	ID   uuid.UUID       `json:"id" validate:"required"`
	Role models.UserRole `json:"role" validate:"required,oneof=farmer buyer"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "role"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

// BlockUser sets the sentinel role, shutting the account out of every
// authenticated route on its next request.
func (s *AdminService) BlockUser(req *BlockUserRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return s.setRole(req.ID, models.RoleBlocked)
}

func (s *AdminService) UnblockUser(req *UnblockUserRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.Role != models.RoleBlocked {
		return ErrInvalidRole
	}

	return s.setRole(req.ID, req.Role)
}

func (s *AdminService) setRole(id uuid.UUID, role models.UserRole) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("failed to update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
