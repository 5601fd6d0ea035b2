// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisakti/agrisakti-backend/internal/config"
	"github.com/agrisakti/agrisakti-backend/internal/models"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	otp *OTPService
}

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Phone    string          `json:"phone" validate:"required,phone"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required"`
	Language string          `json:"language,omitempty"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminRegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6"`
	OTP      string `json:"otp" validate:"required,len=6"`
}

type LoginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, otp *OTPService) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
		otp: otp,
	}
}

// Register creates a farmer or buyer account. Elevated roles are not
// self-assignable; admins come through AdminRegister.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !models.IsSelfRegisterRole(req.Role) {
		return nil, ErrInvalidRole
	}

	// Check if phone already registered
	var existingUser models.User
	if err := s.db.Where("phone = ?", req.Phone).First(&existingUser).Error; err == nil {
		return nil, ErrPhoneRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	language := req.Language
	if language == "" {
		language = s.cfg.I18n.DefaultLocale
	}

	user := &models.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		Language: language,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		// The unique index on phone is the arbiter under concurrent
		// registration; the pre-check above only improves the message.
		if isUniqueViolation(err) {
			return nil, ErrPhoneRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// AdminRegister provisions an admin account. The caller must present a
// currently-valid OTP for the phone, which is consumed on success.
func (s *AuthService) AdminRegister(req *AdminRegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !s.otp.Consume(req.Phone, req.OTP) {
		return nil, ErrInvalidOTP
	}

	var existingUser models.User
	if err := s.db.Where("phone = ?", req.Phone).First(&existingUser).Error; err == nil {
		return nil, ErrPhoneRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     models.RoleAdmin,
		Language: s.cfg.I18n.DefaultLocale,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPhoneRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role == models.RoleBlocked {
		return nil, ErrAccountBlocked
	}

	token, err := utils.GenerateJWT(
		user.ID,
		user.Name,
		user.Phone,
		string(user.Role),
		s.cfg.JWT.TokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		User:  &user,
		Token: token,
	}, nil
}

func (s *AuthService) SendAdminOTP(phone string) (string, error) {
	return s.otp.Issue(phone)
}

func (s *AuthService) VerifyAdminOTP(phone, code string) bool {
	return s.otp.Check(phone, code)
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
