// internal/handlers/auth.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agrisakti/agrisakti-backend/internal/i18n"
	"github.com/agrisakti/agrisakti-backend/internal/services"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthRegisterSuccess),
		"id":      user.ID,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"token":   resp.Token,
		"user":    resp.User,
	})
}

// GET /auth/profile
//
// Decodes and echoes the caller's token claims. Kept separate from the
// extended profile under /farmer/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	claims, err := utils.ValidateJWT(token)
	if err != nil {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    claims.UserID,
		"name":  claims.Name,
		"phone": claims.Phone,
		"role":  claims.Role,
	})
}

// POST /auth/send-admin-otp
func (h *AuthHandler) SendAdminOTP(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Phone string `json:"phone" validate:"required,phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	otp, err := h.authService.SendAdminOTP(req.Phone)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	// There is no SMS gateway wired up; the code is returned in the
	// response the way the demo deployment expects.
	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthOTPGenerated),
		"otp":     otp,
	})
}

// POST /auth/verify-admin-otp
func (h *AuthHandler) VerifyAdminOTP(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Phone string `json:"phone" validate:"required"`
		OTP   string `json:"otp" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if !h.authService.VerifyAdminOTP(req.Phone, req.OTP) {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthOTPInvalid))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthOTPVerified),
	})
}

// POST /auth/admin-register
func (h *AuthHandler) AdminRegister(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.authService.AdminRegister(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthAdminRegistered),
		"id":      user.ID,
	})
}
