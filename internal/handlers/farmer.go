// internal/handlers/farmer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrisakti/agrisakti-backend/internal/i18n"
	"github.com/agrisakti/agrisakti-backend/internal/services"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type FarmerHandler struct {
	farmerService *services.FarmerService
}

func NewFarmerHandler(farmerService *services.FarmerService) *FarmerHandler {
	return &FarmerHandler{
		farmerService: farmerService,
	}
}

func (h *FarmerHandler) callerID(c *gin.Context) (uuid.UUID, bool) {
	lang := utils.GetLangFromContext(c)

	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "user id"))
		return uuid.Nil, false
	}

	return userID, true
}

// GET /farmer/profile
func (h *FarmerHandler) GetProfile(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	user, err := h.farmerService.GetProfile(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// PUT /farmer/profile
func (h *FarmerHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.farmerService.UpdateProfile(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// POST /farmer/soil-analysis
func (h *FarmerHandler) CreateSoilTest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req services.CreateSoilTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	test, err := h.farmerService.CreateSoilTest(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, test)
}

// GET /farmer/soil-analysis
func (h *FarmerHandler) ListSoilTests(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	tests, err := h.farmerService.ListSoilTests(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tests)
}
