// internal/handlers/ai.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisakti/agrisakti-backend/internal/i18n"
	"github.com/agrisakti/agrisakti-backend/internal/services"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type AIHandler struct{}

func NewAIHandler() *AIHandler {
	return &AIHandler{}
}

// POST /ai/recommend-crop
func (h *AIHandler) RecommendCrop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Ph *float64 `json:"ph" validate:"required,gte=0,lte=14"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	c.JSON(http.StatusOK, services.RecommendCrop(*req.Ph))
}
