// internal/handlers/expert.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisakti/agrisakti-backend/internal/services"
)

type ExpertHandler struct {
	expertService *services.ExpertService
}

func NewExpertHandler(expertService *services.ExpertService) *ExpertHandler {
	return &ExpertHandler{
		expertService: expertService,
	}
}

// GET /experts
func (h *ExpertHandler) ListExperts(c *gin.Context) {
	experts, err := h.expertService.ListExperts()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, experts)
}
