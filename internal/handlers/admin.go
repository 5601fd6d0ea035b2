// internal/handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisakti/agrisakti-backend/internal/i18n"
	"github.com/agrisakti/agrisakti-backend/internal/services"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// POST /admin/block
func (h *AdminHandler) BlockUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if err := h.adminService.BlockUser(&req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyUserBlocked),
	})
}

// POST /admin/unblock
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UnblockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	if err := h.adminService.UnblockUser(&req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang, i18n.KeyUserUnblocked),
	})
}
