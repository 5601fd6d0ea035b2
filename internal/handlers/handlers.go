// internal/handlers/handlers.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/agrisakti/agrisakti-backend/internal/i18n"
	"github.com/agrisakti/agrisakti-backend/internal/services"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

// respondServiceError maps the service failure taxonomy onto HTTP
// statuses. Unrecognized errors are store failures and report 500 without
// leaking internals.
func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrListingNotFound):
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyListingNotFound))
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyUserNotFound))
	case errors.Is(err, services.ErrListingClosed):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyListingClosed))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyListingNoStock))
	case errors.Is(err, services.ErrInvalidRole):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAuthInvalidRole))
	case errors.Is(err, services.ErrPhoneRegistered):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthPhoneRegistered))
	case errors.Is(err, services.ErrListingHasContracts):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyListingHasContract))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthWrongPassword))
	case errors.Is(err, services.ErrInvalidOTP):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthOTPInvalid))
	case errors.Is(err, services.ErrAccountBlocked):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthBlocked))
	default:
		if validationErrors := utils.GetValidationErrors(errors.Unwrap(err)); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.InternalErrorResponse(c, "")
	}
}
