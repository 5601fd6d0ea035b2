// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired        = "auth.required"
	KeyAuthInvalidToken    = "auth.invalid_token"
	KeyAuthTokenExpired    = "auth.token_expired"
	KeyAuthRegisterSuccess = "auth.register_success"
	KeyAuthLoginSuccess    = "auth.login_success"
	KeyAuthBlocked         = "auth.blocked"
	KeyAuthOTPGenerated    = "auth.otp_generated"
	KeyAuthOTPVerified     = "auth.otp_verified"
	KeyAuthOTPInvalid      = "auth.otp_invalid"
	KeyAuthAdminRegistered = "auth.admin_registered"
	KeyAuthPhoneRegistered = "auth.phone_registered"
	KeyAuthWrongPassword   = "auth.wrong_password"
	KeyAuthInvalidRole     = "auth.invalid_role"

	// Common
	KeyAdminAccessDenied = "admin.access_denied"
	KeyValidationInvalid = "validation.invalid"

	// Marketplace
	KeyListingCreated     = "listing.created"
	KeyListingDeleted     = "listing.deleted"
	KeyListingNotFound    = "listing.not_found"
	KeyListingClosed      = "listing.closed"
	KeyListingNoStock     = "listing.no_stock"
	KeyPurchaseSuccess    = "listing.purchase_success"
	KeyListingRoleDenied  = "listing.role_denied"
	KeyListingHasContract = "listing.has_contracts"

	// Users
	KeyUserBlocked   = "user.blocked"
	KeyUserUnblocked = "user.unblocked"
	KeyUserNotFound  = "user.not_found"
)
