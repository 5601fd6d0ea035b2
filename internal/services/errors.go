// internal/services/errors.go
package services

import (
	"errors"
	"strings"
)

// Sentinel errors form the service-level failure taxonomy. Handlers map
// them onto HTTP statuses with errors.Is; anything unmatched is a store
// failure and reports 500.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPhoneRegistered    = errors.New("phone already registered")
	ErrInvalidCredentials = errors.New("wrong password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInvalidOTP         = errors.New("invalid OTP")

	ErrListingNotFound     = errors.New("listing not found")
	ErrListingClosed       = errors.New("listing closed")
	ErrInsufficientStock   = errors.New("not enough stock")
	ErrListingHasContracts = errors.New("listing has purchase contracts and cannot be deleted")
)

// isUniqueViolation reports whether err is a SQLite unique-index violation.
// The driver reports these as "UNIQUE constraint failed: <table>.<column>".
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
