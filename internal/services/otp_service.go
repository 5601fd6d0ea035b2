// internal/services/otp_service.go
package services

import (
	"sync"
	"time"

	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPService holds short-lived admin provisioning codes keyed by phone.
// Codes expire after the configured TTL and are consumed on successful
// verification, so a code can authorize at most one admin registration.
type OTPService struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewOTPService(ttl time.Duration) *OTPService {
	return &OTPService{
		entries: make(map[string]otpEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue generates a fresh code for the phone, replacing any prior one.
func (s *OTPService) Issue(phone string) (string, error) {
	code, err := utils.GenerateOTP()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.entries[phone] = otpEntry{code: code, expiresAt: s.now().Add(s.ttl)}
	return code, nil
}

// Check reports whether the code is currently valid without consuming it.
func (s *OTPService) Check(phone, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	entry, ok := s.entries[phone]
	return ok && entry.code == code
}

// Consume validates and removes the code in one step.
func (s *OTPService) Consume(phone, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	entry, ok := s.entries[phone]
	if !ok || entry.code != code {
		return false
	}
	delete(s.entries, phone)
	return true
}

// prune drops expired entries. Caller must hold the lock.
func (s *OTPService) prune() {
	now := s.now()
	for phone, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, phone)
		}
	}
}
