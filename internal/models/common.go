// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SQLite has no server-side UUID default, so IDs are assigned here.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB stores arbitrary request metadata as a JSON text column.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}

// Enums
type UserRole string

const (
	RoleFarmer  UserRole = "farmer"
	RoleBuyer   UserRole = "buyer"
	RoleAdmin   UserRole = "admin"
	RoleBlocked UserRole = "blocked"
)

// SelfRegisterRoles are the roles a caller may pick at public registration.
// Admin accounts go through the OTP-gated provisioning path instead.
var SelfRegisterRoles = []UserRole{RoleFarmer, RoleBuyer}

func IsSelfRegisterRole(r UserRole) bool {
	for _, allowed := range SelfRegisterRoles {
		if r == allowed {
			return true
		}
	}
	return false
}

type ListingStatus string

const (
	ListingStatusOpen   ListingStatus = "OPEN"
	ListingStatusClosed ListingStatus = "CLOSED"
)
