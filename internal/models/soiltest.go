// internal/models/soiltest.go
package models

import (
	"github.com/google/uuid"
)

// SoilTest is an append-only record of one soil sample plus the derived
// crop recommendation. Read back only by its owner.
type SoilTest struct {
	BaseModel
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Ph            float64   `json:"ph" gorm:"type:decimal(4,2);not null"`
	Moisture      float64   `json:"moisture" gorm:"type:decimal(5,2);not null"`
	OrganicCarbon *float64  `json:"organic_carbon" gorm:"type:decimal(5,2)"`
	Nitrogen      *float64  `json:"nitrogen" gorm:"type:decimal(6,2)"`
	Phosphorus    *float64  `json:"phosphorus" gorm:"type:decimal(6,2)"`
	Potassium     *float64  `json:"potassium" gorm:"type:decimal(6,2)"`
	Notes         *string   `json:"notes" gorm:"type:text"`

	RecommendedCrop string  `json:"recommended_crop" gorm:"size:100;not null"`
	ExpectedYield   float64 `json:"expected_yield" gorm:"type:decimal(6,2)"`
	ProfitScore     float64 `json:"profit_score" gorm:"type:decimal(4,2)"`
	RiskLevel       string  `json:"risk_level" gorm:"size:20"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
