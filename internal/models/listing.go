// internal/models/listing.go
package models

import (
	"github.com/google/uuid"
)

// Listing is a farmer's standing offer to sell a quantity of a crop at a
// unit price. Invariant: Status == CLOSED exactly when QuantityKg == 0.
type Listing struct {
	BaseModel
	FarmerID   uuid.UUID     `json:"farmer_id" gorm:"type:uuid;not null;index"`
	CropName   string        `json:"crop_name" gorm:"size:100;not null"`
	QuantityKg float64       `json:"quantity_kg" gorm:"type:decimal(12,2);not null"`
	PricePerKg float64       `json:"price_per_kg" gorm:"type:decimal(10,2);not null"`
	Status     ListingStatus `json:"status" gorm:"type:varchar(10);default:'OPEN';index"`

	// Relationships
	Farmer    User       `json:"farmer,omitempty" gorm:"foreignKey:FarmerID"`
	Contracts []Contract `json:"contracts,omitempty" gorm:"foreignKey:ListingID"`
}

// Contract is the append-only audit record of one completed purchase.
// Never updated or deleted.
type Contract struct {
	BaseModel
	ListingID  uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`
	BuyerPhone string    `json:"buyer_phone" gorm:"size:20;not null;index"`
	QuantityKg float64   `json:"quantity_kg" gorm:"type:decimal(12,2);not null"`

	// Relationships
	Listing Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
