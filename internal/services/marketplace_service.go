// internal/services/marketplace_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisakti/agrisakti-backend/internal/models"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type MarketplaceService struct {
	db *gorm.DB
}

type CreateListingRequest struct {
	CropName   string  `json:"crop_name" validate:"required,min=2,max=100"`
	QuantityKg float64 `json:"quantity_kg" validate:"required,gt=0"`
	PricePerKg float64 `json:"price_per_kg" validate:"gte=0"`
}

type PurchaseRequest struct {
	ListingID  uuid.UUID `json:"listing_id" validate:"required"`
	QuantityKg float64   `json:"quantity" validate:"required,gt=0"`
}

// ListingView is a listing row joined with the owning farmer's name, the
// shape the catalog endpoint returns.
type ListingView struct {
	models.Listing
	FarmerName string `json:"farmer_name"`
}

type PurchaseResult struct {
	ListingID  uuid.UUID            `json:"listing_id"`
	Remaining  float64              `json:"remaining"`
	Status     models.ListingStatus `json:"status"`
	ContractID uuid.UUID            `json:"contract_id"`
}

func NewMarketplaceService(db *gorm.DB) *MarketplaceService {
	return &MarketplaceService{db: db}
}

// ListListings returns every listing with its farmer's display name, in
// insertion order.
func (s *MarketplaceService) ListListings() ([]ListingView, error) {
	var listings []ListingView
	err := s.db.Model(&models.Listing{}).
		Select("listings.*, users.name AS farmer_name").
		Joins("JOIN users ON users.id = listings.farmer_id").
		Order("listings.created_at ASC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	return listings, nil
}

func (s *MarketplaceService) CreateListing(farmerID uuid.UUID, req *CreateListingRequest) (*models.Listing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	listing := &models.Listing{
		FarmerID:   farmerID,
		CropName:   req.CropName,
		QuantityKg: req.QuantityKg,
		PricePerKg: req.PricePerKg,
		Status:     models.ListingStatusOpen,
	}

	if err := s.db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return listing, nil
}

// Purchase decrements a listing's stock and appends a contract as one
// atomic unit. The decrement is a conditional update guarded on the
// remaining quantity; a zero affected-row count under the transaction's
// write lock means the stock check lost a race and the purchase must fail
// rather than oversell.
func (s *MarketplaceService) Purchase(buyerPhone string, req *PurchaseRequest) (*PurchaseResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var result *PurchaseResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, "id = ?", req.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if listing.Status != models.ListingStatusOpen {
			return ErrListingClosed
		}

		if listing.QuantityKg < req.QuantityKg {
			return ErrInsufficientStock
		}

		res := tx.Model(&models.Listing{}).
			Where("id = ? AND status = ? AND quantity_kg >= ?",
				req.ListingID, models.ListingStatusOpen, req.QuantityKg).
			Updates(map[string]interface{}{
				"quantity_kg": gorm.Expr("quantity_kg - ?", req.QuantityKg),
				"status": gorm.Expr("CASE WHEN quantity_kg - ? <= 0 THEN ? ELSE ? END",
					req.QuantityKg, models.ListingStatusClosed, models.ListingStatusOpen),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update listing: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		contract := &models.Contract{
			ListingID:  req.ListingID,
			BuyerPhone: buyerPhone,
			QuantityKg: req.QuantityKg,
		}
		if err := tx.Create(contract).Error; err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}

		if err := tx.First(&listing, "id = ?", req.ListingID).Error; err != nil {
			return fmt.Errorf("failed to reload listing: %w", err)
		}

		result = &PurchaseResult{
			ListingID:  listing.ID,
			Remaining:  listing.QuantityKg,
			Status:     listing.Status,
			ContractID: contract.ID,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteListing removes a listing. Listings referenced by contracts stay:
// contracts are the immutable purchase audit trail and must not dangle.
func (s *MarketplaceService) DeleteListing(id uuid.UUID) error {
	var listing models.Listing
	if err := s.db.First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	var contractCount int64
	if err := s.db.Model(&models.Contract{}).
		Where("listing_id = ?", id).
		Count(&contractCount).Error; err != nil {
		return fmt.Errorf("failed to check contracts: %w", err)
	}

	if contractCount > 0 {
		return ErrListingHasContracts
	}

	if err := s.db.Delete(&listing).Error; err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return nil
}
