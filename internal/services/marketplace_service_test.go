// internal/services/marketplace_service_test.go
package services

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agrisakti/agrisakti-backend/internal/config"
	"github.com/agrisakti/agrisakti-backend/internal/database"
	"github.com/agrisakti/agrisakti-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout:  5000,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}

	db, err := database.Initialize(cfg)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

func createTestFarmer(t *testing.T, db *gorm.DB, phone string) *models.User {
	t.Helper()

	user := &models.User{
		Name:  "Test Farmer",
		Phone: phone,
		Role:  models.RoleFarmer,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreateListing(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000001")

	listing, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: 100,
		PricePerKg: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ListingStatusOpen, listing.Status)
	assert.Equal(t, float64(100), listing.QuantityKg)
	assert.Equal(t, farmer.ID, listing.FarmerID)
}

func TestCreateListingRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000002")

	_, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: 0,
		PricePerKg: 20,
	})
	assert.Error(t, err)

	_, err = svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: -5,
		PricePerKg: 20,
	})
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Listing{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateListingRejectsNegativePrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000003")

	_, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: 10,
		PricePerKg: -1,
	})
	assert.Error(t, err)
}

func TestListListingsIncludesFarmerName(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000004")

	_, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Wheat",
		QuantityKg: 50,
		PricePerKg: 30,
	})
	require.NoError(t, err)

	listings, err := svc.ListListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Wheat", listings[0].CropName)
	assert.Equal(t, farmer.Name, listings[0].FarmerName)
}

func TestPurchaseLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000005")

	listing, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: 100,
		PricePerKg: 20,
	})
	require.NoError(t, err)

	// First purchase leaves stock and keeps the listing open
	result, err := svc.Purchase("8000000001", &PurchaseRequest{
		ListingID:  listing.ID,
		QuantityKg: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(40), result.Remaining)
	assert.Equal(t, models.ListingStatusOpen, result.Status)

	// Draining the stock closes the listing
	result, err = svc.Purchase("8000000001", &PurchaseRequest{
		ListingID:  listing.ID,
		QuantityKg: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), result.Remaining)
	assert.Equal(t, models.ListingStatusClosed, result.Status)

	// Purchases against a closed listing always fail
	_, err = svc.Purchase("8000000001", &PurchaseRequest{
		ListingID:  listing.ID,
		QuantityKg: 1,
	})
	assert.ErrorIs(t, err, ErrListingClosed)

	// One contract per successful purchase
	var contracts []models.Contract
	require.NoError(t, db.Where("listing_id = ?", listing.ID).Find(&contracts).Error)
	assert.Len(t, contracts, 2)
}

func TestPurchaseStatusQuantityInvariant(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000006")

	listing, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: 30,
		PricePerKg: 20,
	})
	require.NoError(t, err)

	for _, qty := range []float64{10, 10, 10} {
		_, err := svc.Purchase("8000000002", &PurchaseRequest{
			ListingID:  listing.ID,
			QuantityKg: qty,
		})
		require.NoError(t, err)

		var current models.Listing
		require.NoError(t, db.First(&current, "id = ?", listing.ID).Error)
		assert.Equal(t, current.QuantityKg == 0, current.Status == models.ListingStatusClosed,
			"status must be CLOSED exactly when quantity is zero")
	}
}

func TestPurchaseInsufficientStockLeavesListingUnmodified(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000007")

	listing, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: 50,
		PricePerKg: 20,
	})
	require.NoError(t, err)

	_, err = svc.Purchase("8000000003", &PurchaseRequest{
		ListingID:  listing.ID,
		QuantityKg: 51,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var current models.Listing
	require.NoError(t, db.First(&current, "id = ?", listing.ID).Error)
	assert.Equal(t, float64(50), current.QuantityKg)
	assert.Equal(t, models.ListingStatusOpen, current.Status)

	var contractCount int64
	require.NoError(t, db.Model(&models.Contract{}).Count(&contractCount).Error)
	assert.Equal(t, int64(0), contractCount)
}

func TestPurchaseNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)

	_, err := svc.Purchase("8000000004", &PurchaseRequest{
		ListingID:  uuid.New(),
		QuantityKg: 1,
	})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

// Stock must never be oversold under concurrent submission: N buyers each
// taking q from a listing holding exactly N*q leaves zero, never negative.
func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000008")

	const buyers = 10
	const qtyEach = 5.0

	listing, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: buyers * qtyEach,
		PricePerKg: 20,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase("8000000005", &PurchaseRequest{
				ListingID:  listing.ID,
				QuantityKg: qtyEach,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "purchase %d", i)
	}

	var current models.Listing
	require.NoError(t, db.First(&current, "id = ?", listing.ID).Error)
	assert.Equal(t, float64(0), current.QuantityKg)
	assert.Equal(t, models.ListingStatusClosed, current.Status)

	var contractCount int64
	require.NoError(t, db.Model(&models.Contract{}).
		Where("listing_id = ?", listing.ID).
		Count(&contractCount).Error)
	assert.Equal(t, int64(buyers), contractCount)
}

// When demand exceeds supply, exactly the stock is sold and the rest fail.
func TestConcurrentPurchasesOverDemand(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000009")

	const buyers = 8
	const qtyEach = 10.0
	const stock = 50.0 // only 5 of 8 can win

	listing, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: stock,
		PricePerKg: 20,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase("8000000006", &PurchaseRequest{
				ListingID:  listing.ID,
				QuantityKg: qtyEach,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 5, succeeded)

	var current models.Listing
	require.NoError(t, db.First(&current, "id = ?", listing.ID).Error)
	assert.Equal(t, float64(0), current.QuantityKg)
	assert.Equal(t, models.ListingStatusClosed, current.Status)
}

func TestDeleteListing(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000010")

	listing, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: 10,
		PricePerKg: 20,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteListing(listing.ID))

	err = svc.DeleteListing(listing.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestDeleteListingWithContractsRefused(t *testing.T) {
	db := newTestDB(t)
	svc := NewMarketplaceService(db)
	farmer := createTestFarmer(t, db, "9000000011")

	listing, err := svc.CreateListing(farmer.ID, &CreateListingRequest{
		CropName:   "Rice",
		QuantityKg: 10,
		PricePerKg: 20,
	})
	require.NoError(t, err)

	_, err = svc.Purchase("8000000007", &PurchaseRequest{
		ListingID:  listing.ID,
		QuantityKg: 5,
	})
	require.NoError(t, err)

	err = svc.DeleteListing(listing.ID)
	assert.ErrorIs(t, err, ErrListingHasContracts)

	var current models.Listing
	require.NoError(t, db.First(&current, "id = ?", listing.ID).Error)
	assert.Equal(t, float64(5), current.QuantityKg)
}
