// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/agrisakti/agrisakti-backend/internal/config"
	"github.com/agrisakti/agrisakti-backend/internal/database"
	"github.com/agrisakti/agrisakti-backend/internal/models"
	"github.com/agrisakti/agrisakti-backend/internal/router"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.cfg = &config.Config{
		Environment: "development",
		Database: config.DatabaseConfig{
			Path:         filepath.Join(s.T().TempDir(), "api_test.db"),
			BusyTimeout:  5000,
			MaxOpenConns: 1,
			LogLevel:     "silent",
		},
		JWT:  config.JWTConfig{SecretKey: "test-secret", TokenTTL: 168},
		OTP:  config.OTPConfig{TTL: 300},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		I18n: config.I18nConfig{DefaultLocale: "en"},
	}

	db, err := database.Initialize(s.cfg.Database)
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(db))

	s.db = db
	s.router = router.Initialize(db, s.cfg)
}

func (s *APITestSuite) TearDownTest() {
	database.Close(s.db)
}

func (s *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

// createUser seeds an account directly and mints its token, keeping the
// HTTP surface of each test focused on the routes under test.
func (s *APITestSuite) createUser(name, phone string, role models.UserRole) (*models.User, string) {
	user := &models.User{Name: name, Phone: phone, Role: role, Language: "en"}
	s.Require().NoError(user.SetPassword("secret123"))
	s.Require().NoError(s.db.Create(user).Error)

	token, err := utils.GenerateJWT(user.ID, user.Name, user.Phone, string(user.Role), s.cfg.JWT.TokenTTL)
	s.Require().NoError(err)
	return user, token
}

func (s *APITestSuite) TestHealth() {
	w := s.request("GET", "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestRegisterLoginProfile() {
	w := s.request("POST", "/auth/register", "", gin.H{
		"name":     "Kumar",
		"phone":    "9876543210",
		"password": "secret123",
		"role":     "farmer",
	})
	s.Equal(http.StatusCreated, w.Code)
	s.NotEmpty(s.decode(w)["id"])

	w = s.request("POST", "/auth/login", "", gin.H{
		"phone":    "9876543210",
		"password": "secret123",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	resp := s.decode(w)
	token, _ := resp["token"].(string)
	s.Require().NotEmpty(token)

	user, ok := resp["user"].(map[string]interface{})
	s.Require().True(ok)
	s.Equal("Kumar", user["name"])
	s.NotContains(user, "password_hash")

	w = s.request("GET", "/auth/profile", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	profile := s.decode(w)
	s.Equal("Kumar", profile["name"])
	s.Equal("9876543210", profile["phone"])
	s.Equal("farmer", profile["role"])
}

func (s *APITestSuite) TestRegisterDuplicatePhoneConflict() {
	w := s.request("POST", "/auth/register", "", gin.H{
		"name":     "Kumar",
		"phone":    "9876543210",
		"password": "secret123",
		"role":     "farmer",
	})
	s.Equal(http.StatusCreated, w.Code)

	w = s.request("POST", "/auth/register", "", gin.H{
		"name":     "Imposter",
		"phone":    "9876543210",
		"password": "other456",
		"role":     "buyer",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *APITestSuite) TestRegisterAdminRoleRejected() {
	w := s.request("POST", "/auth/register", "", gin.H{
		"name":     "Mallory",
		"phone":    "9876543210",
		"password": "secret123",
		"role":     "admin",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestMarketplacePurchaseFlow() {
	_, farmerToken := s.createUser("Kumar", "9000000001", models.RoleFarmer)
	_, buyerToken := s.createUser("Priya", "9000000002", models.RoleBuyer)

	w := s.request("POST", "/marketplace/listings", farmerToken, gin.H{
		"crop_name":    "Rice",
		"quantity_kg":  100,
		"price_per_kg": 22,
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	listing, ok := s.decode(w)["listing"].(map[string]interface{})
	s.Require().True(ok)
	listingID, _ := listing["id"].(string)
	s.Require().NotEmpty(listingID)

	w = s.request("GET", "/marketplace/listings", buyerToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var listings []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &listings))
	s.Require().Len(listings, 1)
	s.Equal("OPEN", listings[0]["status"])
	s.Equal(100.0, listings[0]["quantity_kg"])
	s.Equal("Kumar", listings[0]["farmer_name"])

	w = s.request("POST", "/marketplace/buy", buyerToken, gin.H{
		"listing_id": listingID,
		"quantity":   60,
	})
	s.Require().Equal(http.StatusOK, w.Code)
	resp := s.decode(w)
	s.Equal(40.0, resp["remaining"])
	s.Equal("OPEN", resp["status"])

	w = s.request("POST", "/marketplace/buy", buyerToken, gin.H{
		"listing_id": listingID,
		"quantity":   40,
	})
	s.Require().Equal(http.StatusOK, w.Code)
	resp = s.decode(w)
	s.Equal(0.0, resp["remaining"])
	s.Equal("CLOSED", resp["status"])

	w = s.request("POST", "/marketplace/buy", buyerToken, gin.H{
		"listing_id": listingID,
		"quantity":   1,
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestPurchaseBeyondStockRejected() {
	farmer, _ := s.createUser("Kumar", "9000000001", models.RoleFarmer)
	_, buyerToken := s.createUser("Priya", "9000000002", models.RoleBuyer)

	listing := &models.Listing{
		FarmerID:   farmer.ID,
		CropName:   "Maize",
		QuantityKg: 10,
		PricePerKg: 18,
		Status:     models.ListingStatusOpen,
	}
	s.Require().NoError(s.db.Create(listing).Error)

	w := s.request("POST", "/marketplace/buy", buyerToken, gin.H{
		"listing_id": listing.ID.String(),
		"quantity":   11,
	})
	s.Equal(http.StatusBadRequest, w.Code)

	var stored models.Listing
	s.Require().NoError(s.db.First(&stored, "id = ?", listing.ID).Error)
	s.Equal(10.0, stored.QuantityKg)
	s.Equal(models.ListingStatusOpen, stored.Status)
}

func (s *APITestSuite) TestCreateListingRequiresFarmerRole() {
	_, buyerToken := s.createUser("Priya", "9000000002", models.RoleBuyer)

	w := s.request("POST", "/marketplace/listings", buyerToken, gin.H{
		"crop_name":    "Rice",
		"quantity_kg":  50,
		"price_per_kg": 20,
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestDeleteListingAdminOnly() {
	farmer, farmerToken := s.createUser("Kumar", "9000000001", models.RoleFarmer)
	_, adminToken := s.createUser("Admin", "9000000003", models.RoleAdmin)

	listing := &models.Listing{
		FarmerID:   farmer.ID,
		CropName:   "Rice",
		QuantityKg: 50,
		PricePerKg: 20,
		Status:     models.ListingStatusOpen,
	}
	s.Require().NoError(s.db.Create(listing).Error)

	path := fmt.Sprintf("/marketplace/delete/%s", listing.ID)

	// The listing's own farmer may not delete it
	w := s.request("DELETE", path, farmerToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	var count int64
	s.Require().NoError(s.db.Model(&models.Listing{}).Where("id = ?", listing.ID).Count(&count).Error)
	s.EqualValues(1, count)

	w = s.request("DELETE", path, adminToken, nil)
	s.Equal(http.StatusOK, w.Code)

	s.Require().NoError(s.db.Model(&models.Listing{}).Where("id = ?", listing.ID).Count(&count).Error)
	s.EqualValues(0, count)
}

func (s *APITestSuite) TestAuthRequired() {
	for _, route := range []struct {
		method string
		path   string
	}{
		{"GET", "/marketplace/listings"},
		{"POST", "/marketplace/buy"},
		{"GET", "/farmer/profile"},
		{"GET", "/admin/users"},
	} {
		w := s.request(route.method, route.path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}

	w := s.request("GET", "/marketplace/listings", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestBlockedUserLockedOut() {
	user, _ := s.createUser("Kumar", "9000000001", models.RoleFarmer)

	s.Require().NoError(s.db.Model(user).Update("role", models.RoleBlocked).Error)

	// Token minted before the block still names the old role; the
	// middleware re-reads nothing, so lockout takes effect on next login.
	w := s.request("POST", "/auth/login", "", gin.H{
		"phone":    "9000000001",
		"password": "secret123",
	})
	s.Equal(http.StatusForbidden, w.Code)

	blockedToken, err := utils.GenerateJWT(user.ID, user.Name, user.Phone, string(models.RoleBlocked), 1)
	s.Require().NoError(err)
	w = s.request("GET", "/marketplace/listings", blockedToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestAdminUserManagement() {
	target, _ := s.createUser("Kumar", "9000000001", models.RoleFarmer)
	_, adminToken := s.createUser("Admin", "9000000003", models.RoleAdmin)

	w := s.request("GET", "/admin/users", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	users := s.decode(w)
	s.EqualValues(2, users["total"])

	w = s.request("POST", "/admin/block", adminToken, gin.H{"id": target.ID.String()})
	s.Equal(http.StatusOK, w.Code)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, "id = ?", target.ID).Error)
	s.Equal(models.RoleBlocked, stored.Role)

	w = s.request("POST", "/admin/unblock", adminToken, gin.H{
		"id":   target.ID.String(),
		"role": "farmer",
	})
	s.Equal(http.StatusOK, w.Code)

	s.Require().NoError(s.db.First(&stored, "id = ?", target.ID).Error)
	s.Equal(models.RoleFarmer, stored.Role)
}

func (s *APITestSuite) TestAdminRoutesForbiddenForFarmer() {
	_, farmerToken := s.createUser("Kumar", "9000000001", models.RoleFarmer)

	w := s.request("GET", "/admin/users", farmerToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestAdminRegistrationFlow() {
	w := s.request("POST", "/auth/send-admin-otp", "", gin.H{"phone": "9000000009"})
	s.Require().Equal(http.StatusOK, w.Code)
	code, _ := s.decode(w)["otp"].(string)
	s.Require().Len(code, 6)

	w = s.request("POST", "/auth/verify-admin-otp", "", gin.H{
		"phone": "9000000009",
		"otp":   code,
	})
	s.Equal(http.StatusOK, w.Code)

	w = s.request("POST", "/auth/admin-register", "", gin.H{
		"name":     "New Admin",
		"phone":    "9000000009",
		"password": "secret123",
		"otp":      code,
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, "phone = ?", "9000000009").Error)
	s.Equal(models.RoleAdmin, stored.Role)
}

func (s *APITestSuite) TestSoilAnalysisFlow() {
	_, farmerToken := s.createUser("Kumar", "9000000001", models.RoleFarmer)

	w := s.request("POST", "/farmer/soil-analysis", farmerToken, gin.H{
		"ph":       5.2,
		"moisture": 20,
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	result := s.decode(w)
	s.Equal("Millets", result["recommended_crop"])
	s.Equal(15.0, result["expected_yield"])

	w = s.request("GET", "/farmer/soil-analysis", farmerToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var tests []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tests))
	s.Len(tests, 1)
}

func (s *APITestSuite) TestProfileUpdatePatch() {
	_, farmerToken := s.createUser("Kumar", "9000000001", models.RoleFarmer)

	w := s.request("PUT", "/farmer/profile", farmerToken, gin.H{
		"land_area": 2.5,
		"location":  "Thanjavur",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request("PUT", "/farmer/profile", farmerToken, gin.H{
		"experience_years": 12,
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request("GET", "/farmer/profile", farmerToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	profile := s.decode(w)
	s.Equal(2.5, profile["land_area"])
	s.Equal("Thanjavur", profile["location"])
	s.Equal(12.0, profile["experience_years"])
}

func (s *APITestSuite) TestPublicCropRecommendation() {
	w := s.request("POST", "/ai/recommend-crop", "", gin.H{"ph": 6.5})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Wheat", s.decode(w)["recommended_crop"])

	w = s.request("POST", "/ai/recommend-crop", "", gin.H{"ph": 15})
	s.Equal(http.StatusBadRequest, w.Code)

	// ph must be present; zero is a valid acidity, absence is not
	w = s.request("POST", "/ai/recommend-crop", "", gin.H{})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request("POST", "/ai/recommend-crop", "", gin.H{"ph": 0})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Millets", s.decode(w)["recommended_crop"])
}

func (s *APITestSuite) TestExpertsDirectorySeeded() {
	s.Require().NoError(database.SeedInitialData(s.db))

	w := s.request("GET", "/experts", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var experts []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &experts))
	s.NotEmpty(experts)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
