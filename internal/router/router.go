// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrisakti/agrisakti-backend/internal/config"
	"github.com/agrisakti/agrisakti-backend/internal/handlers"
	"github.com/agrisakti/agrisakti-backend/internal/middleware"
	"github.com/agrisakti/agrisakti-backend/internal/models"
	"github.com/agrisakti/agrisakti-backend/internal/services"
	"github.com/agrisakti/agrisakti-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	otpService := services.NewOTPService(time.Duration(cfg.OTP.TTL) * time.Second)
	authService := services.NewAuthService(db, cfg, otpService)
	farmerService := services.NewFarmerService(db)
	marketplaceService := services.NewMarketplaceService(db)
	expertService := services.NewExpertService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	farmerHandler := handlers.NewFarmerHandler(farmerService)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService)
	expertHandler := handlers.NewExpertHandler(expertService)
	aiHandler := handlers.NewAIHandler()
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	if gin.Mode() != gin.TestMode {
		r.Use(middleware.GeneralRateLimit())
	}
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Authentication routes
	auth := r.Group("/auth")
	if gin.Mode() != gin.TestMode {
		auth.Use(middleware.AuthRateLimit())
	}
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authHandler.Profile)
		auth.POST("/send-admin-otp", authHandler.SendAdminOTP)
		auth.POST("/verify-admin-otp", authHandler.VerifyAdminOTP)
		auth.POST("/admin-register", authHandler.AdminRegister)
	}

	// Farmer routes
	farmer := r.Group("/farmer")
	farmer.Use(middleware.AuthRequired())
	{
		farmer.GET("/profile", farmerHandler.GetProfile)
		farmer.PUT("/profile", farmerHandler.UpdateProfile)
		farmer.POST("/soil-analysis", farmerHandler.CreateSoilTest)
		farmer.GET("/soil-analysis", farmerHandler.ListSoilTests)
	}

	// Marketplace routes
	marketplace := r.Group("/marketplace")
	marketplace.Use(middleware.AuthRequired())
	{
		marketplace.GET("/listings", marketplaceHandler.ListListings)
		marketplace.POST("/listings",
			middleware.RoleRequired(models.RoleFarmer, models.RoleAdmin),
			marketplaceHandler.CreateListing)
		marketplace.POST("/buy", marketplaceHandler.Purchase)
		marketplace.DELETE("/delete/:id", middleware.AdminRequired(), marketplaceHandler.DeleteListing)
	}

	// Public reference routes
	r.GET("/experts", expertHandler.ListExperts)
	r.POST("/ai/recommend-crop", aiHandler.RecommendCrop)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/block", adminHandler.BlockUser)
		admin.POST("/unblock", adminHandler.UnblockUser)
	}

	return r
}
