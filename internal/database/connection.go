// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agrisakti/agrisakti-backend/internal/config"
	"github.com/agrisakti/agrisakti-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Make sure the directory holding the database file exists
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Connect to database
	DB, err = gorm.Open(sqlite.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// SQLite allows a single writer; a pool of one serializes writes at the
	// driver instead of surfacing lock contention to the handlers.
	maxConns := cfg.MaxOpenConns
	if maxConns < 1 {
		maxConns = 1
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Contract{},
		&models.SoilTest{},
		&models.Expert{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Listing indexes
		"CREATE INDEX IF NOT EXISTS idx_listings_farmer ON listings(farmer_id)",
		"CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status)",
		"CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings(created_at)",

		// Contract indexes
		"CREATE INDEX IF NOT EXISTS idx_contracts_listing ON contracts(listing_id)",
		"CREATE INDEX IF NOT EXISTS idx_contracts_buyer_phone ON contracts(buyer_phone)",

		// Soil test indexes
		"CREATE INDEX IF NOT EXISTS idx_soil_tests_user_created ON soil_tests(user_id, created_at DESC)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Experts are read-only reference data; seed once
	var expertCount int64
	if err := db.Model(&models.Expert{}).Count(&expertCount).Error; err != nil {
		return fmt.Errorf("failed to count experts: %w", err)
	}

	if expertCount == 0 {
		experts := []models.Expert{
			{Name: "Dr. R. Subramanian", Speciality: "Soil Science", Region: "Thanjavur", Phone: "+91-9840010001"},
			{Name: "K. Meenakshi", Speciality: "Paddy Cultivation", Region: "Madurai", Phone: "+91-9840010002"},
			{Name: "S. Arumugam", Speciality: "Organic Farming", Region: "Coimbatore", Phone: "+91-9840010003"},
			{Name: "Dr. P. Lakshmi", Speciality: "Pest Management", Region: "Tiruchirappalli", Phone: "+91-9840010004"},
			{Name: "V. Karthik", Speciality: "Irrigation", Region: "Salem", Phone: "+91-9840010005"},
		}

		if err := db.Create(&experts).Error; err != nil {
			return fmt.Errorf("failed to seed experts: %w", err)
		}

		log.Println("Expert directory seeded successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}
