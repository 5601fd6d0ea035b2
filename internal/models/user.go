// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name            string   `json:"name" gorm:"size:100;not null"`
	Phone           string   `json:"phone" gorm:"uniqueIndex;size:20;not null"`
	PasswordHash    string   `json:"-" gorm:"size:255;not null"`
	Role            UserRole `json:"role" gorm:"type:varchar(20);not null;index"`
	Language        string   `json:"language" gorm:"size:10;default:'en'"`
	LandArea        *float64 `json:"land_area" gorm:"type:decimal(10,2)"`
	Location        *string  `json:"location" gorm:"size:255"`
	ExperienceYears *int     `json:"experience_years"`

	// Relationships
	Listings  []Listing  `json:"listings,omitempty" gorm:"foreignKey:FarmerID"`
	SoilTests []SoilTest `json:"soil_tests,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
