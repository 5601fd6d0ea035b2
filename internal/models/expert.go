// internal/models/expert.go
package models

// Expert is read-only reference data shown in the public directory.
type Expert struct {
	BaseModel
	Name       string `json:"name" gorm:"size:100;not null"`
	Speciality string `json:"speciality" gorm:"size:100;not null"`
	Region     string `json:"region" gorm:"size:100;index"`
	Phone      string `json:"phone" gorm:"size:20"`
}
