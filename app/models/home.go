package models

import "time"

const (
	PropertyResidential = "RESIDENTIAL"
	PropertyCondo       = "CONDO"
)

// ValidPropertyType reports whether s is one of the closed property type set.
func ValidPropertyType(s string) bool {
	return s == PropertyResidential || s == PropertyCondo
}

type Home struct {
	ID           uint    `gorm:"primaryKey"`
	Address      string  `gorm:"size:255;not null"`
	City         string  `gorm:"size:191;not null;index"`
	Price        float64 `gorm:"not null;index"`
	LandSize     float64 `gorm:"not null"`
	Bedrooms     int     `gorm:"not null"`
	Bathrooms    int     `gorm:"not null"`
	PropertyType string  `gorm:"size:32;not null;index"`
	RealtorID    uint    `gorm:"not null;index"`
	Realtor      User    `gorm:"foreignKey:RealtorID"`
	Images       []Image `gorm:"foreignKey:HomeID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
