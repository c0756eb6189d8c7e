package models

import "time"

type Image struct {
	ID        uint   `gorm:"primaryKey"`
	URL       string `gorm:"size:512;not null"`
	HomeID    uint   `gorm:"not null;index"`
	CreatedAt time.Time
}
