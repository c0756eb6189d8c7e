package models

import "time"

// Message is a buyer inquiry tied to a listing. The realtor id is
// denormalized at write time so realtor visibility does not need a join
// through Home.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	Body      string `gorm:"type:text;not null"`
	HomeID    uint   `gorm:"not null;index"`
	BuyerID   uint   `gorm:"not null;index"`
	RealtorID uint   `gorm:"not null;index"`
	Buyer     User   `gorm:"foreignKey:BuyerID"`
	CreatedAt time.Time
}
