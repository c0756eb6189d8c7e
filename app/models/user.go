package models

import "time"

const (
	RoleBuyer   = "BUYER"
	RoleRealtor = "REALTOR"
	RoleAdmin   = "ADMIN"
)

// ValidRole reports whether s is one of the closed role set.
func ValidRole(s string) bool {
	switch s {
	case RoleBuyer, RoleRealtor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:191;not null"`
	Phone        string `gorm:"size:32;not null"`
	Role         string `gorm:"size:32;not null;default:BUYER"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
