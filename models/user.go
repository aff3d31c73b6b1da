package models

import (
	"time"
)

// User roles
const (
	RoleGuest = 0
	RoleStaff = 1
	RoleAdmin = 2
)

// User is a back-office account. Guests book without an account; their
// contact details live on the booking record itself.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name      string    `gorm:"default:New User" json:"name"`
	Email     string    `gorm:"unique" json:"email"`
	Password  string    `json:"-"`
	Role      int       `gorm:"default:0" json:"role"`
	Status    int       `gorm:"default:1" json:"status"`
}
