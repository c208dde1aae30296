package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles. A user's role is stored on the row and resolved once at login.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is an operator account.
type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'employee'"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
