package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Role names assigned to application users
const (
	RoleAdmin = "Admin"
	RoleBasic = "Basic"
)

// AppUser is an identity account able to own portfolios
type AppUser struct {
	ID                string `gorm:"primaryKey;size:64"`
	UserName          string `gorm:"size:100;not null;uniqueIndex"`
	Email             string `gorm:"size:200;not null"`
	Name              string `gorm:"size:100"`
	LastName          string `gorm:"size:100"`
	EmailConfirmed    bool   `gorm:"not null;default:false"`
	PasswordHash      string `gorm:"size:200;not null"`
	AccessFailedCount int    `gorm:"not null;default:0"`
	LockoutEnabled    bool   `gorm:"not null;default:true"`
	LockoutEnd        *time.Time
	Roles             datatypes.JSONSlice[string]
}

func (AppUser) TableName() string { return "app_users" }

// IsLockedOut reports whether the account is inside a lockout window at now
func (u *AppUser) IsLockedOut(now time.Time) bool {
	return u.LockoutEnabled && u.LockoutEnd != nil && u.LockoutEnd.After(now)
}
