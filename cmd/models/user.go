package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

type User struct {
	gorm.Model
	Username     string `gorm:"column:username;size:255;not null" json:"username"`
	Email        string `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string `gorm:"column:role;size:50;not null" json:"role"`

	Refresh               string    `gorm:"column:refresh_token;size:255" json:"-"`
	RefreshTokenExpiredAt time.Time `gorm:"column:refresh_token_expired_at" json:"-"`
}

func (User) TableName() string {
	return "profiles"
}

// ValidRole reports whether role is one of the two roles the system knows.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleProfessor
}
