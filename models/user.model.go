package models

import "time"

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	Base
	Email            string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string     `json:"-" gorm:"not null"`
	FullName         string     `json:"full_name" gorm:"size:100;not null"`
	Role             string     `json:"role" gorm:"size:20;default:'student';index"`
	Bio              string     `json:"bio" gorm:"type:text"`
	AvatarURL        string     `json:"avatar_url"`
	Phone            string     `json:"phone" gorm:"size:30"`
	Country          string     `json:"country" gorm:"size:60"`
	Language         string     `json:"language" gorm:"size:10;default:'en'"`
	IsVerified       bool       `json:"is_verified" gorm:"default:false"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
	StripeCustomerID string     `json:"-" gorm:"size:100"`
	LastLoginAt      *time.Time `json:"last_login_at"`
}

// HasRole reports whether the user holds one of roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// IsStaff is true for instructors and admins, who may post in any forum and see unpublished courses they own.
func (u *User) IsStaff() bool {
	return u.HasRole(RoleInstructor, RoleAdmin)
}
