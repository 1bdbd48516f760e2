package models

import "time"

// EmailVerification is a one-time token sent at registration.
type EmailVerification struct {
	Base
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"token" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}
