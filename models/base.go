package models

import "time"

// Base replaces gorm.Model for API-facing rows: snake_case JSON and no soft-delete column.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
