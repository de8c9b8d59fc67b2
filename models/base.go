package models

import "time"

// Base carries the id and timestamps shared by every table.
// JSON uses lower-case snake_case keys throughout.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
