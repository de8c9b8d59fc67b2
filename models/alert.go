package models

import "time"

// Alert is a finding about a day's intake, raised when its meals change.
type Alert struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DayID     uint      `json:"day_id" gorm:"index"`
	Code      string    `json:"code" gorm:"size:64;index"`
	Type      string    `json:"type" gorm:"size:20"` // "warning" | "info"
	Message   string    `json:"message" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
