package models

import "time"

type WorkingHours struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID string `gorm:"size:36;index" json:"barber_id"`

	// nil means the row applies to every weekday
	Weekday *int `json:"weekday,omitempty"`

	OpenTime   string `gorm:"size:5" json:"open_time"`
	CloseTime  string `gorm:"size:5" json:"close_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	SlotIntervalMinutes int  `json:"slot_interval_minutes"`
	Active              bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
