package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	BarbershopID string `gorm:"size:36;index" json:"barbershop_id"`
	BarberID     string `gorm:"size:36;index" json:"barber_id"`
	ClientID     string `gorm:"size:36;index" json:"client_id"`
	ServiceID    string `gorm:"size:36" json:"service_id"`

	Date string `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5" json:"time"`        // HH:MM

	DurationMinutes int `json:"duration"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Price *float64 `json:"price,omitempty"`
	Notes string   `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
