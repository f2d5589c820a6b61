package models

import "time"

// Booking is a completed interview booking collected by the chat flow.
// Rows are immutable once written.
type Booking struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;size:255"`
	Email     string `gorm:"not null;size:255"`
	Date      string `gorm:"not null;size:64"`
	Time      string `gorm:"not null;size:64"`
	CreatedAt time.Time
}

func (Booking) TableName() string {
	return "bookings"
}
