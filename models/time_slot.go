package models

import (
	"time"
)

// Slot statuses. BOOKED is derived: a slot is BOOKED exactly when
// current_bookings has reached max_bookings.
const (
	SlotAvailable = "AVAILABLE"
	SlotBooked    = "BOOKED"
)

type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StaffID   uint   `gorm:"index;column:staff_id" json:"staff_id"`
	Date      string `gorm:"size:32" json:"date"`
	StartTime string `gorm:"size:16;column:start_time" json:"start_time"`
	EndTime   string `gorm:"size:16;column:end_time" json:"end_time"`
	Location  string `gorm:"size:255" json:"location"`
	Notes     string `gorm:"type:text" json:"notes"`

	MaxBookings     int    `gorm:"default:1;column:max_bookings" json:"max_bookings"`
	CurrentBookings int    `gorm:"default:0;column:current_bookings" json:"current_bookings"`
	Status          string `gorm:"size:32;default:AVAILABLE" json:"status"`

	Staff Staff `gorm:"foreignKey:StaffID" json:"-"`
}
