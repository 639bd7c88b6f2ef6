package models

import (
	"time"
)

const (
	AppointmentBooked    = "BOOKED"
	AppointmentCancelled = "CANCELLED"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TimeSlotID uint `gorm:"index;column:time_slot_id" json:"time_slot_id"`
	StaffID    uint `gorm:"index;column:staff_id" json:"staff_id"`
	UserID     uint `gorm:"index;column:user_id" json:"user_id"`

	ReferenceCode string `gorm:"uniqueIndex;size:64;column:reference_code" json:"reference_code"`

	UserName  string `gorm:"size:255;column:user_name" json:"user_name"`
	UserEmail string `gorm:"size:150;column:user_email" json:"user_email"`
	UserPhone string `gorm:"size:32;column:user_phone" json:"user_phone"`
	Purpose   string `gorm:"type:text" json:"purpose"`

	// BOOKED on creation, CANCELLED via the cancel path; any other label
	// (COMPLETED, NO_SHOW, ...) is staff-assigned and carries no capacity
	// side effect.
	Status string `gorm:"size:32;default:BOOKED" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	TimeSlot TimeSlot `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
	Staff    Staff    `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}
