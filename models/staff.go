package models

import (
	"time"
)

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"size:255" json:"name"`
	Email       string `gorm:"uniqueIndex;size:150" json:"email"`
	Phone       string `gorm:"size:32" json:"phone"`
	Department  string `gorm:"size:100" json:"department"`
	Designation string `gorm:"size:100" json:"designation"`
	Bio         string `gorm:"type:text" json:"bio"`
	Avatar      string `gorm:"size:512" json:"avatar"`
	IsActive    bool   `gorm:"default:true;column:is_active" json:"is_active"`

	RefreshToken *string `gorm:"size:512" json:"-"`
}

// StaffOTP is a short-lived login code; rows are deleted once verified.
type StaffOTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;size:150" json:"email"`
	Name      string    `gorm:"size:255" json:"name"`
	Code      string    `gorm:"size:8;column:code" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (StaffOTP) TableName() string { return "staff_otp_verifications" }
