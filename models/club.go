package models

import (
	"time"
)

// PendingClub is an organiser sign-up awaiting admin approval. On approval a
// CLUB user is created from it and the row is marked approved.
type PendingClub struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClubName    string `gorm:"size:255;column:club_name" json:"club_name"`
	Email       string `gorm:"uniqueIndex;size:150" json:"email"`
	Phone       string `gorm:"size:32" json:"phone"`
	Description string `gorm:"type:text" json:"description"`
	Password    string `gorm:"size:255" json:"-"`

	Status string `gorm:"size:32;default:pending" json:"status"`
}

func (PendingClub) TableName() string { return "pending_club_approvals" }
