package models

import (
	"time"
)

const (
	RegistrationActive    = "ACTIVE"
	RegistrationCancelled = "CANCELLED"

	MemberPending   = "PENDING"
	MemberConfirmed = "CONFIRMED"
)

type TeamRegistration struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EventID    uint   `gorm:"index;column:event_id" json:"event_id"`
	EventTitle string `gorm:"size:255;column:event_title" json:"event_title"`

	LeaderID    uint   `gorm:"index;column:leader_id" json:"leader_id"`
	LeaderEmail string `gorm:"size:150;column:leader_email" json:"leader_email"`
	LeaderName  string `gorm:"size:255;column:leader_name" json:"leader_name"`

	TeamSize int    `gorm:"column:team_size" json:"team_size"`
	Status   string `gorm:"size:32;default:ACTIVE" json:"status"`

	Members []TeamMember `gorm:"foreignKey:TeamRegistrationID" json:"members,omitempty"`
}

type TeamMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TeamRegistrationID uint `gorm:"index;column:team_registration_id" json:"team_registration_id"`

	Email string `gorm:"size:150" json:"email"`
	Name  string `gorm:"size:255" json:"name"`

	Status      string     `gorm:"size:32;default:PENDING" json:"status"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
}

// ConfirmationToken is issued 1:1 with a TeamMember and consumed at most
// once: used_at stays NULL until the member confirms through the link.
type ConfirmationToken struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	Token        string `gorm:"uniqueIndex;size:128" json:"-"`
	TeamMemberID uint   `gorm:"index;column:team_member_id" json:"team_member_id"`

	ExpiresAt time.Time  `gorm:"column:expires_at" json:"expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
}
