package models

import (
	"time"

	"gorm.io/datatypes"
)

type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title            string `gorm:"uniqueIndex;size:255" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	Mode             string `gorm:"size:32" json:"mode"` // ONLINE / OFFLINE / HYBRID
	Location         string `gorm:"size:255" json:"location"`
	Date             string `gorm:"size:32" json:"date"`
	StartTime        string `gorm:"size:16;column:start_time" json:"start_time"`
	EndTime          string `gorm:"size:16;column:end_time" json:"end_time"`
	Poster           string `gorm:"size:512" json:"poster"`
	RegistrationLink string `gorm:"uniqueIndex;size:512;column:registration_link" json:"registration_link"`
	Category         string `gorm:"size:100" json:"category"`
	CreatedBy        string `gorm:"size:150;column:created_by" json:"created_by"`
	MaxParticipants  int    `gorm:"default:100;column:max_participants" json:"max_participants"`

	// RegisteredCount mirrors len(RegisteredUsers). Both change together in
	// one guarded update; the count is the column the guard compares.
	RegisteredCount int `gorm:"default:0;column:registered_count" json:"registered_count"`

	Tags            datatypes.JSON `gorm:"column:tags" json:"tags"`
	RegisteredUsers datatypes.JSON `gorm:"column:registered_users" json:"registered_users"`
}
