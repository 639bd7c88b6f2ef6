package models

import (
	"time"

	"gorm.io/datatypes"
)

type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"uniqueIndex;column:user_id" json:"user_id"`

	Name          string `gorm:"size:255" json:"name"`
	Username      string `gorm:"uniqueIndex;size:100" json:"username"`
	RollNo        string `gorm:"size:50" json:"roll_no"`
	EmailPersonal string `gorm:"size:150" json:"email_personal"`
	EmailCampus   string `gorm:"size:150" json:"email_campus"`
	Logo          string `gorm:"size:512" json:"logo"`
	Phone         string `gorm:"size:32" json:"phone"`
	University    string `gorm:"size:255" json:"university"`
	Location      string `gorm:"size:255" json:"location"`
	Course        string `gorm:"size:255" json:"course"`
	YearOfStudy   string `gorm:"size:32" json:"year_of_study"`

	Skills      datatypes.JSON `gorm:"column:skills" json:"skills"`
	Education   datatypes.JSON `gorm:"column:education" json:"education"`
	EventsAdded datatypes.JSON `gorm:"column:events_added" json:"events_added"`
}
