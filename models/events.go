package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type Event struct {
	ID                   string      `gorm:"type:uuid;primaryKey" json:"id"`
	CollegeID            string      `gorm:"type:uuid;not null;index" json:"college_id"`
	Title                string      `gorm:"size:255;not null" json:"title"`
	Description          string      `gorm:"type:text" json:"description"`
	Type                 string      `gorm:"size:64;not null" json:"type"`
	Venue                string      `gorm:"size:255" json:"venue"`
	Capacity             int         `gorm:"not null" json:"capacity"`
	StartsAt             time.Time   `json:"starts_at"`
	EndsAt               time.Time   `json:"ends_at"`
	RegistrationOpensAt  time.Time   `json:"registration_opens_at"`
	RegistrationClosesAt time.Time   `json:"registration_closes_at"`
	Status               EventStatus `gorm:"size:16;not null;default:'active'" json:"status"`
	CreatedBy            string      `gorm:"type:uuid;not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Registrations []Registration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
