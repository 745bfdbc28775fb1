package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback holds one student rating per registration.
type Feedback struct {
	ID             string `gorm:"type:uuid;primaryKey" json:"id"`
	RegistrationID string `gorm:"type:uuid;not null;uniqueIndex" json:"registration_id"`
	Rating         int    `gorm:"not null" json:"rating"`
	Comment        string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Registration Registration `gorm:"foreignKey:RegistrationID" json:"-"`
}

func (f *Feedback) TableName() string { return "feedback" }

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
