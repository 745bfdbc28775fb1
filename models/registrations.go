package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationCancelled  RegistrationStatus = "cancelled"
	RegistrationWaitlisted RegistrationStatus = "waitlisted"
)

// Registration links a student to an event. At most one non-cancelled
// registration may exist per (event, student) pair; that rule lives in a
// partial unique index created by database.Migrate.
type Registration struct {
	ID        string             `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string             `gorm:"type:uuid;not null;index" json:"event_id"`
	StudentID string             `gorm:"type:uuid;not null;index" json:"student_id"`
	Status    RegistrationStatus `gorm:"size:16;not null;default:'registered'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Event      Event       `gorm:"foreignKey:EventID" json:"-"`
	Student    *UserProfile `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Attendance *Attendance `gorm:"foreignKey:RegistrationID" json:"attendance,omitempty"`
	Feedback   *Feedback   `gorm:"foreignKey:RegistrationID" json:"feedback,omitempty"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
