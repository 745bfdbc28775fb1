package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckInMethod string

const (
	CheckInQR     CheckInMethod = "qr"
	CheckInManual CheckInMethod = "manual"
)

// Attendance records a single check-in for a registration. The unique index
// on RegistrationID makes "exactly one check-in per registration" a database
// guarantee rather than a read-then-insert convention.
type Attendance struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	RegistrationID string        `gorm:"type:uuid;not null;uniqueIndex" json:"registration_id"`
	CheckedInAt    time.Time     `gorm:"not null" json:"checked_in_at"`
	Method         CheckInMethod `gorm:"size:16;not null" json:"method"`
	CheckedInBy    *string       `gorm:"type:uuid" json:"checked_in_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Registration Registration `gorm:"foreignKey:RegistrationID" json:"-"`
}

func (a *Attendance) TableName() string { return "attendance" }

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
