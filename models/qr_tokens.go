package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QRToken is an opaque single-event check-in token. Issuing a new token for
// an event deletes any prior ones, so at most one live token exists per
// event; expired rows are simply never matched by readers.
type QRToken struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string    `gorm:"type:uuid;not null;index" json:"event_id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedBy string    `gorm:"type:uuid;not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

func (q *QRToken) TableName() string { return "qr_tokens" }

func (q *QRToken) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
