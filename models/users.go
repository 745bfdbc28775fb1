package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
)

// UserProfile is an authenticated member of a college, either an
// administrator or a student.
type UserProfile struct {
	ID           string   `gorm:"type:uuid;primaryKey" json:"id"`
	CollegeID    string   `gorm:"type:uuid;not null;index" json:"college_id"`
	Role         UserRole `gorm:"size:16;not null;default:'student'" json:"role"`
	Name         string   `gorm:"size:255;not null" json:"name"`
	Email        string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255" json:"-"` // Exclude password from JSON
	Department   string   `gorm:"size:255" json:"department,omitempty"`
	StudentID    string   `gorm:"size:64" json:"student_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	College       College        `gorm:"foreignKey:CollegeID" json:"-"`
	Registrations []Registration `gorm:"foreignKey:StudentID" json:"-"`
}

func (u *UserProfile) TableName() string { return "user_profiles" }

func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SetPassword hashes and stores the given plaintext password.
func (u *UserProfile) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the given plaintext password matches the
// stored hash.
func (u *UserProfile) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
