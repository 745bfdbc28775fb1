package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/opencampus/events-backend/models"
)

// DB is the shared GORM handle used by all controllers.
var DB *gorm.DB

// Connect opens the PostgreSQL connection described by the DB_* environment
// variables and runs migrations.
func Connect() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "campus_events"),
		getEnv("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	DB = db
}

// Migrate creates all tables plus the indexes AutoMigrate cannot express.
// It is also called by tests against their own database handle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.College{},
		&models.UserProfile{},
		&models.Event{},
		&models.Registration{},
		&models.Attendance{},
		&models.QRToken{},
		&models.Feedback{},
	); err != nil {
		return err
	}

	// A student may hold at most one live (non-cancelled) registration per
	// event. Enforced here so concurrent duplicate requests surface as a
	// unique-constraint violation instead of racing a read-then-insert.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_live
		ON registrations (event_id, student_id)
		WHERE status <> 'cancelled'`).Error
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
