package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
	"github.com/opencampus/events-backend/routes"
	"github.com/opencampus/events-backend/utils"
)

// setup wires the full router against a fresh in-memory database.
func setup(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	// A single connection keeps every query on the same :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	database.DB = db

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router)
	return router
}

func createCollege(t *testing.T, name string) models.College {
	t.Helper()
	college := models.College{Name: name}
	if err := database.DB.Create(&college).Error; err != nil {
		t.Fatalf("create college: %v", err)
	}
	return college
}

// createUser stores a profile and returns it with a valid bearer token.
func createUser(t *testing.T, college models.College, role models.UserRole, name, email string) (models.UserProfile, string) {
	t.Helper()
	user := models.UserProfile{
		CollegeID: college.ID,
		Role:      role,
		Name:      name,
		Email:     email,
	}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, string(user.Role), user.CollegeID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

// createEvent stores an event with a registration window open around now.
func createEvent(t *testing.T, college models.College, creator models.UserProfile, title string, capacity int) models.Event {
	t.Helper()
	now := time.Now()
	event := models.Event{
		CollegeID:            college.ID,
		Title:                title,
		Type:                 "workshop",
		Venue:                "Main Hall",
		Capacity:             capacity,
		StartsAt:             now.Add(24 * time.Hour),
		EndsAt:               now.Add(26 * time.Hour),
		RegistrationOpensAt:  now.Add(-time.Hour),
		RegistrationClosesAt: now.Add(23 * time.Hour),
		Status:               models.EventActive,
		CreatedBy:            creator.ID,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

// doRequest runs a request through the router and returns the recorder.
func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func registrationStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	reg, ok := body["registration"].(map[string]any)
	if !ok {
		t.Fatalf("missing registration in response: %v", body)
	}
	status, _ := reg["status"].(string)
	return status
}
