package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
)

// registerStudent creates a confirmed registration directly in the store.
func registerStudent(t *testing.T, event models.Event, student models.UserProfile) models.Registration {
	t.Helper()
	registration := models.Registration{
		EventID:   event.ID,
		StudentID: student.ID,
		Status:    models.RegistrationRegistered,
	}
	if err := database.DB.Create(&registration).Error; err != nil {
		t.Fatalf("create registration: %v", err)
	}
	return registration
}

// issueToken stores a QR token for the event directly in the store.
func issueToken(t *testing.T, event models.Event, admin models.UserProfile, token string, expiresAt time.Time) models.QRToken {
	t.Helper()
	qrToken := models.QRToken{
		EventID:   event.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedBy: admin.ID,
	}
	if err := database.DB.Create(&qrToken).Error; err != nil {
		t.Fatalf("create qr token: %v", err)
	}
	return qrToken
}

func TestCheckIn(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	admin, _ := createUser(t, college, models.RoleAdmin, "Admin", "admin@northfield.edu")
	event := createEvent(t, college, admin, "Hack Night", 10)
	student, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")
	registration := registerStudent(t, event, student)
	issueToken(t, event, admin, "tok-hack-night", time.Now().Add(30*time.Minute))

	rec := doRequest(router, http.MethodPost, "/attendance/checkin", token, map[string]string{"token": "tok-hack-night"})
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["checked_in_at"])

	var attendance models.Attendance
	err := database.DB.Where("registration_id = ?", registration.ID).First(&attendance).Error
	assert.NoError(t, err)
	assert.Equal(t, models.CheckInQR, attendance.Method)
	assert.Nil(t, attendance.CheckedInBy)
}

func TestCheckIn_MissingToken(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	_, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")

	rec := doRequest(router, http.MethodPost, "/attendance/checkin", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "QR token is required", decodeBody(t, rec)["error"])
}

func TestCheckIn_ExpiredToken(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	admin, _ := createUser(t, college, models.RoleAdmin, "Admin", "admin@northfield.edu")
	event := createEvent(t, college, admin, "Hack Night", 10)
	student, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")
	registerStudent(t, event, student)
	issueToken(t, event, admin, "tok-expired", time.Now().Add(-time.Second))

	rec := doRequest(router, http.MethodPost, "/attendance/checkin", token, map[string]string{"token": "tok-expired"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired QR token", decodeBody(t, rec)["error"])
}

func TestCheckIn_UnknownToken(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	_, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")

	rec := doRequest(router, http.MethodPost, "/attendance/checkin", token, map[string]string{"token": "no-such-token"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired QR token", decodeBody(t, rec)["error"])
}

func TestCheckIn_NotRegistered(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	admin, _ := createUser(t, college, models.RoleAdmin, "Admin", "admin@northfield.edu")
	event := createEvent(t, college, admin, "Hack Night", 10)
	_, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")
	issueToken(t, event, admin, "tok-hack-night", time.Now().Add(30*time.Minute))

	rec := doRequest(router, http.MethodPost, "/attendance/checkin", token, map[string]string{"token": "tok-hack-night"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You are not registered for this event", decodeBody(t, rec)["error"])
}

func TestCheckIn_CrossCollegeToken(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	other := createCollege(t, "Lakeside College")
	otherAdmin, _ := createUser(t, other, models.RoleAdmin, "Admin", "admin@lakeside.edu")
	event := createEvent(t, other, otherAdmin, "Lakeside Gala", 10)
	_, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")
	issueToken(t, event, otherAdmin, "tok-gala", time.Now().Add(30*time.Minute))

	// Existence of the other college's event must not leak as 403.
	rec := doRequest(router, http.MethodPost, "/attendance/checkin", token, map[string]string{"token": "tok-gala"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", decodeBody(t, rec)["error"])
}

func TestCheckIn_Twice(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	admin, _ := createUser(t, college, models.RoleAdmin, "Admin", "admin@northfield.edu")
	event := createEvent(t, college, admin, "Hack Night", 10)
	student, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")
	registerStudent(t, event, student)
	issueToken(t, event, admin, "tok-hack-night", time.Now().Add(30*time.Minute))

	rec := doRequest(router, http.MethodPost, "/attendance/checkin", token, map[string]string{"token": "tok-hack-night"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/attendance/checkin", token, map[string]string{"token": "tok-hack-night"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already checked in to this event", decodeBody(t, rec)["error"])
}

func TestManualCheckIn(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	admin, adminToken := createUser(t, college, models.RoleAdmin, "Admin", "admin@northfield.edu")
	event := createEvent(t, college, admin, "Hack Night", 10)
	student, _ := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")
	registration := registerStudent(t, event, student)

	rec := doRequest(router, http.MethodPost, "/attendance/manual", adminToken, map[string]string{"registration_id": registration.ID})
	assert.Equal(t, http.StatusOK, rec.Code)

	var attendance models.Attendance
	err := database.DB.Where("registration_id = ?", registration.ID).First(&attendance).Error
	assert.NoError(t, err)
	assert.Equal(t, models.CheckInManual, attendance.Method)
	if assert.NotNil(t, attendance.CheckedInBy) {
		assert.Equal(t, admin.ID, *attendance.CheckedInBy)
	}
}

func TestManualCheckIn_AfterQRCheckIn(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	admin, adminToken := createUser(t, college, models.RoleAdmin, "Admin", "admin@northfield.edu")
	event := createEvent(t, college, admin, "Hack Night", 10)
	student, studentToken := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")
	registration := registerStudent(t, event, student)
	issueToken(t, event, admin, "tok-hack-night", time.Now().Add(30*time.Minute))

	rec := doRequest(router, http.MethodPost, "/attendance/checkin", studentToken, map[string]string{"token": "tok-hack-night"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// The one-attendance-per-registration rule holds across methods.
	rec = doRequest(router, http.MethodPost, "/attendance/manual", adminToken, map[string]string{"registration_id": registration.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Student already checked in", decodeBody(t, rec)["error"])
}

func TestManualCheckIn_NotFound(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	_, adminToken := createUser(t, college, models.RoleAdmin, "Admin", "admin@northfield.edu")

	rec := doRequest(router, http.MethodPost, "/attendance/manual", adminToken, map[string]string{"registration_id": "11111111-1111-1111-1111-111111111111"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Registration not found", decodeBody(t, rec)["error"])
}

func TestManualCheckIn_CrossCollege(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	other := createCollege(t, "Lakeside College")
	_, adminToken := createUser(t, college, models.RoleAdmin, "Admin", "admin@northfield.edu")
	otherAdmin, _ := createUser(t, other, models.RoleAdmin, "Other Admin", "admin@lakeside.edu")
	event := createEvent(t, other, otherAdmin, "Lakeside Gala", 10)
	student, _ := createUser(t, other, models.RoleStudent, "Student B", "b@lakeside.edu")
	registration := registerStudent(t, event, student)

	rec := doRequest(router, http.MethodPost, "/attendance/manual", adminToken, map[string]string{"registration_id": registration.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Registration not found", decodeBody(t, rec)["error"])
}
