package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
)

func TestGetProfile(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	user, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")

	rec := doRequest(router, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	profile, _ := body["user"].(map[string]any)
	assert.Equal(t, user.ID, profile["id"])
	assert.Equal(t, "a@northfield.edu", profile["email"])
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	router := setup(t)
	college := createCollege(t, "Northfield College")
	user, token := createUser(t, college, models.RoleStudent, "Student A", "a@northfield.edu")

	rec := doRequest(router, http.MethodPatch, "/users/me", token, map[string]any{"department": "Physics"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.UserProfile
	assert.NoError(t, database.DB.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "Physics", stored.Department)
	assert.Equal(t, "Student A", stored.Name)
}

func TestUsersMe_RequiresAuth(t *testing.T) {
	router := setup(t)

	rec := doRequest(router, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
