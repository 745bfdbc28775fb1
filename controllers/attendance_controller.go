package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
)

// CheckIn records attendance for the calling student using a scanned QR
// token.
func CheckIn(c *gin.Context) {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "QR token is required"})
		return
	}

	var qrToken models.QRToken
	err := database.DB.
		Preload("Event").
		Where("token = ? AND expires_at > ?", input.Token, time.Now()).
		First(&qrToken).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired QR token"})
		return
	}

	// A valid token for another college's event must look like a missing
	// event, not a forbidden one.
	if qrToken.Event.CollegeID != c.GetString("college_id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var registration models.Registration
	err = database.DB.
		Where("event_id = ? AND student_id = ? AND status = ?",
			qrToken.EventID, c.GetString("user_id"), models.RegistrationRegistered).
		First(&registration).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are not registered for this event"})
		return
	}

	attendance := models.Attendance{
		RegistrationID: registration.ID,
		CheckedInAt:    time.Now(),
		Method:         models.CheckInQR,
	}
	if err := database.DB.Create(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already checked in to this event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"event":         qrToken.Event,
		"checked_in_at": attendance.CheckedInAt,
	})
}

// ManualCheckIn records attendance for a registration on behalf of a
// student (requires admin permission).
func ManualCheckIn(c *gin.Context) {
	var input struct {
		RegistrationID string `json:"registration_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.RegistrationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration ID is required"})
		return
	}

	var registration models.Registration
	err := database.DB.
		Preload("Event").
		Preload("Student").
		First(&registration, "id = ?", input.RegistrationID).Error
	if err != nil || registration.Event.CollegeID != c.GetString("college_id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	actorID := c.GetString("user_id")
	attendance := models.Attendance{
		RegistrationID: registration.ID,
		CheckedInAt:    time.Now(),
		Method:         models.CheckInManual,
		CheckedInBy:    &actorID,
	}
	if err := database.DB.Create(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Student already checked in"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"attendance": attendance,
		"student":    registration.Student,
		"event":      registration.Event,
	})
}
