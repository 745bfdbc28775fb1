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

// RegisterForEvent signs the calling student up for an event. When the
// event is already at capacity the registration is accepted as waitlisted.
func RegisterForEvent(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	err := database.DB.
		Where("college_id = ?", c.GetString("college_id")).
		First(&event, "id = ?", eventID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if event.Status != models.EventActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event is not active"})
		return
	}

	now := time.Now()
	if now.Before(event.RegistrationOpensAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration not yet open"})
		return
	}
	if now.After(event.RegistrationClosesAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration has closed"})
		return
	}

	// Seats are taken by confirmed registrations only; waitlisted and
	// cancelled rows do not count against capacity.
	var confirmed int64
	err = database.DB.Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", event.ID, models.RegistrationRegistered).
		Count(&confirmed).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count registrations"})
		return
	}

	status := models.RegistrationRegistered
	if confirmed >= int64(event.Capacity) {
		status = models.RegistrationWaitlisted
	}

	registration := models.Registration{
		EventID:   event.ID,
		StudentID: c.GetString("user_id"),
		Status:    status,
	}
	if err := database.DB.Create(&registration).Error; err != nil {
		// The partial unique index on live (event, student) pairs turns a
		// concurrent duplicate into a constraint violation.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already registered for this event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create registration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"registration": registration})
}

// UnregisterFromEvent cancels the calling student's own registration.
// Repeated calls leave the registration cancelled.
func UnregisterFromEvent(c *gin.Context) {
	eventID := c.Param("id")

	var registration models.Registration
	err := database.DB.
		Where("event_id = ? AND student_id = ?", eventID, c.GetString("user_id")).
		Order("created_at desc").
		First(&registration).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	registration.Status = models.RegistrationCancelled
	if err := database.DB.Save(&registration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registration": registration})
}
