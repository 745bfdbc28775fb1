package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
)

// SubmitFeedback stores the calling student's rating for an event they are
// registered for. One feedback per registration.
func SubmitFeedback(c *gin.Context) {
	eventID := c.Param("id")

	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	var registration models.Registration
	err := database.DB.
		Joins("Event").
		Where("registrations.event_id = ? AND registrations.student_id = ? AND registrations.status <> ?",
			eventID, c.GetString("user_id"), models.RegistrationCancelled).
		Where(`"Event".college_id = ?`, c.GetString("college_id")).
		First(&registration).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	feedback := models.Feedback{
		RegistrationID: registration.ID,
		Rating:         input.Rating,
		Comment:        input.Comment,
	}
	if err := database.DB.Create(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Feedback already submitted for this event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"feedback": feedback})
}
