package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
)

// GetEvents retrieves the college's events with optional filters.
// Students only see active events; admins may filter by status.
func GetEvents(c *gin.Context) {
	queryParams := struct {
		Type   string `form:"type"`
		Status string `form:"status"`
	}{}
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	query := database.DB.Where("college_id = ?", c.GetString("college_id"))

	userRole := c.GetString("role")
	if userRole == string(models.RoleStudent) {
		query = query.Where("status = ?", models.EventActive)
	} else if queryParams.Status != "" {
		query = query.Where("status = ?", queryParams.Status)
	}

	if queryParams.Type != "" {
		query = query.Where("type = ?", queryParams.Type)
	}

	var events []models.Event
	if err := query.Order("starts_at asc").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CreateEvent creates a new event (requires admin permission)
func CreateEvent(c *gin.Context) {
	var input struct {
		Title                string    `json:"title" binding:"required"`
		Description          string    `json:"description"`
		Type                 string    `json:"type" binding:"required"`
		Venue                string    `json:"venue"`
		Capacity             int       `json:"capacity" binding:"required"`
		StartsAt             time.Time `json:"starts_at" binding:"required"`
		EndsAt               time.Time `json:"ends_at" binding:"required"`
		RegistrationOpensAt  time.Time `json:"registration_opens_at" binding:"required"`
		RegistrationClosesAt time.Time `json:"registration_closes_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Capacity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be at least 1"})
		return
	}
	if !input.StartsAt.Before(input.EndsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at must be before ends_at"})
		return
	}
	if !input.RegistrationOpensAt.Before(input.RegistrationClosesAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "registration_opens_at must be before registration_closes_at"})
		return
	}

	event := models.Event{
		CollegeID:            c.GetString("college_id"),
		Title:                input.Title,
		Description:          input.Description,
		Type:                 input.Type,
		Venue:                input.Venue,
		Capacity:             input.Capacity,
		StartsAt:             input.StartsAt,
		EndsAt:               input.EndsAt,
		RegistrationOpensAt:  input.RegistrationOpensAt,
		RegistrationClosesAt: input.RegistrationClosesAt,
		Status:               models.EventActive,
		CreatedBy:            c.GetString("user_id"),
	}
	if err := database.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetEvent retrieves details of a specific event. Admins see the
// registration roster with student names; students see the event alone.
func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	err := database.DB.
		Preload("Registrations.Student").
		Where("college_id = ?", c.GetString("college_id")).
		First(&event, "id = ?", eventID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if c.GetString("role") != string(models.RoleAdmin) {
		event.Registrations = nil
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// UpdateEvent applies a partial update to an event (requires admin permission)
func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	err := database.DB.
		Where("college_id = ?", c.GetString("college_id")).
		First(&event, "id = ?", eventID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var input struct {
		Title                *string    `json:"title"`
		Description          *string    `json:"description"`
		Type                 *string    `json:"type"`
		Venue                *string    `json:"venue"`
		Capacity             *int       `json:"capacity"`
		StartsAt             *time.Time `json:"starts_at"`
		EndsAt               *time.Time `json:"ends_at"`
		RegistrationOpensAt  *time.Time `json:"registration_opens_at"`
		RegistrationClosesAt *time.Time `json:"registration_closes_at"`
		Status               *string    `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Type != nil {
		event.Type = *input.Type
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	if input.Capacity != nil {
		if *input.Capacity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be at least 1"})
			return
		}
		event.Capacity = *input.Capacity
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = *input.EndsAt
	}
	if input.RegistrationOpensAt != nil {
		event.RegistrationOpensAt = *input.RegistrationOpensAt
	}
	if input.RegistrationClosesAt != nil {
		event.RegistrationClosesAt = *input.RegistrationClosesAt
	}
	if input.Status != nil {
		switch models.EventStatus(*input.Status) {
		case models.EventActive, models.EventCancelled, models.EventCompleted:
			event.Status = models.EventStatus(*input.Status)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}

	if err := database.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent cancels an event (requires admin permission). Events are
// never hard-deleted so registrations and reports stay intact.
func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	err := database.DB.
		Where("college_id = ?", c.GetString("college_id")).
		First(&event, "id = ?", eventID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	event.Status = models.EventCancelled
	if err := database.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}
