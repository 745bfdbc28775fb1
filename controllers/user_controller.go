package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
)

// GetProfile returns the caller's own profile
func GetProfile(c *gin.Context) {
	var user models.UserProfile
	if err := database.DB.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the caller's own profile
func UpdateProfile(c *gin.Context) {
	var user models.UserProfile
	if err := database.DB.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Define input struct with optional fields (pointers)
	var input struct {
		Name       *string `json:"name"`
		Department *string `json:"department"`
		StudentID  *string `json:"student_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Update only provided fields
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.StudentID != nil {
		user.StudentID = *input.StudentID
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
