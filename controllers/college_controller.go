package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
)

// GetColleges lists all colleges, for the signup college picker. Public.
func GetColleges(c *gin.Context) {
	var colleges []models.College
	if err := database.DB.Select("id", "name").Order("name").Find(&colleges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch colleges"})
		return
	}
	c.JSON(http.StatusOK, colleges)
}
