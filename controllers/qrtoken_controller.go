package controllers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/opencampus/events-backend/database"
	"github.com/opencampus/events-backend/models"
	"github.com/opencampus/events-backend/utils"
)

const defaultTokenExpiryMinutes = 30

func checkInURL(token string) string {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/checkin/%s", base, token)
}

// IssueQRToken generates a fresh check-in token for an event (requires
// admin permission). Any previous tokens for the event are removed in the
// same transaction, so at most one live token exists once the call returns.
func IssueQRToken(c *gin.Context) {
	eventID := c.Param("id")

	var input struct {
		ExpiryMinutes int `json:"expiry_minutes"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if input.ExpiryMinutes <= 0 {
		input.ExpiryMinutes = defaultTokenExpiryMinutes
	}

	var event models.Event
	err := database.DB.
		Where("college_id = ?", c.GetString("college_id")).
		First(&event, "id = ?", eventID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	token, err := utils.GenerateCheckInToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	qrToken := models.QRToken{
		EventID:   event.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(input.ExpiryMinutes) * time.Minute),
		CreatedBy: c.GetString("user_id"),
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.QRToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&qrToken).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create QR token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      qrToken.Token,
		"expires_at": qrToken.ExpiresAt,
		"qr_data":    checkInURL(qrToken.Token),
	})
}

// GetQRToken returns the event's current unexpired token (requires admin
// permission).
func GetQRToken(c *gin.Context) {
	qrToken, ok := currentQRToken(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      qrToken.Token,
		"expires_at": qrToken.ExpiresAt,
		"qr_data":    checkInURL(qrToken.Token),
	})
}

// GetQRTokenImage renders the current token's check-in URL as a PNG
// suitable for projection at the venue (requires admin permission).
func GetQRTokenImage(c *gin.Context) {
	qrToken, ok := currentQRToken(c)
	if !ok {
		return
	}

	png, err := qrcode.Encode(checkInURL(qrToken.Token), qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// currentQRToken resolves the event from the route, verifies college scope
// and loads the live token. On failure it writes the error response and
// returns ok=false.
func currentQRToken(c *gin.Context) (*models.QRToken, bool) {
	eventID := c.Param("id")

	var event models.Event
	err := database.DB.
		Where("college_id = ?", c.GetString("college_id")).
		First(&event, "id = ?", eventID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return nil, false
	}

	var qrToken models.QRToken
	err = database.DB.
		Where("event_id = ? AND expires_at > ?", event.ID, time.Now()).
		First(&qrToken).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No valid QR token found"})
		return nil, false
	}

	return &qrToken, true
}
