// controllers/email_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"eventix-backend/config"
	"eventix-backend/models"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type sendEmailPayload struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SendCustomEmail is an admin tool for one-off mail.
func SendCustomEmail(c *gin.Context) {
	var payload sendEmailPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Recipient, subject, and body are required")
		return
	}

	if err := utils.SendEmail(payload.To, payload.Subject, payload.Body, payload.Body); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.emailDelivery", "Failed to send email")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Email sent successfully")
}

// SendEventReminders fans a reminder out to everyone registered for an
// event. Per-recipient failures are logged and counted, not fatal.
func SendEventReminders(c *gin.Context) {
	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.eventNotFound", "Event not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	ids, err := decodeRegisteredUsers(event.RegisteredUsers)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	if len(ids) == 0 {
		utils.JSONSuccess(c, http.StatusOK, gin.H{"sent": 0, "failed": 0}, "No registered users to remind")
		return
	}

	var users []models.User
	if err := config.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	sent, failed := 0, 0
	for _, user := range users {
		if mailErr := utils.SendEventReminderEmail(user.Email, event.Title, event.Description, event.Date, event.StartTime, event.EndTime, event.Location, event.Mode); mailErr != nil {
			log.Printf("failed to send reminder to %s: %v", user.Email, mailErr)
			failed++
			continue
		}
		sent++
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"sent": sent, "failed": failed}, "Event reminders dispatched")
}
