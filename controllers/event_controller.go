// controllers/event_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"eventix-backend/config"
	"eventix-backend/middleware"
	"eventix-backend/models"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type createEventPayload struct {
	Title            string         `json:"title" binding:"required"`
	Description      string         `json:"description" binding:"required"`
	Mode             string         `json:"mode" binding:"required"`
	Location         string         `json:"location"`
	Date             string         `json:"date" binding:"required"`
	StartTime        string         `json:"start_time" binding:"required"`
	EndTime          string         `json:"end_time"`
	Poster           string         `json:"poster"`
	RegistrationLink string         `json:"registration_link" binding:"required"`
	Category         string         `json:"category"`
	MaxParticipants  int            `json:"max_participants"`
	Tags             datatypes.JSON `json:"tags"`
}

type updateEventPayload struct {
	Title            *string         `json:"title"`
	Description      *string         `json:"description"`
	Mode             *string         `json:"mode"`
	Location         *string         `json:"location"`
	Date             *string         `json:"date"`
	StartTime        *string         `json:"start_time"`
	EndTime          *string         `json:"end_time"`
	Poster           *string         `json:"poster"`
	RegistrationLink *string         `json:"registration_link"`
	Category         *string         `json:"category"`
	MaxParticipants  *int            `json:"max_participants"`
	Tags             *datatypes.JSON `json:"tags"`
}

func CreateEvent(c *gin.Context) {
	var payload createEventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Title, description, mode, date, start time, and registration link are required")
		return
	}

	user, _ := middleware.CurrentUser(c)

	title := strings.TrimSpace(payload.Title)

	var existing models.Event
	if err := config.DB.Where("title = ? OR registration_link = ?", title, payload.RegistrationLink).
		First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusConflict, "error.eventExists", "Event with this title or registration link already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	event := models.Event{
		Title:            title,
		Description:      payload.Description,
		Mode:             strings.ToUpper(payload.Mode),
		Location:         payload.Location,
		Date:             payload.Date,
		StartTime:        payload.StartTime,
		EndTime:          payload.EndTime,
		Poster:           payload.Poster,
		RegistrationLink: payload.RegistrationLink,
		Category:         payload.Category,
		CreatedBy:        user.Email,
		Tags:             payload.Tags,
		RegisteredUsers:  datatypes.JSON([]byte("[]")),
	}
	if payload.MaxParticipants > 0 {
		event.MaxParticipants = payload.MaxParticipants
	}

	if err := config.DB.Create(&event).Error; err != nil {
		if isDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusConflict, "error.eventExists", "Event with this title or registration link already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to create event")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, event, "Event created successfully")
}

func GetAllEvents(c *gin.Context) {
	var events []models.Event
	if err := config.DB.Order("date ASC, start_time ASC").Find(&events).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, events, "Events fetched successfully")
}

func GetEventByID(c *gin.Context) {
	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.eventNotFound", "Event not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, event, "Event fetched successfully")
}

func UpdateEvent(c *gin.Context) {
	var payload updateEventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Invalid event payload")
		return
	}

	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.eventNotFound", "Event not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if payload.Title != nil {
		title := strings.TrimSpace(*payload.Title)
		var taken models.Event
		if err := config.DB.Where("title = ? AND id <> ?", title, event.ID).First(&taken).Error; err == nil {
			utils.JSONError(c, http.StatusConflict, "error.eventExists", "Event with this title already exists")
			return
		}
		updates["title"] = title
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Mode != nil {
		updates["mode"] = strings.ToUpper(*payload.Mode)
	}
	if payload.Location != nil {
		updates["location"] = *payload.Location
	}
	if payload.Date != nil {
		updates["date"] = *payload.Date
	}
	if payload.StartTime != nil {
		updates["start_time"] = *payload.StartTime
	}
	if payload.EndTime != nil {
		updates["end_time"] = *payload.EndTime
	}
	if payload.Poster != nil {
		updates["poster"] = *payload.Poster
	}
	if payload.RegistrationLink != nil {
		updates["registration_link"] = *payload.RegistrationLink
	}
	if payload.Category != nil {
		updates["category"] = *payload.Category
	}
	if payload.MaxParticipants != nil && *payload.MaxParticipants > 0 {
		updates["max_participants"] = *payload.MaxParticipants
	}
	if payload.Tags != nil {
		updates["tags"] = *payload.Tags
	}

	if len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "No updatable fields provided")
		return
	}

	if err := config.DB.Model(&event).Updates(updates).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to update event")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, event, "Event updated successfully")
}

func DeleteEvent(c *gin.Context) {
	res := config.DB.Delete(&models.Event{}, c.Param("id"))
	if res.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "error.eventNotFound", "Event not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Event deleted successfully")
}

// SearchEvents does a substring match over title, description, and category.
func SearchEvents(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Search query is required")
		return
	}

	pattern := "%" + query + "%"
	var events []models.Event
	if err := config.DB.
		Where("title LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern).
		Order("date ASC").
		Find(&events).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, events, "Search results fetched successfully")
}
