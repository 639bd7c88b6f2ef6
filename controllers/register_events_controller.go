// controllers/register_events_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventix-backend/config"
	"eventix-backend/middleware"
	"eventix-backend/models"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	errEventFull              = errors.New("event is full")
	errAlreadyRegistered      = errors.New("already registered")
	errNotRegistered          = errors.New("not registered")
	errRegistrationContention = errors.New("registration contention")
)

// registrationRetries bounds the re-read loop when a guarded update loses a
// race. Each lost round means another registration committed, so the loop
// always makes progress.
const registrationRetries = 20

func decodeRegisteredUsers(raw datatypes.JSON) ([]uint, error) {
	if len(raw) == 0 {
		return []uint{}, nil
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func encodeRegisteredUsers(ids []uint) (datatypes.JSON, error) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// addEventRegistration adds userID to the event's registered list, capped at
// max_participants. The write is a conditional update guarded on
// registered_count, the same idiom the slot ledger uses: if another
// registration changed the count since the read, zero rows match and the
// loop re-reads. The membership and capacity checks are therefore always
// evaluated against the state the update applies to.
func addEventRegistration(db *gorm.DB, eventID string, userID uint) error {
	for i := 0; i < registrationRetries; i++ {
		var event models.Event
		if err := db.First(&event, "id = ?", eventID).Error; err != nil {
			return err
		}

		ids, err := decodeRegisteredUsers(event.RegisteredUsers)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if id == userID {
				return errAlreadyRegistered
			}
		}
		if event.MaxParticipants > 0 && event.RegisteredCount >= event.MaxParticipants {
			return errEventFull
		}

		raw, err := encodeRegisteredUsers(append(ids, userID))
		if err != nil {
			return err
		}

		res := db.Model(&models.Event{}).
			Where("id = ? AND registered_count = ? AND registered_count < max_participants",
				event.ID, event.RegisteredCount).
			Updates(map[string]interface{}{
				"registered_users": raw,
				"registered_count": gorm.Expr("registered_count + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}
	}
	return errRegistrationContention
}

// removeEventRegistration is the mirror operation, guarded the same way.
func removeEventRegistration(db *gorm.DB, eventID string, userID uint) error {
	for i := 0; i < registrationRetries; i++ {
		var event models.Event
		if err := db.First(&event, "id = ?", eventID).Error; err != nil {
			return err
		}

		ids, err := decodeRegisteredUsers(event.RegisteredUsers)
		if err != nil {
			return err
		}

		kept := make([]uint, 0, len(ids))
		found := false
		for _, id := range ids {
			if id == userID {
				found = true
				continue
			}
			kept = append(kept, id)
		}
		if !found {
			return errNotRegistered
		}

		raw, err := encodeRegisteredUsers(kept)
		if err != nil {
			return err
		}

		res := db.Model(&models.Event{}).
			Where("id = ? AND registered_count = ? AND registered_count > 0",
				event.ID, event.RegisteredCount).
			Updates(map[string]interface{}{
				"registered_users": raw,
				"registered_count": gorm.Expr("registered_count - 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}
	}
	return errRegistrationContention
}

func RegisterForEvent(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	err := addEventRegistration(config.DB, c.Param("id"), user.ID)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Registered for event successfully")
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.eventNotFound", "Event not found")
	case errors.Is(err, errAlreadyRegistered):
		utils.JSONError(c, http.StatusConflict, "error.alreadyRegistered", "You are already registered for this event")
	case errors.Is(err, errEventFull):
		utils.JSONError(c, http.StatusConflict, "error.eventFull", "Event has reached maximum participants")
	case errors.Is(err, errRegistrationContention):
		utils.JSONError(c, http.StatusConflict, "error.registrationBusy", "Registration is busy, please retry")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}

func UnregisterFromEvent(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	err := removeEventRegistration(config.DB, c.Param("id"), user.ID)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Unregistered from event successfully")
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.eventNotFound", "Event not found")
	case errors.Is(err, errNotRegistered):
		utils.JSONError(c, http.StatusBadRequest, "error.notRegistered", "You are not registered for this event")
	case errors.Is(err, errRegistrationContention):
		utils.JSONError(c, http.StatusConflict, "error.registrationBusy", "Registration is busy, please retry")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}

// GetMyRegisteredEvents filters in Go rather than in SQL so the JSON
// column query stays portable across drivers.
func GetMyRegisteredEvents(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var events []models.Event
	if err := config.DB.Find(&events).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	mine := make([]models.Event, 0)
	for _, event := range events {
		ids, err := decodeRegisteredUsers(event.RegisteredUsers)
		if err != nil {
			continue
		}
		for _, id := range ids {
			if id == user.ID {
				mine = append(mine, event)
				break
			}
		}
	}

	utils.JSONSuccess(c, http.StatusOK, mine, "Registered events fetched successfully")
}

// GetEventParticipants returns the users registered for an event.
func GetEventParticipants(c *gin.Context) {
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

	users := make([]models.User, 0)
	if len(ids) > 0 {
		if err := config.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
			return
		}
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"count":        len(ids),
		"participants": users,
	}, "Event participants fetched successfully")
}
