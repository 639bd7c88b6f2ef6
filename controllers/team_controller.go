// controllers/team_controller.go
package controllers

import (
	"errors"
	"net/http"

	"eventix-backend/middleware"
	"eventix-backend/services"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	Service *services.TeamService
}

func NewTeamController(service *services.TeamService) *TeamController {
	return &TeamController{Service: service}
}

type createTeamPayload struct {
	EventID    uint                       `json:"event_id" binding:"required"`
	EventTitle string                     `json:"event_title" binding:"required"`
	TeamSize   int                        `json:"team_size" binding:"required"`
	Members    []services.TeamMemberInput `json:"members" binding:"required"`
}

// RegisterTeam creates the registration and mails every member a one-time
// confirmation link.
func (ctl *TeamController) RegisterTeam(c *gin.Context) {
	var payload createTeamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Event, team size, and members are required")
		return
	}

	user, _ := middleware.CurrentUser(c)

	registration, err := ctl.Service.CreateRegistration(services.Leader{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, services.CreateTeamRegistrationInput{
		EventID:    payload.EventID,
		EventTitle: payload.EventTitle,
		TeamSize:   payload.TeamSize,
		Members:    payload.Members,
	})

	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusCreated, registration, "Team registered successfully, confirmation emails sent")
	case errors.Is(err, services.ErrEventNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.eventNotFound", "Event not found")
	default:
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
	}
}

// ConfirmMembership consumes the emailed token. The route is public: the
// token itself is the credential.
func (ctl *TeamController) ConfirmMembership(c *gin.Context) {
	err := ctl.Service.Confirm(c.Param("token"))

	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Team membership confirmed successfully")
	case errors.Is(err, services.ErrTokenExpired):
		utils.JSONError(c, http.StatusGone, "error.tokenExpired", "Confirmation link has expired")
	case errors.Is(err, services.ErrInvalidToken):
		utils.JSONError(c, http.StatusBadRequest, "error.invalidToken", "Confirmation link is invalid or already used")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}

func (ctl *TeamController) GetTeamRegistration(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	registration, err := ctl.Service.GetRegistration(id)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, registration, "Team registration fetched successfully")
	case errors.Is(err, services.ErrRegistrationNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.registrationNotFound", "Team registration not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}

func (ctl *TeamController) GetMyTeamRegistrations(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	registrations, err := ctl.Service.ListByLeader(user.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, registrations, "Team registrations fetched successfully")
}

func (ctl *TeamController) CancelTeamRegistration(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)

	err := ctl.Service.CancelRegistration(id, user.ID)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Team registration cancelled successfully")
	case errors.Is(err, services.ErrRegistrationNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.registrationNotFound", "Team registration not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}
