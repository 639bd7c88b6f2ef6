// controllers/organiser_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"eventix-backend/config"
	"eventix-backend/models"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type clubRequestPayload struct {
	ClubName    string `json:"club_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	Password    string `json:"password" binding:"required"`
}

// RequestClubAccount queues an organiser sign-up for admin review. The
// password is hashed up front so the plaintext never reaches a table.
func RequestClubAccount(c *gin.Context) {
	var payload clubRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Club name, email, and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	var existingUser models.User
	if err := config.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		utils.JSONError(c, http.StatusConflict, "error.userExists", "An account with this email already exists")
		return
	}

	var existing models.PendingClub
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusConflict, "error.requestExists", "A request for this email is already pending")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to hash password")
		return
	}

	pending := models.PendingClub{
		ClubName:    strings.TrimSpace(payload.ClubName),
		Email:       email,
		Phone:       payload.Phone,
		Description: payload.Description,
		Password:    string(hash),
		Status:      "pending",
	}
	if err := config.DB.Create(&pending).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to create club request")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, pending, "Club account request submitted for approval")
}

func GetPendingClubRequests(c *gin.Context) {
	var pending []models.PendingClub
	if err := config.DB.Where("status = ?", "pending").Order("created_at").Find(&pending).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pending, "Pending club requests fetched successfully")
}

// ApproveClubRequest turns a pending request into a CLUB user. Both writes
// run in one transaction so an approval cannot half-apply.
func ApproveClubRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var club models.User
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var pending models.PendingClub
		if err := tx.Where("id = ? AND status = ?", id, "pending").First(&pending).Error; err != nil {
			return err
		}

		club = models.User{
			Name:     pending.ClubName,
			Email:    pending.Email,
			Password: pending.Password,
			UserType: "CLUB",
		}
		if err := tx.Create(&club).Error; err != nil {
			return err
		}

		return tx.Model(&pending).Updates(map[string]interface{}{"status": "approved"}).Error
	})

	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, club, "Club account approved successfully")
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.requestNotFound", "Pending club request not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}

func RejectClubRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res := config.DB.Model(&models.PendingClub{}).
		Where("id = ? AND status = ?", id, "pending").
		Updates(map[string]interface{}{"status": "rejected"})
	if res.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "error.requestNotFound", "Pending club request not found")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Club account request rejected")
}
