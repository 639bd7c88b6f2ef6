// controllers/staff_controller.go
package controllers

import (
	"errors"
	"net/http"

	"eventix-backend/config"
	"eventix-backend/middleware"
	"eventix-backend/models"
	"eventix-backend/services"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StaffController struct {
	OTP *services.OTPService
}

func NewStaffController(otp *services.OTPService) *StaffController {
	return &StaffController{OTP: otp}
}

type sendOTPPayload struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

type verifyOTPPayload struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type updateStaffPayload struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
	Bio         *string `json:"bio"`
	Avatar      *string `json:"avatar"`
}

func (ctl *StaffController) SendOTP(c *gin.Context) {
	var payload sendOTPPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Email is required")
		return
	}

	err := ctl.OTP.SendOTP(payload.Email, payload.Name)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, gin.H{}, "OTP sent successfully")
	case errors.Is(err, services.ErrEmailNotAllowed):
		utils.JSONError(c, http.StatusUnauthorized, "error.emailDomainNotAllowed", "Please use your campus email address")
	case errors.Is(err, services.ErrOTPDeliveryFault):
		utils.JSONError(c, http.StatusInternalServerError, "error.otpDelivery", "Failed to send OTP email")
	default:
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
	}
}

// VerifyOTP exchanges a valid code for staff JWTs. The staff record is
// created on first login.
func (ctl *StaffController) VerifyOTP(c *gin.Context) {
	var payload verifyOTPPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Email and code are required")
		return
	}

	staff, err := ctl.OTP.VerifyOTP(payload.Email, payload.Code)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidOTP):
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidOTP", "Invalid OTP")
		return
	case errors.Is(err, services.ErrOTPExpired):
		utils.JSONError(c, http.StatusUnauthorized, "error.otpExpired", "OTP has expired")
		return
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	accessToken, err := utils.GenerateAccessToken(staff.ID, staff.Email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to generate tokens")
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(staff.ID, staff.Email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to generate tokens")
		return
	}
	if err := config.DB.Model(&models.Staff{}).
		Where("id = ?", staff.ID).
		Updates(map[string]interface{}{"refresh_token": refreshToken}).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"staff":        staff,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Staff logged in successfully")
}

func (ctl *StaffController) LogoutStaff(c *gin.Context) {
	staff, _ := middleware.CurrentStaff(c)

	if err := config.DB.Model(&models.Staff{}).
		Where("id = ?", staff.ID).
		Updates(map[string]interface{}{"refresh_token": nil}).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	clearAuthCookies(c)
	utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Staff logged out successfully")
}

func (ctl *StaffController) GetCurrentStaff(c *gin.Context) {
	staff, _ := middleware.CurrentStaff(c)
	utils.JSONSuccess(c, http.StatusOK, staff, "Current staff fetched successfully")
}

// GetAllStaff lists active staff for the appointment booking UI.
func (ctl *StaffController) GetAllStaff(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.Where("is_active = ?", true).Order("name").Find(&staff).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, staff, "Staff fetched successfully")
}

func (ctl *StaffController) GetStaffByID(c *gin.Context) {
	var staff models.Staff
	if err := config.DB.First(&staff, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.staffNotFound", "Staff member not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, staff, "Staff member fetched successfully")
}

func (ctl *StaffController) UpdateStaffProfile(c *gin.Context) {
	var payload updateStaffPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Invalid staff payload")
		return
	}

	staff, _ := middleware.CurrentStaff(c)

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Phone != nil {
		updates["phone"] = *payload.Phone
	}
	if payload.Department != nil {
		updates["department"] = *payload.Department
	}
	if payload.Designation != nil {
		updates["designation"] = *payload.Designation
	}
	if payload.Bio != nil {
		updates["bio"] = *payload.Bio
	}
	if payload.Avatar != nil {
		updates["avatar"] = *payload.Avatar
	}

	if len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "No updatable fields provided")
		return
	}

	if err := config.DB.Model(&models.Staff{}).
		Where("id = ?", staff.ID).
		Updates(updates).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to update staff profile")
		return
	}

	var updated models.Staff
	if err := config.DB.First(&updated, staff.ID).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, updated, "Staff profile updated successfully")
}
