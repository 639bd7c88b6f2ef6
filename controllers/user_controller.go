// controllers/user_controller.go
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
	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// isDuplicateKeyError detects a unique-index violation. The existence
// pre-checks in the create handlers give friendly messages, but two
// requests racing on the same email or title both pass the check and the
// loser fails on the index; that failure maps to Conflict, not Internal.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate entry") || strings.Contains(lower, "unique constraint")
}

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordPayload struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type updateAccountPayload struct {
	Name string `json:"name" binding:"required"`
}

const authCookieMaxAge = 10 * 24 * 60 * 60 // 10 days, matches refresh TTL

func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	secure := utils.EnvOrDefault("APP_ENV", "development") == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", accessToken, authCookieMaxAge, "/", "", secure, true)
	c.SetCookie("refreshToken", refreshToken, authCookieMaxAge, "/", "", secure, true)
}

func clearAuthCookies(c *gin.Context) {
	secure := utils.EnvOrDefault("APP_ENV", "development") == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", "", -1, "/", "", secure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", secure, true)
}

func issueUserTokens(user *models.User) (string, string, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	if err := config.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"refresh_token": refreshToken}).Error; err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// RegisterUser creates an account. Emails on the configured admin allowlist
// come out as ADMIN accounts; the optional campus-domain restriction also
// comes from config.
func RegisterUser(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Name, email, and password are required")
		return
	}

	name := strings.TrimSpace(payload.Name)
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	password := strings.TrimSpace(payload.Password)
	if name == "" || email == "" || password == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Name, email, and password cannot be empty")
		return
	}

	if !config.EmailDomainAllowed(email) {
		utils.JSONError(c, http.StatusUnauthorized, "error.emailDomainNotAllowed", "Please use your campus email address")
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusConflict, "error.userExists", "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to hash password")
		return
	}

	userType := "USER"
	if config.IsAdminEmail(email) {
		userType = "ADMIN"
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		UserType: userType,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusConflict, "error.userExists", "User with this email already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to create user")
		return
	}

	accessToken, refreshToken, err := issueUserTokens(&user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to generate tokens")
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User registered successfully")
}

func LoginUser(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.userNotFound", "User does not exist")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", "Invalid credentials")
		return
	}

	accessToken, refreshToken, err := issueUserTokens(&user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to generate tokens")
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User logged in successfully")
}

func LogoutUser(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"refresh_token": nil}).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	clearAuthCookies(c)
	utils.JSONSuccess(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

// RefreshAccessToken rotates the refresh token. The incoming token must
// match the one stored for the account.
func RefreshAccessToken(c *gin.Context) {
	incoming, _ := c.Cookie("refreshToken")
	if incoming == "" {
		var payload refreshPayload
		_ = c.ShouldBindJSON(&payload)
		incoming = payload.RefreshToken
	}
	if incoming == "" {
		utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "Unauthorized request")
		return
	}

	claims, err := utils.VerifyRefreshToken(incoming)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "Invalid refresh token")
		return
	}

	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "Invalid refresh token")
		return
	}

	if user.RefreshToken == nil || *user.RefreshToken != incoming {
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "Refresh token is expired or used")
		return
	}

	accessToken, refreshToken, err := issueUserTokens(&user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to generate tokens")
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed")
}

func GetCurrentUser(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	utils.JSONSuccess(c, http.StatusOK, user, "Current user fetched successfully")
}

func ChangeCurrentPassword(c *gin.Context) {
	var payload changePasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Old password and new password are required")
		return
	}

	user, _ := middleware.CurrentUser(c)

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.OldPassword)) != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPassword", "Invalid old password")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to hash password")
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"password": string(hash)}).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func UpdateAccountDetails(c *gin.Context) {
	var payload updateAccountPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Name is required")
		return
	}

	user, _ := middleware.CurrentUser(c)

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"name": strings.TrimSpace(payload.Name)}).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	var updated models.User
	if err := config.DB.First(&updated, user.ID).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, updated, "Account details updated successfully")
}

func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users, "All users fetched successfully")
}
