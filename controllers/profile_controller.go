// controllers/profile_controller.go
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

type createProfilePayload struct {
	Name          string         `json:"name" binding:"required"`
	Username      string         `json:"username" binding:"required"`
	RollNo        string         `json:"roll_no"`
	EmailPersonal string         `json:"email_personal"`
	EmailCampus   string         `json:"email_campus"`
	Logo          string         `json:"logo"`
	Phone         string         `json:"phone"`
	University    string         `json:"university"`
	Location      string         `json:"location"`
	Course        string         `json:"course"`
	YearOfStudy   string         `json:"year_of_study"`
	Skills        datatypes.JSON `json:"skills"`
	Education     datatypes.JSON `json:"education"`
}

// updateProfilePayload lists the only fields a profile patch may touch.
// Pointer fields distinguish "absent" from "set to empty".
type updateProfilePayload struct {
	Name          *string         `json:"name"`
	Username      *string         `json:"username"`
	RollNo        *string         `json:"roll_no"`
	EmailPersonal *string         `json:"email_personal"`
	EmailCampus   *string         `json:"email_campus"`
	Logo          *string         `json:"logo"`
	Phone         *string         `json:"phone"`
	University    *string         `json:"university"`
	Location      *string         `json:"location"`
	Course        *string         `json:"course"`
	YearOfStudy   *string         `json:"year_of_study"`
	Skills        *datatypes.JSON `json:"skills"`
	Education     *datatypes.JSON `json:"education"`
}

func CreateProfile(c *gin.Context) {
	var payload createProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Name and username are required")
		return
	}

	user, _ := middleware.CurrentUser(c)

	var existing models.Profile
	if err := config.DB.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusConflict, "error.profileExists", "Profile already exists for this user")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	username := strings.TrimSpace(payload.Username)
	if err := config.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusConflict, "error.usernameTaken", "Username is already taken")
		return
	}

	profile := models.Profile{
		UserID:        user.ID,
		Name:          strings.TrimSpace(payload.Name),
		Username:      username,
		RollNo:        payload.RollNo,
		EmailPersonal: payload.EmailPersonal,
		EmailCampus:   payload.EmailCampus,
		Logo:          payload.Logo,
		Phone:         payload.Phone,
		University:    payload.University,
		Location:      payload.Location,
		Course:        payload.Course,
		YearOfStudy:   payload.YearOfStudy,
		Skills:        payload.Skills,
		Education:     payload.Education,
	}
	if err := config.DB.Create(&profile).Error; err != nil {
		if isDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusConflict, "error.usernameTaken", "Username is already taken")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to create profile")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, profile, "Profile created successfully")
}

func GetMyProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var profile models.Profile
	if err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.profileNotFound", "Profile not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, profile, "Profile fetched successfully")
}

func GetProfileByUsername(c *gin.Context) {
	username := c.Param("username")

	var profile models.Profile
	if err := config.DB.Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.profileNotFound", "Profile not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, profile, "Profile fetched successfully")
}

func UpdateProfile(c *gin.Context) {
	var payload updateProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Invalid profile payload")
		return
	}

	user, _ := middleware.CurrentUser(c)

	var profile models.Profile
	if err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.profileNotFound", "Profile not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if payload.Username != nil {
		username := strings.TrimSpace(*payload.Username)
		var taken models.Profile
		if err := config.DB.Where("username = ? AND user_id <> ?", username, user.ID).First(&taken).Error; err == nil {
			utils.JSONError(c, http.StatusConflict, "error.usernameTaken", "Username is already taken")
			return
		}
		updates["username"] = username
	}
	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.RollNo != nil {
		updates["roll_no"] = *payload.RollNo
	}
	if payload.EmailPersonal != nil {
		updates["email_personal"] = *payload.EmailPersonal
	}
	if payload.EmailCampus != nil {
		updates["email_campus"] = *payload.EmailCampus
	}
	if payload.Logo != nil {
		updates["logo"] = *payload.Logo
	}
	if payload.Phone != nil {
		updates["phone"] = *payload.Phone
	}
	if payload.University != nil {
		updates["university"] = *payload.University
	}
	if payload.Location != nil {
		updates["location"] = *payload.Location
	}
	if payload.Course != nil {
		updates["course"] = *payload.Course
	}
	if payload.YearOfStudy != nil {
		updates["year_of_study"] = *payload.YearOfStudy
	}
	if payload.Skills != nil {
		updates["skills"] = *payload.Skills
	}
	if payload.Education != nil {
		updates["education"] = *payload.Education
	}

	if len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "No updatable fields provided")
		return
	}

	if err := config.DB.Model(&profile).Updates(updates).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Failed to update profile")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, profile, "Profile updated successfully")
}

func DeleteProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	res := config.DB.Where("user_id = ?", user.ID).Delete(&models.Profile{})
	if res.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "error.profileNotFound", "Profile not found")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Profile deleted successfully")
}

func GetAllProfiles(c *gin.Context) {
	var profiles []models.Profile
	if err := config.DB.Order("created_at DESC").Find(&profiles).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profiles, "Profiles fetched successfully")
}
