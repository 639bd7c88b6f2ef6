package middleware

import (
	"net/http"
	"strings"

	"eventix-backend/config"
	"eventix-backend/models"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	userContextKey  = "authUser"
	staffContextKey = "authStaff"
)

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}

// RequireUser authenticates the request against the users table and stashes
// the account in the context.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "Unauthorized request")
			c.Abort()
			return
		}

		claims, err := utils.VerifyAccessToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "Invalid access token")
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "Invalid access token")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.UserType != "ADMIN" {
			utils.JSONError(c, http.StatusForbidden, "error.forbidden", "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff authenticates the request against the staff table.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "Unauthorized request")
			c.Abort()
			return
		}

		claims, err := utils.VerifyAccessToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "Invalid access token")
			c.Abort()
			return
		}

		var staff models.Staff
		if err := config.DB.Where("id = ? AND email = ?", claims.UserID, claims.Email).First(&staff).Error; err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "Invalid access token")
			c.Abort()
			return
		}

		c.Set(staffContextKey, staff)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by RequireUser.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// CurrentStaff returns the authenticated staff member placed by RequireStaff.
func CurrentStaff(c *gin.Context) (models.Staff, bool) {
	v, ok := c.Get(staffContextKey)
	if !ok {
		return models.Staff{}, false
	}
	staff, ok := v.(models.Staff)
	return staff, ok
}
