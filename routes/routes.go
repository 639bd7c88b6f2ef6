package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"eventix-backend/controllers"
	"eventix-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the route tree.
func SetupRouter(
	ac *controllers.AppointmentController,
	tc *controllers.TeamController,
	sc *controllers.StaffController,
	pc *controllers.PosterController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", controllers.RegisterUser)
			users.POST("/login", controllers.LoginUser)
			users.POST("/refresh-token", controllers.RefreshAccessToken)

			users.POST("/logout", middleware.RequireUser(), controllers.LogoutUser)
			users.GET("/current-user", middleware.RequireUser(), controllers.GetCurrentUser)
			users.POST("/change-password", middleware.RequireUser(), controllers.ChangeCurrentPassword)
			users.PATCH("/update-account", middleware.RequireUser(), controllers.UpdateAccountDetails)

			users.GET("", middleware.RequireUser(), middleware.RequireAdmin(), controllers.GetAllUsers)
		}

		profiles := api.Group("/profiles")
		{
			profiles.POST("", middleware.RequireUser(), controllers.CreateProfile)
			profiles.GET("/me", middleware.RequireUser(), controllers.GetMyProfile)
			profiles.PATCH("/me", middleware.RequireUser(), controllers.UpdateProfile)
			profiles.DELETE("/me", middleware.RequireUser(), controllers.DeleteProfile)

			profiles.GET("", middleware.RequireUser(), middleware.RequireAdmin(), controllers.GetAllProfiles)
			profiles.GET("/:username", controllers.GetProfileByUsername)
		}

		events := api.Group("/events")
		{
			events.GET("", controllers.GetAllEvents)
			events.GET("/search", controllers.SearchEvents)
			events.GET("/:id", controllers.GetEventByID)

			events.POST("", middleware.RequireUser(), middleware.RequireAdmin(), controllers.CreateEvent)
			events.PATCH("/:id", middleware.RequireUser(), middleware.RequireAdmin(), controllers.UpdateEvent)
			events.DELETE("/:id", middleware.RequireUser(), middleware.RequireAdmin(), controllers.DeleteEvent)

			events.POST("/:id/register", middleware.RequireUser(), controllers.RegisterForEvent)
			events.DELETE("/:id/register", middleware.RequireUser(), controllers.UnregisterFromEvent)
			events.GET("/:id/participants", middleware.RequireUser(), middleware.RequireAdmin(), controllers.GetEventParticipants)
			events.POST("/:id/reminders", middleware.RequireUser(), middleware.RequireAdmin(), controllers.SendEventReminders)

			events.GET("/registered/me", middleware.RequireUser(), controllers.GetMyRegisteredEvents)
		}

		teams := api.Group("/team")
		{
			// Token routes are public: the token itself is the credential.
			teams.GET("/confirm/:token", tc.ConfirmMembership)

			teams.POST("/register", middleware.RequireUser(), tc.RegisterTeam)
			teams.GET("/my-registrations", middleware.RequireUser(), tc.GetMyTeamRegistrations)
			teams.GET("/:id", middleware.RequireUser(), tc.GetTeamRegistration)
			teams.DELETE("/:id", middleware.RequireUser(), tc.CancelTeamRegistration)
		}

		staff := api.Group("/staff")
		{
			staff.POST("/send-otp", sc.SendOTP)
			staff.POST("/verify-otp", sc.VerifyOTP)

			staff.POST("/logout", middleware.RequireStaff(), sc.LogoutStaff)
			staff.GET("/me", middleware.RequireStaff(), sc.GetCurrentStaff)
			staff.PATCH("/me", middleware.RequireStaff(), sc.UpdateStaffProfile)

			staff.GET("", middleware.RequireUser(), sc.GetAllStaff)
			staff.GET("/:id", middleware.RequireUser(), sc.GetStaffByID)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("/slots", middleware.RequireStaff(), ac.CreateTimeSlot)
			appointments.GET("/slots/mine", middleware.RequireStaff(), ac.GetMySlots)
			appointments.GET("/slots/available", middleware.RequireUser(), ac.GetAvailableSlots)

			appointments.POST("", middleware.RequireUser(), ac.BookAppointment)
			appointments.GET("/mine", middleware.RequireUser(), ac.GetMyAppointments)
			appointments.DELETE("/:id", middleware.RequireUser(), ac.CancelAppointment)

			appointments.GET("/staff", middleware.RequireStaff(), ac.GetStaffAppointments)
			appointments.PATCH("/:id/status", middleware.RequireStaff(), ac.UpdateAppointmentStatus)
		}

		organisers := api.Group("/organisers")
		{
			organisers.POST("/request", controllers.RequestClubAccount)

			organisers.GET("/pending", middleware.RequireUser(), middleware.RequireAdmin(), controllers.GetPendingClubRequests)
			organisers.POST("/:id/approve", middleware.RequireUser(), middleware.RequireAdmin(), controllers.ApproveClubRequest)
			organisers.POST("/:id/reject", middleware.RequireUser(), middleware.RequireAdmin(), controllers.RejectClubRequest)
		}

		email := api.Group("/email")
		{
			email.POST("/send", middleware.RequireUser(), middleware.RequireAdmin(), controllers.SendCustomEmail)
		}

		poster := api.Group("/poster")
		{
			poster.POST("/suggestions", middleware.RequireUser(), pc.GeneratePosterSuggestions)
			poster.POST("/taglines", middleware.RequireUser(), pc.GenerateTaglines)
		}
	}

	return r
}
