// controllers/appointment_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"eventix-backend/middleware"
	"eventix-backend/services"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentController struct {
	Service *services.AppointmentService
}

func NewAppointmentController(service *services.AppointmentService) *AppointmentController {
	return &AppointmentController{Service: service}
}

type createTimeSlotPayload struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
	MaxBookings int    `json:"max_bookings"`
}

type bookAppointmentPayload struct {
	TimeSlotID uint   `json:"time_slot_id" binding:"required"`
	StaffID    uint   `json:"staff_id" binding:"required"`
	UserName   string `json:"user_name" binding:"required"`
	UserEmail  string `json:"user_email" binding:"required"`
	UserPhone  string `json:"user_phone"`
	Purpose    string `json:"purpose" binding:"required"`
}

type updateAppointmentStatusPayload struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidID", "Invalid id parameter")
		return 0, false
	}
	return uint(id), true
}

// CreateTimeSlot lets the authenticated staff member open a bookable slot.
func (ctl *AppointmentController) CreateTimeSlot(c *gin.Context) {
	var payload createTimeSlotPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Date, start time, and end time are required")
		return
	}

	staff, _ := middleware.CurrentStaff(c)

	slot, err := ctl.Service.CreateTimeSlot(staff.ID, services.CreateTimeSlotInput{
		Date:        payload.Date,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		Location:    payload.Location,
		Notes:       payload.Notes,
		MaxBookings: payload.MaxBookings,
	})
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, slot, "Time slot created successfully")
}

func (ctl *AppointmentController) GetMySlots(c *gin.Context) {
	staff, _ := middleware.CurrentStaff(c)

	slots, err := ctl.Service.ListStaffSlots(staff.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, slots, "Time slots fetched successfully")
}

// GetAvailableSlots is public to authenticated users; staff_id and date are
// optional query filters.
func (ctl *AppointmentController) GetAvailableSlots(c *gin.Context) {
	var staffID uint
	if raw := c.Query("staff_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidID", "Invalid staff_id filter")
			return
		}
		staffID = uint(parsed)
	}

	slots, err := ctl.Service.ListAvailableSlots(staffID, c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, slots, "Available slots fetched successfully")
}

func (ctl *AppointmentController) BookAppointment(c *gin.Context) {
	var payload bookAppointmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Slot, staff, name, email, and purpose are required")
		return
	}

	user, _ := middleware.CurrentUser(c)

	appt, err := ctl.Service.Book(user.ID, services.BookAppointmentInput{
		TimeSlotID: payload.TimeSlotID,
		StaffID:    payload.StaffID,
		UserName:   payload.UserName,
		UserEmail:  payload.UserEmail,
		UserPhone:  payload.UserPhone,
		Purpose:    payload.Purpose,
	})

	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusCreated, appt, "Appointment booked successfully")
	case errors.Is(err, services.ErrSlotNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.slotNotFound", "Time slot not found")
	case errors.Is(err, services.ErrSlotNotAvailable):
		utils.JSONError(c, http.StatusConflict, "error.slotNotAvailable", "Time slot is no longer available")
	case errors.Is(err, services.ErrSlotFull):
		utils.JSONError(c, http.StatusConflict, "error.slotFull", "Time slot is fully booked")
	default:
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
	}
}

func (ctl *AppointmentController) CancelAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := ctl.Service.Cancel(id)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, gin.H{}, "Appointment cancelled successfully")
	case errors.Is(err, services.ErrAppointmentNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.appointmentNotFound", "Appointment not found")
	case errors.Is(err, services.ErrAppointmentCancelled):
		utils.JSONError(c, http.StatusConflict, "error.appointmentCancelled", "Appointment is already cancelled")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}

func (ctl *AppointmentController) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload updateAppointmentStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Status is required")
		return
	}

	appt, err := ctl.Service.UpdateStatus(id, payload.Status, payload.Notes)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, appt, "Appointment status updated successfully")
	case errors.Is(err, services.ErrAppointmentNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.appointmentNotFound", "Appointment not found")
	default:
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
	}
}

func (ctl *AppointmentController) GetMyAppointments(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	appts, err := ctl.Service.ListUserAppointments(user.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appts, "Appointments fetched successfully")
}

func (ctl *AppointmentController) GetStaffAppointments(c *gin.Context) {
	staff, _ := middleware.CurrentStaff(c)

	appts, err := ctl.Service.ListStaffAppointments(staff.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appts, "Appointments fetched successfully")
}
