// services/appointment_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"eventix-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound         = errors.New("time slot not found")
	ErrSlotNotAvailable     = errors.New("time slot not available")
	ErrSlotFull             = errors.New("time slot is full")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentCancelled = errors.New("appointment already cancelled")
)

// AppointmentService owns time-slot capacity and appointment transitions.
// Each multi-step mutation runs in a single transaction and capacity checks
// are conditional updates, never read-then-write across round trips.
type AppointmentService struct {
	DB *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{DB: db}
}

type CreateTimeSlotInput struct {
	Date        string
	StartTime   string
	EndTime     string
	Location    string
	Notes       string
	MaxBookings int
}

// CreateTimeSlot registers a bookable interval for a staff member.
func (s *AppointmentService) CreateTimeSlot(staffID uint, in CreateTimeSlotInput) (*models.TimeSlot, error) {
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.EndTime) == "" {
		return nil, errors.New("date, start time, and end time are required")
	}
	if in.MaxBookings <= 0 {
		in.MaxBookings = 1
	}

	slot := &models.TimeSlot{
		StaffID:     staffID,
		Date:        strings.TrimSpace(in.Date),
		StartTime:   strings.TrimSpace(in.StartTime),
		EndTime:     strings.TrimSpace(in.EndTime),
		Location:    strings.TrimSpace(in.Location),
		Notes:       in.Notes,
		MaxBookings: in.MaxBookings,
		Status:      models.SlotAvailable,
	}
	if err := s.DB.Create(slot).Error; err != nil {
		return nil, fmt.Errorf("failed to create time slot: %w", err)
	}
	return slot, nil
}

// ListStaffSlots returns every slot a staff member offers.
func (s *AppointmentService) ListStaffSlots(staffID uint) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := s.DB.
		Where("staff_id = ?", staffID).
		Order("date, start_time").
		Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to list time slots: %w", err)
	}
	return slots, nil
}

// ListAvailableSlots returns open slots, optionally filtered by staff and date.
func (s *AppointmentService) ListAvailableSlots(staffID uint, date string) ([]models.TimeSlot, error) {
	q := s.DB.Where("status = ?", models.SlotAvailable)
	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var slots []models.TimeSlot
	if err := q.Order("date, start_time").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	return slots, nil
}

// reserveSlot takes one capacity unit. The increment is guarded by the
// WHERE clause so two reservations racing on the last seat cannot both
// succeed; the row stays locked until the surrounding transaction commits.
func reserveSlot(tx *gorm.DB, slotID uint) error {
	res := tx.Model(&models.TimeSlot{}).
		Where("id = ? AND status = ? AND current_bookings < max_bookings", slotID, models.SlotAvailable).
		Updates(map[string]interface{}{"current_bookings": gorm.Expr("current_bookings + 1")})
	if res.Error != nil {
		return fmt.Errorf("failed to reserve slot: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		var slot models.TimeSlot
		if err := tx.First(&slot, slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("failed to load slot: %w", err)
		}
		if slot.CurrentBookings >= slot.MaxBookings {
			return ErrSlotFull
		}
		return ErrSlotNotAvailable
	}

	// Close the slot when this reservation consumed the last seat.
	if err := tx.Model(&models.TimeSlot{}).
		Where("id = ? AND current_bookings >= max_bookings", slotID).
		Updates(map[string]interface{}{"status": models.SlotBooked}).Error; err != nil {
		return fmt.Errorf("failed to close slot: %w", err)
	}
	return nil
}

// releaseSlot returns one capacity unit (floored at zero) and reopens the
// slot. Reopening is unconditional: a cancellation always makes the slot
// AVAILABLE again.
func releaseSlot(tx *gorm.DB, slotID uint) error {
	if err := tx.Model(&models.TimeSlot{}).
		Where("id = ? AND current_bookings > 0", slotID).
		Updates(map[string]interface{}{"current_bookings": gorm.Expr("current_bookings - 1")}).Error; err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	if err := tx.Model(&models.TimeSlot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{"status": models.SlotAvailable}).Error; err != nil {
		return fmt.Errorf("failed to reopen slot: %w", err)
	}
	return nil
}

type BookAppointmentInput struct {
	TimeSlotID uint
	StaffID    uint
	UserName   string
	UserEmail  string
	UserPhone  string
	Purpose    string
}

// Book reserves a capacity unit on the slot and creates the appointment in
// one transaction. On ErrSlotNotFound / ErrSlotNotAvailable / ErrSlotFull no
// appointment record is written.
func (s *AppointmentService) Book(userID uint, in BookAppointmentInput) (*models.Appointment, error) {
	if in.TimeSlotID == 0 || in.StaffID == 0 ||
		strings.TrimSpace(in.UserName) == "" ||
		strings.TrimSpace(in.UserEmail) == "" ||
		strings.TrimSpace(in.Purpose) == "" {
		return nil, errors.New("all required fields must be provided")
	}

	appt := &models.Appointment{
		TimeSlotID:    in.TimeSlotID,
		StaffID:       in.StaffID,
		UserID:        userID,
		ReferenceCode: uuid.NewString(),
		UserName:      strings.TrimSpace(in.UserName),
		UserEmail:     strings.TrimSpace(in.UserEmail),
		UserPhone:     strings.TrimSpace(in.UserPhone),
		Purpose:       in.Purpose,
		Status:        models.AppointmentBooked,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := reserveSlot(tx, in.TimeSlotID); err != nil {
			return err
		}
		if err := tx.Create(appt).Error; err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel flips the appointment to CANCELLED and releases its capacity unit.
// The flip is conditional on the current status, so cancelling twice fails
// with ErrAppointmentCancelled instead of double-releasing the slot.
func (s *AppointmentService) Cancel(appointmentID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var appt models.Appointment
		if err := tx.First(&appt, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("failed to load appointment: %w", err)
		}

		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status <> ?", appointmentID, models.AppointmentCancelled).
			Updates(map[string]interface{}{"status": models.AppointmentCancelled})
		if res.Error != nil {
			return fmt.Errorf("failed to cancel appointment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAppointmentCancelled
		}

		return releaseSlot(tx, appt.TimeSlotID)
	})
}

// UpdateStatus is the staff-facing label editor: a plain field update with
// no capacity side effect, whatever the label.
func (s *AppointmentService) UpdateStatus(appointmentID uint, status, notes string) (*models.Appointment, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, errors.New("status is required")
	}

	res := s.DB.Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Updates(map[string]interface{}{"status": status, "notes": notes})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAppointmentNotFound
	}

	var appt models.Appointment
	if err := s.DB.First(&appt, appointmentID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload appointment: %w", err)
	}
	return &appt, nil
}

// ListUserAppointments returns a user's appointments with slot and staff
// details loaded.
func (s *AppointmentService) ListUserAppointments(userID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := s.DB.
		Preload("TimeSlot").
		Preload("Staff").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// ListStaffAppointments returns the appointments booked against a staff
// member's slots.
func (s *AppointmentService) ListStaffAppointments(staffID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := s.DB.
		Preload("TimeSlot").
		Where("staff_id = ?", staffID).
		Order("created_at DESC").
		Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}
