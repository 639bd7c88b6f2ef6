// services/appointment_service_test.go
package services

import (
	"sync"
	"testing"

	"eventix-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSlot(t *testing.T, svc *AppointmentService, staffID uint, maxBookings int) *models.TimeSlot {
	t.Helper()

	slot, err := svc.CreateTimeSlot(staffID, CreateTimeSlotInput{
		Date:        "2026-09-10",
		StartTime:   "14:00",
		EndTime:     "14:30",
		Location:    "Room 101",
		MaxBookings: maxBookings,
	})
	require.NoError(t, err)
	return slot
}

func bookInput(slot *models.TimeSlot) BookAppointmentInput {
	return BookAppointmentInput{
		TimeSlotID: slot.ID,
		StaffID:    slot.StaffID,
		UserName:   "Alice",
		UserEmail:  "alice@campus.edu",
		Purpose:    "Project discussion",
	}
}

func TestBookAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	staff := createTestStaff(t, db)
	user := createTestUser(t, db, "alice@campus.edu")
	slot := createTestSlot(t, svc, staff.ID, 3)

	appt, err := svc.Book(user.ID, bookInput(slot))
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentBooked, appt.Status)
	assert.NotEmpty(t, appt.ReferenceCode)

	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, slot.ID).Error)
	assert.Equal(t, 1, reloaded.CurrentBookings)
	assert.Equal(t, models.SlotAvailable, reloaded.Status, "slot with spare capacity stays open")
}

func TestBookAppointmentClosesSlotAtCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	staff := createTestStaff(t, db)
	user := createTestUser(t, db, "alice@campus.edu")
	slot := createTestSlot(t, svc, staff.ID, 2)

	_, err := svc.Book(user.ID, bookInput(slot))
	require.NoError(t, err)
	_, err = svc.Book(user.ID, bookInput(slot))
	require.NoError(t, err)

	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, slot.ID).Error)
	assert.Equal(t, 2, reloaded.CurrentBookings)
	assert.Equal(t, models.SlotBooked, reloaded.Status)

	_, err = svc.Book(user.ID, bookInput(slot))
	assert.ErrorIs(t, err, ErrSlotFull)

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	assert.EqualValues(t, 2, count, "rejected booking must not write an appointment")
}

func TestBookAppointmentUnknownSlot(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	user := createTestUser(t, db, "alice@campus.edu")

	_, err := svc.Book(user.ID, BookAppointmentInput{
		TimeSlotID: 9999,
		StaffID:    1,
		UserName:   "Alice",
		UserEmail:  "alice@campus.edu",
		Purpose:    "Project discussion",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestConcurrentBookingLastSeat(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	staff := createTestStaff(t, db)
	user := createTestUser(t, db, "alice@campus.edu")
	slot := createTestSlot(t, svc, staff.ID, 1)

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(user.ID, bookInput(slot))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one booking may take the last seat")

	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, slot.ID).Error)
	assert.Equal(t, 1, reloaded.CurrentBookings)
	assert.Equal(t, models.SlotBooked, reloaded.Status)
}

func TestCancelReopensSlot(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	staff := createTestStaff(t, db)
	user := createTestUser(t, db, "alice@campus.edu")
	slot := createTestSlot(t, svc, staff.ID, 1)

	appt, err := svc.Book(user.ID, bookInput(slot))
	require.NoError(t, err)

	var full models.TimeSlot
	require.NoError(t, db.First(&full, slot.ID).Error)
	require.Equal(t, models.SlotBooked, full.Status)

	require.NoError(t, svc.Cancel(appt.ID))

	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, slot.ID).Error)
	assert.Equal(t, 0, reloaded.CurrentBookings)
	assert.Equal(t, models.SlotAvailable, reloaded.Status)

	var cancelled models.Appointment
	require.NoError(t, db.First(&cancelled, appt.ID).Error)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)
}

func TestCancelTwiceReleasesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	staff := createTestStaff(t, db)
	user := createTestUser(t, db, "alice@campus.edu")
	slot := createTestSlot(t, svc, staff.ID, 2)

	first, err := svc.Book(user.ID, bookInput(slot))
	require.NoError(t, err)
	_, err = svc.Book(user.ID, bookInput(slot))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(first.ID))
	assert.ErrorIs(t, svc.Cancel(first.ID), ErrAppointmentCancelled)

	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, slot.ID).Error)
	assert.Equal(t, 1, reloaded.CurrentBookings, "second cancel must not release capacity again")
}

func TestCancelUnknownAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)

	assert.ErrorIs(t, svc.Cancel(4242), ErrAppointmentNotFound)
}

func TestUpdateStatusHasNoCapacityEffect(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	staff := createTestStaff(t, db)
	user := createTestUser(t, db, "alice@campus.edu")
	slot := createTestSlot(t, svc, staff.ID, 1)

	appt, err := svc.Book(user.ID, bookInput(slot))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(appt.ID, "COMPLETED", "went well")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", updated.Status)
	assert.Equal(t, "went well", updated.Notes)

	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, slot.ID).Error)
	assert.Equal(t, 1, reloaded.CurrentBookings)
	assert.Equal(t, models.SlotBooked, reloaded.Status)
}

func TestListAvailableSlotsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewAppointmentService(db)
	staff := createTestStaff(t, db)

	other := &models.Staff{Name: "Other Advisor", Email: "other@campus.edu", IsActive: true}
	require.NoError(t, db.Create(other).Error)

	createTestSlot(t, svc, staff.ID, 1)
	_, err := svc.CreateTimeSlot(other.ID, CreateTimeSlotInput{
		Date:      "2026-09-11",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	require.NoError(t, err)

	all, err := svc.ListAvailableSlots(0, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byStaff, err := svc.ListAvailableSlots(staff.ID, "")
	require.NoError(t, err)
	require.Len(t, byStaff, 1)
	assert.Equal(t, staff.ID, byStaff[0].StaffID)

	byDate, err := svc.ListAvailableSlots(0, "2026-09-11")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, other.ID, byDate[0].StaffID)
}
