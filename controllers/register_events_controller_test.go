// controllers/register_events_controller_test.go
package controllers

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"eventix-backend/config"
	"eventix-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, config.Migrate(db))
	return db
}

func createCappedEvent(t *testing.T, db *gorm.DB, maxParticipants int) *models.Event {
	t.Helper()

	event := &models.Event{
		Title:            fmt.Sprintf("workshop-%d", maxParticipants),
		Description:      "A test event",
		Mode:             "OFFLINE",
		Date:             "2026-09-15",
		StartTime:        "10:00",
		RegistrationLink: fmt.Sprintf("https://example.com/register/%d", maxParticipants),
		MaxParticipants:  maxParticipants,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func registeredState(t *testing.T, db *gorm.DB, eventID uint) (int, []uint) {
	t.Helper()

	var event models.Event
	require.NoError(t, db.First(&event, eventID).Error)
	ids, err := decodeRegisteredUsers(event.RegisteredUsers)
	require.NoError(t, err)
	return event.RegisteredCount, ids
}

func TestAddEventRegistration(t *testing.T) {
	db := newTestDB(t)
	event := createCappedEvent(t, db, 3)
	eventID := fmt.Sprint(event.ID)

	require.NoError(t, addEventRegistration(db, eventID, 7))

	count, ids := registeredState(t, db, event.ID)
	assert.Equal(t, 1, count)
	assert.Equal(t, []uint{7}, ids)

	assert.ErrorIs(t, addEventRegistration(db, eventID, 7), errAlreadyRegistered)

	count, _ = registeredState(t, db, event.ID)
	assert.Equal(t, 1, count, "a rejected registration must not change the count")
}

func TestAddEventRegistrationCapacity(t *testing.T) {
	db := newTestDB(t)
	event := createCappedEvent(t, db, 2)
	eventID := fmt.Sprint(event.ID)

	require.NoError(t, addEventRegistration(db, eventID, 1))
	require.NoError(t, addEventRegistration(db, eventID, 2))
	assert.ErrorIs(t, addEventRegistration(db, eventID, 3), errEventFull)

	count, ids := registeredState(t, db, event.ID)
	assert.Equal(t, 2, count)
	assert.Len(t, ids, 2)
}

func TestAddEventRegistrationUnknownEvent(t *testing.T) {
	db := newTestDB(t)

	assert.ErrorIs(t, addEventRegistration(db, "9999", 1), gorm.ErrRecordNotFound)
}

func TestConcurrentEventRegistrationRespectsCapacity(t *testing.T) {
	db := newTestDB(t)
	event := createCappedEvent(t, db, 5)
	eventID := fmt.Sprint(event.ID)

	const contenders = 10
	errs := make([]error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = addEventRegistration(db, eventID, uint(i+1))
		}(i)
	}
	wg.Wait()

	wins, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case err == errEventFull:
			full++
		default:
			t.Errorf("unexpected registration error: %v", err)
		}
	}
	assert.Equal(t, 5, wins, "exactly max_participants registrations may succeed")
	assert.Equal(t, 5, full)

	count, ids := registeredState(t, db, event.ID)
	assert.Equal(t, 5, count)
	require.Len(t, ids, 5, "no registration may be silently lost or duplicated")
	seen := map[uint]bool{}
	for _, id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestRemoveEventRegistration(t *testing.T) {
	db := newTestDB(t)
	event := createCappedEvent(t, db, 2)
	eventID := fmt.Sprint(event.ID)

	require.NoError(t, addEventRegistration(db, eventID, 1))
	require.NoError(t, addEventRegistration(db, eventID, 2))

	require.NoError(t, removeEventRegistration(db, eventID, 1))

	count, ids := registeredState(t, db, event.ID)
	assert.Equal(t, 1, count)
	assert.Equal(t, []uint{2}, ids)

	assert.ErrorIs(t, removeEventRegistration(db, eventID, 1), errNotRegistered)

	// The freed seat is bookable again.
	require.NoError(t, addEventRegistration(db, eventID, 3))
}
