// services/service_test.go
package services

import (
	"path/filepath"
	"testing"

	"eventix-backend/config"
	"eventix-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database and runs the full migration.
// A file-backed database (not :memory:) so concurrent connections see the
// same data.
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

func createTestStaff(t *testing.T, db *gorm.DB) *models.Staff {
	t.Helper()

	staff := &models.Staff{
		Name:     "Test Advisor",
		Email:    "advisor@campus.edu",
		IsActive: true,
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "irrelevant-hash",
		UserType: "USER",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestEvent(t *testing.T, db *gorm.DB, title string) *models.Event {
	t.Helper()

	event := &models.Event{
		Title:            title,
		Description:      "A test event",
		Mode:             "OFFLINE",
		Date:             "2026-09-15",
		StartTime:        "10:00",
		EndTime:          "17:00",
		RegistrationLink: "https://example.com/register/" + title,
		MaxParticipants:  100,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}
