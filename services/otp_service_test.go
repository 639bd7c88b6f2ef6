// services/otp_service_test.go
package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"eventix-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestOTPService(t *testing.T, db *gorm.DB) (*OTPService, *[]string) {
	t.Helper()

	codes := &[]string{}
	svc := NewOTPService(db)
	svc.SendCode = func(recipient, code string) error {
		*codes = append(*codes, code)
		return nil
	}
	return svc, codes
}

func TestSendAndVerifyOTP(t *testing.T) {
	db := newTestDB(t)
	svc, codes := newTestOTPService(t, db)

	require.NoError(t, svc.SendOTP("advisor@campus.edu", "Dr. Advisor"))
	require.Len(t, *codes, 1)
	assert.Len(t, (*codes)[0], 6)

	staff, err := svc.VerifyOTP("advisor@campus.edu", (*codes)[0])
	require.NoError(t, err)
	assert.Equal(t, "Dr. Advisor", staff.Name)
	assert.Equal(t, "advisor@campus.edu", staff.Email)
	assert.True(t, staff.IsActive)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestOTPService(t, db)

	require.NoError(t, svc.SendOTP("advisor@campus.edu", ""))

	_, err := svc.VerifyOTP("advisor@campus.edu", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTPConsumesCode(t *testing.T) {
	db := newTestDB(t)
	svc, codes := newTestOTPService(t, db)

	require.NoError(t, svc.SendOTP("advisor@campus.edu", ""))

	_, err := svc.VerifyOTP("advisor@campus.edu", (*codes)[0])
	require.NoError(t, err)

	_, err = svc.VerifyOTP("advisor@campus.edu", (*codes)[0])
	assert.ErrorIs(t, err, ErrInvalidOTP, "a verified code cannot be replayed")
}

func TestVerifyOTPConcurrentSingleWinner(t *testing.T) {
	db := newTestDB(t)
	svc, codes := newTestOTPService(t, db)

	require.NoError(t, svc.SendOTP("advisor@campus.edu", ""))

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.VerifyOTP("advisor@campus.edu", (*codes)[0])
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "a code is consumed exactly once")
}

func TestVerifyOTPExpired(t *testing.T) {
	db := newTestDB(t)
	svc, codes := newTestOTPService(t, db)

	require.NoError(t, svc.SendOTP("advisor@campus.edu", ""))
	require.NoError(t, db.Model(&models.StaffOTP{}).
		Where("email = ?", "advisor@campus.edu").
		Updates(map[string]interface{}{"expires_at": time.Now().UTC().Add(-time.Minute)}).Error)

	_, err := svc.VerifyOTP("advisor@campus.edu", (*codes)[0])
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestSendOTPMailFailureIsFatal(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestOTPService(t, db)
	svc.SendCode = func(recipient, code string) error {
		return errors.New("smtp down")
	}

	err := svc.SendOTP("advisor@campus.edu", "")
	assert.ErrorIs(t, err, ErrOTPDeliveryFault)
}

func TestSendOTPDomainRestriction(t *testing.T) {
	t.Setenv("ALLOWED_EMAIL_DOMAIN", "campus.edu")

	db := newTestDB(t)
	svc, _ := newTestOTPService(t, db)

	assert.ErrorIs(t, svc.SendOTP("someone@gmail.com", ""), ErrEmailNotAllowed)
	assert.NoError(t, svc.SendOTP("advisor@campus.edu", ""))
}

func TestVerifyOTPReusesExistingStaff(t *testing.T) {
	db := newTestDB(t)
	svc, codes := newTestOTPService(t, db)
	existing := createTestStaff(t, db)

	require.NoError(t, svc.SendOTP(existing.Email, "Another Name"))

	staff, err := svc.VerifyOTP(existing.Email, (*codes)[0])
	require.NoError(t, err)
	assert.Equal(t, existing.ID, staff.ID)
	assert.Equal(t, existing.Name, staff.Name, "repeat login must not overwrite the staff record")
}
