// services/otp_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eventix-backend/config"
	"eventix-backend/models"
	"eventix-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrInvalidOTP       = errors.New("invalid OTP")
	ErrOTPExpired       = errors.New("OTP expired")
	ErrEmailNotAllowed  = errors.New("email domain not allowed")
	ErrOTPDeliveryFault = errors.New("failed to send OTP email")
)

// OTPTTL is the staff login code lifetime.
const OTPTTL = 10 * time.Minute

// OTPService handles the staff OTP login flow. Unlike the team fan-out, a
// failed OTP email fails the whole request: a code nobody received is
// useless.
type OTPService struct {
	DB *gorm.DB

	SendCode func(recipient, code string) error
}

func NewOTPService(db *gorm.DB) *OTPService {
	return &OTPService{
		DB:       db,
		SendCode: utils.SendStaffOTPEmail,
	}
}

// SendOTP stores a fresh 6-digit code for the address and mails it.
func (s *OTPService) SendOTP(email, name string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if !config.EmailDomainAllowed(email) {
		return ErrEmailNotAllowed
	}

	code, err := utils.GenerateOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	record := models.StaffOTP{
		Email:     email,
		Name:      strings.TrimSpace(name),
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(OTPTTL),
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.SendCode(email, code); err != nil {
		return fmt.Errorf("%w: %v", ErrOTPDeliveryFault, err)
	}
	return nil
}

// VerifyOTP checks the latest code for the address, creates the staff record
// on first login, and deletes the address's codes once used. The whole
// exchange is one transaction; the delete of the matched row is the claim,
// so concurrent verifies of the same code resolve to exactly one winner.
func (s *OTPService) VerifyOTP(email, code string) (*models.Staff, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, errors.New("email and OTP are required")
	}

	var staff models.Staff
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var record models.StaffOTP
		if err := tx.
			Where("email = ? AND code = ?", email, code).
			Order("created_at DESC").
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidOTP
			}
			return fmt.Errorf("failed to look up OTP: %w", err)
		}

		if time.Now().UTC().After(record.ExpiresAt) {
			return ErrOTPExpired
		}

		res := tx.Where("id = ?", record.ID).Delete(&models.StaffOTP{})
		if res.Error != nil {
			return fmt.Errorf("failed to consume OTP: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidOTP
		}

		if err := tx.Where("email = ?", email).Delete(&models.StaffOTP{}).Error; err != nil {
			return fmt.Errorf("failed to clear OTP records: %w", err)
		}

		err := tx.Where("email = ?", email).First(&staff).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			name := record.Name
			if name == "" {
				name = "Staff Member"
			}
			staff = models.Staff{
				Name:        name,
				Email:       email,
				Department:  "General",
				Designation: "Staff",
				IsActive:    true,
			}
			if err := tx.Create(&staff).Error; err != nil {
				return fmt.Errorf("failed to create staff member: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to look up staff member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &staff, nil
}
