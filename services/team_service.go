// services/team_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"eventix-backend/config"
	"eventix-backend/models"
	"eventix-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("team registration not found")
	ErrInvalidToken         = errors.New("invalid or used confirmation token")
	ErrTokenExpired         = errors.New("confirmation token expired")
)

// ConfirmationTokenTTL is how long a member has to follow the emailed link.
const ConfirmationTokenTTL = 7 * 24 * time.Hour

// TeamService runs the registration fan-out and one-time token confirmation
// workflow. The registration with all member and token rows is committed
// before any notification goes out, so a mail failure never loses state.
type TeamService struct {
	DB *gorm.DB

	// SendConfirmation dispatches the invitation mail; overridable in tests.
	SendConfirmation func(recipient, eventTitle, confirmLink string) error
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		DB:               db,
		SendConfirmation: utils.SendTeamConfirmationEmail,
	}
}

type TeamMemberInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type CreateTeamRegistrationInput struct {
	EventID    uint
	EventTitle string
	TeamSize   int
	Members    []TeamMemberInput
}

type Leader struct {
	ID    uint
	Email string
	Name  string
}

// CreateRegistration persists the registration, one PENDING member per
// entry, and one confirmation token per member, all in one transaction.
// Emails are sent afterwards, best-effort in member order.
func (s *TeamService) CreateRegistration(leader Leader, in CreateTeamRegistrationInput) (*models.TeamRegistration, error) {
	if in.EventID == 0 || strings.TrimSpace(in.EventTitle) == "" || in.TeamSize <= 0 || len(in.Members) == 0 {
		return nil, errors.New("all required fields must be provided")
	}

	var event models.Event
	if err := s.DB.Select("id").First(&event, in.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	registration := &models.TeamRegistration{
		EventID:     in.EventID,
		EventTitle:  strings.TrimSpace(in.EventTitle),
		LeaderID:    leader.ID,
		LeaderEmail: leader.Email,
		LeaderName:  leader.Name,
		TeamSize:    in.TeamSize,
		Status:      models.RegistrationActive,
	}

	type invitation struct {
		email string
		link  string
	}
	invitations := make([]invitation, 0, len(in.Members))

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(registration).Error; err != nil {
			return fmt.Errorf("failed to create team registration: %w", err)
		}

		for _, m := range in.Members {
			member := models.TeamMember{
				TeamRegistrationID: registration.ID,
				Email:              strings.TrimSpace(m.Email),
				Name:               strings.TrimSpace(m.Name),
				Status:             models.MemberPending,
			}
			if err := tx.Create(&member).Error; err != nil {
				return fmt.Errorf("failed to create team member: %w", err)
			}

			secret, expiresAt, err := utils.IssueToken(ConfirmationTokenTTL)
			if err != nil {
				return fmt.Errorf("failed to generate confirmation token: %w", err)
			}
			token := models.ConfirmationToken{
				Token:        secret,
				TeamMemberID: member.ID,
				ExpiresAt:    expiresAt,
			}
			if err := tx.Create(&token).Error; err != nil {
				return fmt.Errorf("failed to create confirmation token: %w", err)
			}

			invitations = append(invitations, invitation{
				email: member.Email,
				link:  utils.BuildTeamConfirmLink(config.FrontendURL(), secret),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// State is committed; notification failures are logged, never unwound.
	for _, inv := range invitations {
		if mailErr := s.SendConfirmation(inv.email, registration.EventTitle, inv.link); mailErr != nil {
			log.Printf("failed to send confirmation email to %s: %v", inv.email, mailErr)
		}
	}

	var out models.TeamRegistration
	if err := s.DB.Preload("Members").First(&out, registration.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload team registration: %w", err)
	}
	return &out, nil
}

// Confirm consumes a confirmation token exactly once and flips the owning
// member to CONFIRMED, both in one transaction. A token that is unknown or
// already used yields ErrInvalidToken; a known unused one past its expiry
// yields ErrTokenExpired.
func (s *TeamService) Confirm(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ErrInvalidToken
	}

	now := time.Now().UTC()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var token models.ConfirmationToken
		if err := tx.Where("token = ?", secret).First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidToken
			}
			return fmt.Errorf("failed to look up token: %w", err)
		}

		if token.UsedAt != nil {
			return ErrInvalidToken
		}
		if now.After(token.ExpiresAt) {
			return ErrTokenExpired
		}

		// Claim the token; the used_at IS NULL guard makes two concurrent
		// confirmations of the same secret resolve to exactly one winner.
		res := tx.Model(&models.ConfirmationToken{}).
			Where("id = ? AND used_at IS NULL", token.ID).
			Updates(map[string]interface{}{"used_at": now})
		if res.Error != nil {
			return fmt.Errorf("failed to consume token: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidToken
		}

		if err := tx.Model(&models.TeamMember{}).
			Where("id = ?", token.TeamMemberID).
			Updates(map[string]interface{}{
				"status":       models.MemberConfirmed,
				"confirmed_at": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to confirm team member: %w", err)
		}
		return nil
	})
}

// GetRegistration returns a registration with its members.
func (s *TeamService) GetRegistration(id uint) (*models.TeamRegistration, error) {
	var registration models.TeamRegistration
	if err := s.DB.Preload("Members").First(&registration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to load team registration: %w", err)
	}
	return &registration, nil
}

// ListByLeader returns the registrations a user created, newest first.
func (s *TeamService) ListByLeader(leaderID uint) ([]models.TeamRegistration, error) {
	var registrations []models.TeamRegistration
	if err := s.DB.
		Where("leader_id = ?", leaderID).
		Order("created_at DESC").
		Find(&registrations).Error; err != nil {
		return nil, fmt.Errorf("failed to list team registrations: %w", err)
	}
	return registrations, nil
}

// CancelRegistration marks a registration CANCELLED. Ownership is part of
// the lookup: a registration belonging to someone else reads as not found.
// Outstanding member tokens are left untouched.
func (s *TeamService) CancelRegistration(id, leaderID uint) error {
	var registration models.TeamRegistration
	if err := s.DB.
		Where("id = ? AND leader_id = ?", id, leaderID).
		First(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to load team registration: %w", err)
	}

	if err := s.DB.Model(&registration).
		Updates(map[string]interface{}{"status": models.RegistrationCancelled}).Error; err != nil {
		return fmt.Errorf("failed to cancel team registration: %w", err)
	}
	return nil
}
