// services/team_service_test.go
package services

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"eventix-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	recipient string
	link      string
}

func newTestTeamService(t *testing.T, db *gorm.DB) (*TeamService, *[]sentMail) {
	t.Helper()

	sent := &[]sentMail{}
	svc := NewTeamService(db)
	svc.SendConfirmation = func(recipient, eventTitle, confirmLink string) error {
		*sent = append(*sent, sentMail{recipient: recipient, link: confirmLink})
		return nil
	}
	return svc, sent
}

func testLeader(user *models.User) Leader {
	return Leader{ID: user.ID, Email: user.Email, Name: user.Name}
}

func registrationInput(event *models.Event, members ...string) CreateTeamRegistrationInput {
	in := CreateTeamRegistrationInput{
		EventID:    event.ID,
		EventTitle: event.Title,
		TeamSize:   len(members) + 1,
	}
	for _, email := range members {
		in.Members = append(in.Members, TeamMemberInput{Email: email, Name: strings.Split(email, "@")[0]})
	}
	return in
}

func TestCreateRegistration(t *testing.T) {
	db := newTestDB(t)
	svc, sent := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	reg, err := svc.CreateRegistration(testLeader(leader), registrationInput(event,
		"m1@campus.edu", "m2@campus.edu", "m3@campus.edu"))
	require.NoError(t, err)

	assert.Equal(t, models.RegistrationActive, reg.Status)
	require.Len(t, reg.Members, 3)
	for _, m := range reg.Members {
		assert.Equal(t, models.MemberPending, m.Status)
		assert.Nil(t, m.ConfirmedAt)
	}

	// One distinct token per member, 64 hex chars each.
	var tokens []models.ConfirmationToken
	require.NoError(t, db.Find(&tokens).Error)
	require.Len(t, tokens, 3)
	seen := map[string]bool{}
	for _, tok := range tokens {
		assert.Len(t, tok.Token, 64)
		assert.False(t, seen[tok.Token], "tokens must be unique")
		seen[tok.Token] = true
		assert.Nil(t, tok.UsedAt)
		assert.WithinDuration(t, time.Now().Add(ConfirmationTokenTTL), tok.ExpiresAt, time.Minute)
	}

	// One mail per member, carrying that member's token link.
	require.Len(t, *sent, 3)
	for i, mail := range *sent {
		assert.Equal(t, reg.Members[i].Email, mail.recipient)
		assert.Contains(t, mail.link, "/team/confirm/")
	}
}

func TestCreateRegistrationUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")

	_, err := svc.CreateRegistration(testLeader(leader), CreateTeamRegistrationInput{
		EventID:    777,
		EventTitle: "ghost event",
		TeamSize:   2,
		Members:    []TeamMemberInput{{Email: "m1@campus.edu", Name: "m1"}},
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreateRegistrationMailFailureKeepsState(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	svc.SendConfirmation = func(recipient, eventTitle, confirmLink string) error {
		return errors.New("smtp down")
	}
	leader := createTestUser(t, db, "leader@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	reg, err := svc.CreateRegistration(testLeader(leader), registrationInput(event, "m1@campus.edu"))
	require.NoError(t, err, "mail failure after commit must not fail the registration")

	var count int64
	db.Model(&models.ConfirmationToken{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, models.RegistrationActive, reg.Status)
}

func memberToken(t *testing.T, db *gorm.DB, memberID uint) models.ConfirmationToken {
	t.Helper()

	var token models.ConfirmationToken
	require.NoError(t, db.Where("team_member_id = ?", memberID).First(&token).Error)
	return token
}

func TestConfirmFlipsOnlyOwningMember(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	reg, err := svc.CreateRegistration(testLeader(leader), registrationInput(event,
		"m1@campus.edu", "m2@campus.edu"))
	require.NoError(t, err)

	token := memberToken(t, db, reg.Members[1].ID)
	require.NoError(t, svc.Confirm(token.Token))

	reloaded, err := svc.GetRegistration(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MemberPending, reloaded.Members[0].Status)
	assert.Equal(t, models.MemberConfirmed, reloaded.Members[1].Status)
	assert.NotNil(t, reloaded.Members[1].ConfirmedAt)

	var used models.ConfirmationToken
	require.NoError(t, db.First(&used, token.ID).Error)
	assert.NotNil(t, used.UsedAt)
}

func TestConfirmTokenSingleUse(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	reg, err := svc.CreateRegistration(testLeader(leader), registrationInput(event, "m1@campus.edu"))
	require.NoError(t, err)

	token := memberToken(t, db, reg.Members[0].ID)
	require.NoError(t, svc.Confirm(token.Token))
	assert.ErrorIs(t, svc.Confirm(token.Token), ErrInvalidToken)
}

func TestConfirmConcurrentSingleWinner(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	reg, err := svc.CreateRegistration(testLeader(leader), registrationInput(event, "m1@campus.edu"))
	require.NoError(t, err)
	token := memberToken(t, db, reg.Members[0].ID)

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Confirm(token.Token)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "a token is consumed exactly once")
}

func TestConfirmUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)

	assert.ErrorIs(t, svc.Confirm("deadbeef"), ErrInvalidToken)
	assert.ErrorIs(t, svc.Confirm("   "), ErrInvalidToken)
}

func TestConfirmExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	reg, err := svc.CreateRegistration(testLeader(leader), registrationInput(event, "m1@campus.edu"))
	require.NoError(t, err)

	token := memberToken(t, db, reg.Members[0].ID)
	require.NoError(t, db.Model(&models.ConfirmationToken{}).
		Where("id = ?", token.ID).
		Updates(map[string]interface{}{"expires_at": time.Now().UTC().Add(-time.Minute)}).Error)

	assert.ErrorIs(t, svc.Confirm(token.Token), ErrTokenExpired)

	// An expired token stays unconsumed and the member stays PENDING.
	var reloaded models.ConfirmationToken
	require.NoError(t, db.First(&reloaded, token.ID).Error)
	assert.Nil(t, reloaded.UsedAt)
}

func TestCancelRegistrationOwnership(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")
	stranger := createTestUser(t, db, "stranger@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	reg, err := svc.CreateRegistration(testLeader(leader), registrationInput(event, "m1@campus.edu"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.CancelRegistration(reg.ID, stranger.ID), ErrRegistrationNotFound)
	require.NoError(t, svc.CancelRegistration(reg.ID, leader.ID))

	reloaded, err := svc.GetRegistration(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationCancelled, reloaded.Status)
}

func TestCancelRegistrationLeavesTokensValid(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	reg, err := svc.CreateRegistration(testLeader(leader), registrationInput(event, "m1@campus.edu"))
	require.NoError(t, err)
	require.NoError(t, svc.CancelRegistration(reg.ID, leader.ID))

	token := memberToken(t, db, reg.Members[0].ID)
	assert.NoError(t, svc.Confirm(token.Token), "cancelling a registration does not revoke outstanding tokens")
}

func TestListByLeader(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestTeamService(t, db)
	leader := createTestUser(t, db, "leader@campus.edu")
	other := createTestUser(t, db, "other@campus.edu")
	event := createTestEvent(t, db, "hackathon")

	_, err := svc.CreateRegistration(testLeader(leader), registrationInput(event, "m1@campus.edu"))
	require.NoError(t, err)
	_, err = svc.CreateRegistration(testLeader(other), registrationInput(event, "m2@campus.edu"))
	require.NoError(t, err)

	mine, err := svc.ListByLeader(leader.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, leader.ID, mine[0].LeaderID)
}
