package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-backend/config"
)

func newSessionFixture(t *testing.T) (*SessionService, *GuestService) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.App{AdminEmails: []string{"admin@example.com"}}
	return NewSessionService(db, cfg), NewGuestService(db)
}

func TestResolveByCodeOnly(t *testing.T) {
	sessions, guests := newSessionFixture(t)

	guest, err := guests.Create(CreateGuestInput{FirstName: "John"})
	require.NoError(t, err)

	party, err := sessions.Resolve(nil, "", guest.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, guest.ID, party.PrimaryGuest.ID)
	assert.False(t, party.IsLoggedIn)
	assert.False(t, party.IsAdmin)
}

func TestResolveNothing(t *testing.T) {
	sessions, _ := newSessionFixture(t)

	party, err := sessions.Resolve(nil, "", "")
	require.NoError(t, err)
	assert.Nil(t, party)
}

func TestResolveLinkedAccountWins(t *testing.T) {
	sessions, guests := newSessionFixture(t)

	linked, err := guests.Create(CreateGuestInput{FirstName: "Linked"})
	require.NoError(t, err)
	other, err := guests.Create(CreateGuestInput{FirstName: "Other"})
	require.NoError(t, err)

	userID := uuid.New()
	_, err = sessions.LinkAccountToGuest(linked.InviteCode, userID, "linked@example.com")
	require.NoError(t, err)

	// Even with another party's code supplied, the linked guest wins
	party, err := sessions.Resolve(&userID, "linked@example.com", other.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, linked.ID, party.PrimaryGuest.ID)
	assert.True(t, party.IsLoggedIn)
}

func TestResolveEmailAutoLink(t *testing.T) {
	sessions, guests := newSessionFixture(t)

	guest, err := guests.Create(CreateGuestInput{
		FirstName: "John",
		Email:     strPtr("John@Example.com"),
	})
	require.NoError(t, err)

	userID := uuid.New()
	party, err := sessions.Resolve(&userID, "john@example.com", "")
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, guest.ID, party.PrimaryGuest.ID)

	// The link persisted: a second resolve without email still matches
	party, err = sessions.Resolve(&userID, "", "")
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, guest.ID, party.PrimaryGuest.ID)
}

func TestResolveAdminFlag(t *testing.T) {
	sessions, guests := newSessionFixture(t)

	guest, err := guests.Create(CreateGuestInput{FirstName: "John"})
	require.NoError(t, err)

	userID := uuid.New()
	party, err := sessions.Resolve(&userID, "ADMIN@example.com", guest.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.True(t, party.IsAdmin)
}

func TestLinkPrefersEmailMatch(t *testing.T) {
	sessions, guests := newSessionFixture(t)

	primary, err := guests.Create(CreateGuestInput{
		FirstName:        "John",
		Email:            strPtr("john@example.com"),
		PlusOneAllowed:   boolPtr(true),
		PlusOneFirstName: strPtr("Jane"),
	})
	require.NoError(t, err)

	// No email match falls back to the primary row
	userID := uuid.New()
	linked, err := sessions.LinkAccountToGuest(primary.InviteCode, userID, "someone@else.com")
	require.NoError(t, err)
	assert.Equal(t, primary.ID, linked.ID)

	party, err := guests.GetParty(primary.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party.Primary.UserID)
	assert.Equal(t, userID, *party.Primary.UserID)
}

func TestLinkConflicts(t *testing.T) {
	sessions, guests := newSessionFixture(t)

	guest, err := guests.Create(CreateGuestInput{FirstName: "John"})
	require.NoError(t, err)

	first := uuid.New()
	_, err = sessions.LinkAccountToGuest(guest.InviteCode, first, "a@example.com")
	require.NoError(t, err)

	// Relinking the same account is fine
	_, err = sessions.LinkAccountToGuest(guest.InviteCode, first, "a@example.com")
	require.NoError(t, err)

	// A different account is a conflict
	_, err = sessions.LinkAccountToGuest(guest.InviteCode, uuid.New(), "b@example.com")
	assert.ErrorIs(t, err, ErrAlreadyLinked)
}

func TestLinkUnknownCode(t *testing.T) {
	sessions, _ := newSessionFixture(t)

	_, err := sessions.LinkAccountToGuest("ZZZZ-9999", uuid.New(), "a@example.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	_, err = sessions.LinkAccountToGuest("nope", uuid.New(), "a@example.com")
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}
