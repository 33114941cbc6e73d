package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-backend/models"
	"wedding-backend/utils"
)

func TestCreateGuestDefaults(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	guest, err := svc.Create(CreateGuestInput{
		FirstName: "John",
		LastName:  strPtr("Smith"),
		Side:      strPtr("bride"),
		List:      strPtr("a"),
	})
	require.NoError(t, err)

	assert.Equal(t, "John", guest.FirstName)
	assert.Equal(t, models.RSVPPending, guest.RSVPStatus)
	assert.False(t, guest.IsPlusOne)
	assert.False(t, guest.PlusOneAllowed)
	assert.Equal(t, 0, guest.NumberOfResends)
	assert.True(t, utils.IsValidInviteCode(guest.InviteCode))
}

func TestCreateGuestRequiresFirstName(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	_, err := svc.Create(CreateGuestInput{FirstName: "   "})
	assert.ErrorIs(t, err, ErrFirstNameRequired)
}

func TestCreateGuestUniqueCodes(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	codes := make(map[string]bool)
	for i := 0; i < 20; i++ {
		guest, err := svc.Create(CreateGuestInput{FirstName: "Guest"})
		require.NoError(t, err)
		assert.False(t, codes[guest.InviteCode], "code %s issued twice", guest.InviteCode)
		codes[guest.InviteCode] = true
	}
}

func TestUpdateGuestClearsNullableFields(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	guest, err := svc.Create(CreateGuestInput{
		FirstName: "John",
		Email:     strPtr("john@example.com"),
		Notes:     strPtr("vegetarian cousin"),
	})
	require.NoError(t, err)
	require.NotNil(t, guest.Email)

	// Explicit empty clears; absent leaves unchanged
	updated, err := svc.Update(guest.ID, UpdateGuestInput{Email: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Email)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "vegetarian cousin", *updated.Notes)
}

func TestUpdateGuestNotFound(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	_, err := svc.Update(uuid.New(), UpdateGuestInput{FirstName: strPtr("Jane")})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestDeletePrimaryRemovesPlusOne(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	guest, err := svc.Create(CreateGuestInput{
		FirstName:      "John",
		PlusOneAllowed: boolPtr(true),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(guest.ID))

	var count int64
	db.Model(&models.Guest{}).Count(&count)
	assert.Zero(t, count, "no orphaned plus-one rows")
}

func TestGetPartyCaseInsensitive(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	guest, err := svc.Create(CreateGuestInput{FirstName: "John"})
	require.NoError(t, err)

	padded, err := svc.GetParty("  " + guest.InviteCode + " ")
	require.NoError(t, err)
	assert.Equal(t, guest.ID, padded.Primary.ID)

	mixed, err := svc.GetParty(toLowerCode(guest.InviteCode))
	require.NoError(t, err)
	assert.Equal(t, guest.ID, mixed.Primary.ID)
}

func TestGetPartyUnknownCode(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	_, err := svc.GetParty("ZZZZ-9999")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	_, err = svc.GetParty("not a code")
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func toLowerCode(code string) string {
	b := []byte(code)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
