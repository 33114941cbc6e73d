package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-backend/models"
)

func TestPlusOneCreatedWithPlaceholderName(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	guest, err := svc.Create(CreateGuestInput{
		FirstName: "John",
		LastName:  strPtr("Smith"),
		Side:      strPtr("bride"),
		List:      strPtr("a"),
		Family:    boolPtr(true),
	})
	require.NoError(t, err)

	_, err = svc.Update(guest.ID, UpdateGuestInput{PlusOneAllowed: boolPtr(true)})
	require.NoError(t, err)

	party, err := svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party.PlusOne)

	plusOne := party.PlusOne
	assert.Equal(t, "John Smith", plusOne.FirstName)
	require.NotNil(t, plusOne.LastName)
	assert.Equal(t, "- Plus One", *plusOne.LastName)
	assert.True(t, plusOne.IsPlusOne)
	require.NotNil(t, plusOne.PrimaryGuestID)
	assert.Equal(t, guest.ID, *plusOne.PrimaryGuestID)
	assert.Equal(t, guest.InviteCode, plusOne.InviteCode)
	assert.Equal(t, models.RSVPPending, plusOne.RSVPStatus)
	assert.False(t, plusOne.PlusOneAllowed)
	assert.True(t, plusOne.Family)
	require.NotNil(t, plusOne.Side)
	assert.Equal(t, "bride", *plusOne.Side)
	assert.Nil(t, plusOne.Email)
}

func TestPlusOneExplicitName(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	guest, err := svc.Create(CreateGuestInput{FirstName: "John"})
	require.NoError(t, err)

	_, err = svc.Update(guest.ID, UpdateGuestInput{
		PlusOneAllowed:   boolPtr(true),
		PlusOneFirstName: strPtr("Jane"),
		PlusOneLastName:  strPtr("Doe"),
	})
	require.NoError(t, err)

	party, err := svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party.PlusOne)
	assert.Equal(t, "Jane", party.PlusOne.FirstName)
	require.NotNil(t, party.PlusOne.LastName)
	assert.Equal(t, "Doe", *party.PlusOne.LastName)
}

func TestPlusOneIdempotentToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	guest, err := svc.Create(CreateGuestInput{FirstName: "John"})
	require.NoError(t, err)

	_, err = svc.Update(guest.ID, UpdateGuestInput{PlusOneAllowed: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.Update(guest.ID, UpdateGuestInput{PlusOneAllowed: boolPtr(true)})
	require.NoError(t, err)

	var count int64
	db.Model(&models.Guest{}).Where("is_plus_one = ?", true).Count(&count)
	assert.EqualValues(t, 1, count, "toggling twice must not create a second plus-one")
}

func TestPlusOneRemoval(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	guest, err := svc.Create(CreateGuestInput{
		FirstName:      "John",
		PlusOneAllowed: boolPtr(true),
	})
	require.NoError(t, err)

	party, err := svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party.PlusOne)

	_, err = svc.Update(guest.ID, UpdateGuestInput{PlusOneAllowed: boolPtr(false)})
	require.NoError(t, err)

	party, err = svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	assert.Nil(t, party.PlusOne)
}

func TestPlusOneGroupingPropagation(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	guest, err := svc.Create(CreateGuestInput{
		FirstName:      "John",
		List:           strPtr("a"),
		PlusOneAllowed: boolPtr(true),
	})
	require.NoError(t, err)

	// An update that does not touch plus-one fields still syncs grouping
	_, err = svc.Update(guest.ID, UpdateGuestInput{
		List:   strPtr("b"),
		Family: boolPtr(true),
	})
	require.NoError(t, err)

	party, err := svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party.PlusOne)
	require.NotNil(t, party.PlusOne.List)
	assert.Equal(t, "b", *party.PlusOne.List)
	assert.True(t, party.PlusOne.Family)
}

func TestPlusOneRenameKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	guest, err := svc.Create(CreateGuestInput{
		FirstName:        "John",
		PlusOneAllowed:   boolPtr(true),
		PlusOneFirstName: strPtr("Jane"),
	})
	require.NoError(t, err)

	_, err = svc.Update(guest.ID, UpdateGuestInput{
		PlusOneAllowed:   boolPtr(true),
		PlusOneFirstName: strPtr("Janet"),
	})
	require.NoError(t, err)

	var plusOnes []models.Guest
	db.Where("is_plus_one = ?", true).Find(&plusOnes)
	require.Len(t, plusOnes, 1)
	assert.Equal(t, "Janet", plusOnes[0].FirstName)
	assert.Nil(t, plusOnes[0].LastName)
}

// The full lifecycle from the admin's point of view: create, allow a
// plus-one, name them, then take the plus-one away.
func TestPlusOneLifecycle(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	guest, err := svc.Create(CreateGuestInput{
		FirstName: "John",
		Side:      strPtr("bride"),
		List:      strPtr("a"),
	})
	require.NoError(t, err)

	party, err := svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	assert.Nil(t, party.PlusOne)
	assert.Equal(t, models.RSVPPending, party.Primary.RSVPStatus)

	_, err = svc.Update(guest.ID, UpdateGuestInput{PlusOneAllowed: boolPtr(true)})
	require.NoError(t, err)
	party, err = svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party.PlusOne)
	assert.Equal(t, "John", party.PlusOne.FirstName)
	require.NotNil(t, party.PlusOne.LastName)
	assert.Equal(t, "- Plus One", *party.PlusOne.LastName)

	_, err = svc.Update(guest.ID, UpdateGuestInput{
		PlusOneAllowed:   boolPtr(true),
		PlusOneFirstName: strPtr("Jane"),
	})
	require.NoError(t, err)
	party, err = svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	require.NotNil(t, party.PlusOne)
	assert.Equal(t, "Jane", party.PlusOne.FirstName)
	assert.Nil(t, party.PlusOne.LastName)

	_, err = svc.Update(guest.ID, UpdateGuestInput{PlusOneAllowed: boolPtr(false)})
	require.NoError(t, err)
	party, err = svc.GetParty(guest.InviteCode)
	require.NoError(t, err)
	assert.Nil(t, party.PlusOne)
}
