package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-backend/models"
)

func seedGuests(t *testing.T, svc *GuestService, n int) []*models.Guest {
	t.Helper()
	guests := make([]*models.Guest, 0, n)
	for i := 0; i < n; i++ {
		guest, err := svc.Create(CreateGuestInput{FirstName: "Guest"})
		require.NoError(t, err)
		guests = append(guests, guest)
	}
	return guests
}

func TestDefaultEventFanOut(t *testing.T) {
	db := newTestDB(t)
	guests := NewGuestService(db)
	events := NewEventService(db)

	seedGuests(t, guests, 3)
	// A fourth guest brings a plus-one: 5 guest rows total
	_, err := guests.Create(CreateGuestInput{FirstName: "Plus", PlusOneAllowed: boolPtr(true)})
	require.NoError(t, err)

	event, err := events.Create(CreateEventInput{Name: "Welcome Dinner", IsDefault: boolPtr(true)})
	require.NoError(t, err)

	var count int64
	db.Model(&models.GuestEventInvite{}).Where("event_id = ?", event.ID).Count(&count)
	assert.EqualValues(t, 5, count, "one invite row per guest row, plus-ones included")
}

func TestFanOutIdempotent(t *testing.T) {
	db := newTestDB(t)
	guests := NewGuestService(db)
	events := NewEventService(db)

	seedGuests(t, guests, 3)

	event, err := events.Create(CreateEventInput{Name: "Ceremony"})
	require.NoError(t, err)

	// Toggling default twice must not duplicate invite rows
	_, err = events.Update(event.ID, UpdateEventInput{IsDefault: boolPtr(true)})
	require.NoError(t, err)
	_, err = events.Update(event.ID, UpdateEventInput{IsDefault: boolPtr(true)})
	require.NoError(t, err)
	_, err = events.Update(event.ID, UpdateEventInput{IsDefault: boolPtr(false)})
	require.NoError(t, err)
	_, err = events.Update(event.ID, UpdateEventInput{IsDefault: boolPtr(true)})
	require.NoError(t, err)

	var count int64
	db.Model(&models.GuestEventInvite{}).Where("event_id = ?", event.ID).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestNonDefaultEventNoFanOut(t *testing.T) {
	db := newTestDB(t)
	guests := NewGuestService(db)
	events := NewEventService(db)

	seedGuests(t, guests, 3)

	event, err := events.Create(CreateEventInput{Name: "Rehearsal"})
	require.NoError(t, err)

	var count int64
	db.Model(&models.GuestEventInvite{}).Where("event_id = ?", event.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDisplayOrderMonotonic(t *testing.T) {
	events := NewEventService(newTestDB(t))

	first, err := events.Create(CreateEventInput{Name: "A"})
	require.NoError(t, err)
	second, err := events.Create(CreateEventInput{Name: "B"})
	require.NoError(t, err)
	third, err := events.Create(CreateEventInput{Name: "C"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.DisplayOrder)
	assert.Equal(t, 2, second.DisplayOrder)
	assert.Equal(t, 3, third.DisplayOrder)
}

func TestInviteGuestsExplicitAndIdempotent(t *testing.T) {
	db := newTestDB(t)
	guests := NewGuestService(db)
	events := NewEventService(db)

	seeded := seedGuests(t, guests, 2)
	event, err := events.Create(CreateEventInput{Name: "Brunch"})
	require.NoError(t, err)

	ids := []uuid.UUID{seeded[0].ID, seeded[1].ID}
	require.NoError(t, events.InviteGuests(event.ID, ids))
	require.NoError(t, events.InviteGuests(event.ID, ids))

	var count int64
	db.Model(&models.GuestEventInvite{}).Where("event_id = ?", event.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestInviteGuestsUnknownGuest(t *testing.T) {
	events := NewEventService(newTestDB(t))

	event, err := events.Create(CreateEventInput{Name: "Brunch"})
	require.NoError(t, err)

	err = events.InviteGuests(event.ID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestEventRSVPRequiresInvite(t *testing.T) {
	db := newTestDB(t)
	guests := NewGuestService(db)
	events := NewEventService(db)

	guest, err := guests.Create(CreateGuestInput{FirstName: "John"})
	require.NoError(t, err)

	nonDefault, err := events.Create(CreateEventInput{Name: "After Party"})
	require.NoError(t, err)

	_, err = events.RSVPToEvent(nonDefault.ID, guest.ID, models.RSVPYes)
	assert.ErrorIs(t, err, ErrNotInvited)

	// A default event materializes the row on the spot
	defaultEvent, err := events.Create(CreateEventInput{Name: "Ceremony", IsDefault: boolPtr(true)})
	require.NoError(t, err)

	late, err := guests.Create(CreateGuestInput{FirstName: "Late"})
	require.NoError(t, err)

	invite, err := events.RSVPToEvent(defaultEvent.ID, late.ID, models.RSVPYes)
	require.NoError(t, err)
	assert.Equal(t, models.RSVPYes, invite.RSVPStatus)
}

func TestEventCountsDualRule(t *testing.T) {
	db := newTestDB(t)
	guests := NewGuestService(db)
	events := NewEventService(db)

	a, err := guests.Create(CreateGuestInput{FirstName: "A"})
	require.NoError(t, err)
	b, err := guests.Create(CreateGuestInput{FirstName: "B"})
	require.NoError(t, err)
	_, err = guests.Update(a.ID, UpdateGuestInput{RSVPStatus: strPtr(models.RSVPYes)})
	require.NoError(t, err)
	_, err = guests.Update(b.ID, UpdateGuestInput{RSVPStatus: strPtr(models.RSVPNo)})
	require.NoError(t, err)

	// Default events proxy the main wedding RSVP
	defaultEvent, err := events.Create(CreateEventInput{Name: "Ceremony", IsDefault: boolPtr(true)})
	require.NoError(t, err)
	counts, err := events.Counts(defaultEvent)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.InviteCount)
	assert.EqualValues(t, 1, counts.ConfirmedCount)
	assert.EqualValues(t, 1, counts.DeclinedCount)
	assert.EqualValues(t, 0, counts.PendingCount)

	// Non-default events track their own invite responses
	party, err := events.Create(CreateEventInput{Name: "After Party"})
	require.NoError(t, err)
	require.NoError(t, events.InviteGuests(party.ID, []uuid.UUID{a.ID, b.ID}))
	_, err = events.RSVPToEvent(party.ID, a.ID, models.RSVPNo)
	require.NoError(t, err)

	counts, err = events.Counts(party)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.InviteCount)
	assert.EqualValues(t, 0, counts.ConfirmedCount)
	assert.EqualValues(t, 1, counts.DeclinedCount)
	assert.EqualValues(t, 1, counts.PendingCount)
}

func TestDeleteEventCascadesInvites(t *testing.T) {
	db := newTestDB(t)
	guests := NewGuestService(db)
	events := NewEventService(db)

	seedGuests(t, guests, 2)
	event, err := events.Create(CreateEventInput{Name: "Ceremony", IsDefault: boolPtr(true)})
	require.NoError(t, err)

	require.NoError(t, events.Delete(event.ID))

	var count int64
	db.Model(&models.GuestEventInvite{}).Count(&count)
	assert.Zero(t, count)

	_, err = events.GetByID(event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
