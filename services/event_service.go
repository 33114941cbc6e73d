// services/event_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-backend/models"
)

// EventService owns events and their invite rows, including the fan-out that
// keeps every guest invited to every default event.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type CreateEventInput struct {
	Name            string     `json:"name" binding:"required"`
	Description     *string    `json:"description"`
	EventDate       *time.Time `json:"eventDate"`
	StartTime       *string    `json:"startTime"`
	EndTime         *string    `json:"endTime"`
	LocationName    *string    `json:"locationName"`
	LocationAddress *string    `json:"locationAddress"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	IsDefault       *bool      `json:"isDefault"`
}

type UpdateEventInput struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	EventDate       *time.Time `json:"eventDate"`
	StartTime       *string    `json:"startTime"`
	EndTime         *string    `json:"endTime"`
	LocationName    *string    `json:"locationName"`
	LocationAddress *string    `json:"locationAddress"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	IsDefault       *bool      `json:"isDefault"`
}

// EventCounts aggregates responses for one event. Default events proxy the
// main wedding RSVP, so their counts come from the guests' own rsvp_status;
// non-default events count their invite rows' rsvp_status.
type EventCounts struct {
	InviteCount    int64 `json:"inviteCount"`
	ConfirmedCount int64 `json:"confirmedCount"`
	DeclinedCount  int64 `json:"declinedCount"`
	PendingCount   int64 `json:"pendingCount"`
}

// Create inserts an event with the next display order. A default event fans
// out invite rows to every guest in the same transaction.
func (s *EventService) Create(input CreateEventInput) (*models.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEventNameRequired
	}

	event := models.Event{
		Name:            name,
		Description:     nullableString(input.Description),
		EventDate:       input.EventDate,
		StartTime:       nullableString(input.StartTime),
		EndTime:         nullableString(input.EndTime),
		LocationName:    nullableString(input.LocationName),
		LocationAddress: nullableString(input.LocationAddress),
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
	}
	if input.IsDefault != nil {
		event.IsDefault = *input.IsDefault
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int64
		if err := tx.Model(&models.Event{}).
			Select("COALESCE(MAX(display_order), 0)").Scan(&maxOrder).Error; err != nil {
			return err
		}
		event.DisplayOrder = int(maxOrder) + 1

		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if event.IsDefault {
			return s.fanOut(tx, event.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update merges the provided fields. Toggling a non-default event to default
// triggers the fan-out; toggling back does not delete existing invite rows.
func (s *EventService) Update(id uuid.UUID, input UpdateEventInput) (*models.Event, error) {
	event, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, ErrEventNameRequired
		}
		event.Name = trimmed
	}
	if input.Description != nil {
		event.Description = nullableString(input.Description)
	}
	if input.EventDate != nil {
		event.EventDate = input.EventDate
	}
	if input.StartTime != nil {
		event.StartTime = nullableString(input.StartTime)
	}
	if input.EndTime != nil {
		event.EndTime = nullableString(input.EndTime)
	}
	if input.LocationName != nil {
		event.LocationName = nullableString(input.LocationName)
	}
	if input.LocationAddress != nil {
		event.LocationAddress = nullableString(input.LocationAddress)
	}
	if input.Latitude != nil {
		event.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		event.Longitude = input.Longitude
	}

	becameDefault := input.IsDefault != nil && *input.IsDefault && !event.IsDefault
	if input.IsDefault != nil {
		event.IsDefault = *input.IsDefault
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(event).Error; err != nil {
			return err
		}
		if becameDefault {
			return s.fanOut(tx, event.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event and all its invite rows.
func (s *EventService) Delete(id uuid.UUID) error {
	event, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).
			Delete(&models.GuestEventInvite{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
}

func (s *EventService) GetByID(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *EventService) List() ([]models.Event, error) {
	var events []models.Event
	if err := s.db.Order("display_order").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// InviteGuests creates invite rows for the selected guests on a non-default
// event. Idempotent: already-invited guests are left untouched.
func (s *EventService) InviteGuests(eventID uuid.UUID, guestIDs []uuid.UUID) error {
	if _, err := s.GetByID(eventID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, guestID := range guestIDs {
			var count int64
			if err := tx.Model(&models.Guest{}).Where("id = ?", guestID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrGuestNotFound
			}
			if err := upsertInvite(tx, guestID, eventID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Invites returns the invite rows for an event.
func (s *EventService) Invites(eventID uuid.UUID) ([]models.GuestEventInvite, error) {
	var invites []models.GuestEventInvite
	if err := s.db.Where("event_id = ?", eventID).Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// RSVPToEvent records a per-event response. Guests can only respond to
// events they hold an invite row for; for default events a missing row is
// materialized on the spot (the fan-out invariant makes that row theirs
// anyway).
func (s *EventService) RSVPToEvent(eventID, guestID uuid.UUID, status string) (*models.GuestEventInvite, error) {
	event, err := s.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	var invite models.GuestEventInvite
	err = s.db.Where("guest_id = ? AND event_id = ?", guestID, eventID).First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !event.IsDefault {
			return nil, ErrNotInvited
		}
		invite = models.GuestEventInvite{GuestID: guestID, EventID: eventID, RSVPStatus: models.RSVPPending}
		if err := s.db.Where("guest_id = ? AND event_id = ?", guestID, eventID).
			FirstOrCreate(&invite).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	invite.RSVPStatus = status
	if err := s.db.Save(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// Counts computes the aggregate response numbers for one event under the
// dual rule.
func (s *EventService) Counts(event *models.Event) (EventCounts, error) {
	var counts EventCounts

	if event.IsDefault {
		model := s.db.Model(&models.Guest{})
		if err := model.Count(&counts.InviteCount).Error; err != nil {
			return counts, err
		}
		if err := s.db.Model(&models.Guest{}).Where("rsvp_status = ?", models.RSVPYes).
			Count(&counts.ConfirmedCount).Error; err != nil {
			return counts, err
		}
		if err := s.db.Model(&models.Guest{}).Where("rsvp_status = ?", models.RSVPNo).
			Count(&counts.DeclinedCount).Error; err != nil {
			return counts, err
		}
		counts.PendingCount = counts.InviteCount - counts.ConfirmedCount - counts.DeclinedCount
		return counts, nil
	}

	if err := s.db.Model(&models.GuestEventInvite{}).Where("event_id = ?", event.ID).
		Count(&counts.InviteCount).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&models.GuestEventInvite{}).
		Where("event_id = ? AND rsvp_status = ?", event.ID, models.RSVPYes).
		Count(&counts.ConfirmedCount).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&models.GuestEventInvite{}).
		Where("event_id = ? AND rsvp_status = ?", event.ID, models.RSVPNo).
		Count(&counts.DeclinedCount).Error; err != nil {
		return counts, err
	}
	counts.PendingCount = counts.InviteCount - counts.ConfirmedCount - counts.DeclinedCount
	return counts, nil
}

// fanOut materializes an invite row for every guest (primaries and
// plus-ones). First write wins; re-running it is a no-op for existing rows.
func (s *EventService) fanOut(tx *gorm.DB, eventID uuid.UUID) error {
	var guests []models.Guest
	if err := tx.Find(&guests).Error; err != nil {
		return err
	}
	for _, guest := range guests {
		if err := upsertInvite(tx, guest.ID, eventID); err != nil {
			return err
		}
	}
	return nil
}

func upsertInvite(tx *gorm.DB, guestID, eventID uuid.UUID) error {
	invite := models.GuestEventInvite{GuestID: guestID, EventID: eventID, RSVPStatus: models.RSVPPending}
	return tx.Where("guest_id = ? AND event_id = ?", guestID, eventID).
		FirstOrCreate(&invite).Error
}
