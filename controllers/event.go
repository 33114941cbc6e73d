package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wedding-backend/models"
	"wedding-backend/services"
	"wedding-backend/utils"
)

type EventController struct {
	Events *services.EventService
	Emails *services.EmailService
}

type InviteGuestsInput struct {
	GuestIDs []uuid.UUID `json:"guestIds" binding:"required"`
}

type SendEventInvitesInput struct {
	Resend bool `json:"resend"`
}

type eventWithCounts struct {
	models.Event
	services.EventCounts
}

// CreateEvent creates an event; default events fan out invites to all guests
func (ec *EventController) CreateEvent(c *gin.Context) {
	var input services.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	event, err := ec.Events.Create(input)
	if err != nil {
		if errors.Is(err, services.ErrEventNameRequired) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvents retrieves all events with their aggregate counts
func (ec *EventController) GetEvents(c *gin.Context) {
	events, err := ec.Events.List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve events")
		return
	}

	out := make([]eventWithCounts, 0, len(events))
	for i := range events {
		counts, err := ec.Events.Counts(&events[i])
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute event counts")
			return
		}
		out = append(out, eventWithCounts{Event: events[i], EventCounts: counts})
	}

	c.JSON(http.StatusOK, out)
}

// GetEvent retrieves a specific event with counts
func (ec *EventController) GetEvent(c *gin.Context) {
	eventUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	event, err := ec.Events.GetByID(eventUUID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	counts, err := ec.Events.Counts(event)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute event counts")
		return
	}

	c.JSON(http.StatusOK, eventWithCounts{Event: *event, EventCounts: counts})
}

// UpdateEvent merges a partial update; toggling to default triggers fan-out
func (ec *EventController) UpdateEvent(c *gin.Context) {
	eventUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var input services.UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	event, err := ec.Events.Update(eventUUID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		case errors.Is(err, services.ErrEventNameRequired):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update event")
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event and its invite rows
func (ec *EventController) DeleteEvent(c *gin.Context) {
	eventUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	if err := ec.Events.Delete(eventUUID); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// InviteGuests invites selected guests to a non-default event
func (ec *EventController) InviteGuests(c *gin.Context) {
	eventUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var input InviteGuestsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := ec.Events.InviteGuests(eventUUID, input.GuestIDs); err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		case errors.Is(err, services.ErrGuestNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Guest not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to invite guests")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Guests invited"})
}

// GetEventInvites lists the invite rows for an event
func (ec *EventController) GetEventInvites(c *gin.Context) {
	eventUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	if _, err := ec.Events.GetByID(eventUUID); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	invites, err := ec.Events.Invites(eventUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invites")
		return
	}

	c.JSON(http.StatusOK, invites)
}

// SendEventInvites emails the event-invite template to invited guests.
// Reports per-recipient failures instead of failing the batch.
func (ec *EventController) SendEventInvites(c *gin.Context) {
	eventUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	event, err := ec.Events.GetByID(eventUUID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input SendEventInvitesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		input = SendEventInvitesInput{}
	}

	report, err := ec.Emails.SendEventInvites(c.Request.Context(), event, input.Resend)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No active event invite template")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send event invites")
		return
	}

	c.JSON(http.StatusOK, report)
}
