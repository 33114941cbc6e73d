package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wedding-backend/services"
	"wedding-backend/utils"
)

// RSVPController is the public surface: guests identify themselves by invite
// code or by a logged-in account linked to their guest row.
type RSVPController struct {
	Sessions *services.SessionService
	Guests   *services.GuestService
	Events   *services.EventService
}

type VerifyCodeInput struct {
	Code string `json:"code" binding:"required"`
}

type RSVPEntry struct {
	RSVPStatus          string  `json:"rsvpStatus" binding:"required"`
	DietaryRestrictions *string `json:"dietaryRestrictions"`
	Notes               *string `json:"notes"`
}

type SubmitRSVPInput struct {
	Code    string     `json:"code"`
	Primary *RSVPEntry `json:"primary"`
	PlusOne *RSVPEntry `json:"plusOne"`
}

type EventRSVPInput struct {
	Code       string     `json:"code"`
	GuestID    *uuid.UUID `json:"guestId"`
	RSVPStatus string     `json:"rsvpStatus" binding:"required"`
}

// identityFromContext pulls the optional authenticated identity set by
// OptionalAuthMiddleware.
func identityFromContext(c *gin.Context) (*uuid.UUID, string) {
	var userID *uuid.UUID
	if raw, exists := c.Get("userId"); exists {
		if str, ok := raw.(string); ok {
			if parsed, err := uuid.Parse(str); err == nil {
				userID = &parsed
			}
		}
	}
	email := ""
	if raw, exists := c.Get("email"); exists {
		if str, ok := raw.(string); ok {
			email = str
		}
	}
	return userID, email
}

func respondResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInviteCode):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invite code")
	case errors.Is(err, services.ErrCodeNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Invite code not found")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// VerifyCode resolves an invite code to its party
func (rc *RSVPController) VerifyCode(c *gin.Context) {
	var input VerifyCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	userID, email := identityFromContext(c)
	party, err := rc.Sessions.Resolve(userID, email, input.Code)
	if err != nil {
		respondResolveError(c, err)
		return
	}

	c.JSON(http.StatusOK, party)
}

// GetSession resolves the caller to a party without an explicit code: a
// linked or email-matched account, or nothing.
func (rc *RSVPController) GetSession(c *gin.Context) {
	userID, email := identityFromContext(c)
	party, err := rc.Sessions.Resolve(userID, email, c.Query("code"))
	if err != nil {
		respondResolveError(c, err)
		return
	}
	if party == nil {
		c.JSON(http.StatusOK, gin.H{
			"inviteCode":   nil,
			"primaryGuest": nil,
			"plusOne":      nil,
			"isLoggedIn":   userID != nil,
			"isAdmin":      false,
		})
		return
	}

	c.JSON(http.StatusOK, party)
}

// LinkCode redeems an invite code for the logged-in account
func (rc *RSVPController) LinkCode(c *gin.Context) {
	userID, email := identityFromContext(c)
	if userID == nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input VerifyCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	guest, err := rc.Sessions.LinkAccountToGuest(input.Code, *userID, email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInviteCode):
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid invite code")
		case errors.Is(err, services.ErrCodeNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Invite code not found")
		case errors.Is(err, services.ErrAlreadyLinked):
			utils.RespondWithError(c, http.StatusConflict, "This invite is already linked to another account")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, guest)
}

// SubmitRSVP records the main wedding response for the party
func (rc *RSVPController) SubmitRSVP(c *gin.Context) {
	var input SubmitRSVPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Primary == nil && input.PlusOne == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Nothing to submit")
		return
	}

	userID, email := identityFromContext(c)
	party, err := rc.Sessions.Resolve(userID, email, input.Code)
	if err != nil {
		respondResolveError(c, err)
		return
	}
	if party == nil {
		utils.RespondWithError(c, http.StatusNotFound, "No party resolved; supply an invite code")
		return
	}

	if input.Primary != nil {
		if !utils.ValidRSVPStatus(input.Primary.RSVPStatus) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid RSVP status")
			return
		}
		update := services.UpdateGuestInput{
			RSVPStatus:          &input.Primary.RSVPStatus,
			DietaryRestrictions: input.Primary.DietaryRestrictions,
			Notes:               input.Primary.Notes,
		}
		if _, err := rc.Guests.Update(party.PrimaryGuest.ID, update); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record RSVP")
			return
		}
	}

	if input.PlusOne != nil {
		if party.PlusOne == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "This party has no plus-one")
			return
		}
		if !utils.ValidRSVPStatus(input.PlusOne.RSVPStatus) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid RSVP status")
			return
		}
		update := services.UpdateGuestInput{
			RSVPStatus:          &input.PlusOne.RSVPStatus,
			DietaryRestrictions: input.PlusOne.DietaryRestrictions,
			Notes:               input.PlusOne.Notes,
		}
		if _, err := rc.Guests.Update(party.PlusOne.ID, update); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record RSVP")
			return
		}
	}

	refreshed, err := rc.Guests.GetParty(party.InviteCode)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, refreshed)
}

// EventRSVP records a per-event response for one member of the party.
// Responding to an event the guest is not invited to is a conflict.
func (rc *RSVPController) EventRSVP(c *gin.Context) {
	eventUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var input EventRSVPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidRSVPStatus(input.RSVPStatus) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid RSVP status")
		return
	}

	userID, email := identityFromContext(c)
	party, err := rc.Sessions.Resolve(userID, email, input.Code)
	if err != nil {
		respondResolveError(c, err)
		return
	}
	if party == nil {
		utils.RespondWithError(c, http.StatusNotFound, "No party resolved; supply an invite code")
		return
	}

	// Default to the primary guest; an explicit guestId must belong to the
	// resolved party.
	guestID := party.PrimaryGuest.ID
	if input.GuestID != nil {
		if *input.GuestID != party.PrimaryGuest.ID &&
			(party.PlusOne == nil || *input.GuestID != party.PlusOne.ID) {
			utils.RespondWithError(c, http.StatusForbidden, "Guest is not part of this party")
			return
		}
		guestID = *input.GuestID
	}

	invite, err := rc.Events.RSVPToEvent(eventUUID, guestID, input.RSVPStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		case errors.Is(err, services.ErrNotInvited):
			utils.RespondWithError(c, http.StatusConflict, "Guest is not invited to this event")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record RSVP")
		}
		return
	}

	c.JSON(http.StatusOK, invite)
}
