package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wedding-backend/services"
	"wedding-backend/utils"
)

type GuestController struct {
	Guests *services.GuestService
}

// CreateGuest creates a primary guest. A plus-one row is created alongside
// when plusOneAllowed is set.
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var input services.CreateGuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.PhoneNumber != nil && *input.PhoneNumber != "" && !utils.ValidatePhone(*input.PhoneNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if input.PreferredContactMethod != nil && *input.PreferredContactMethod != "" &&
		!utils.ValidContactMethod(*input.PreferredContactMethod) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact method")
		return
	}

	guest, err := gc.Guests.Create(input)
	if err != nil {
		if errors.Is(err, services.ErrFirstNameRequired) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create guest")
		return
	}

	c.JSON(http.StatusCreated, guest)
}

// GetGuests retrieves all guest rows
func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.Guests.List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve guests")
		return
	}

	c.JSON(http.StatusOK, guests)
}

// GetGuest retrieves a guest and its party
func (gc *GuestController) GetGuest(c *gin.Context) {
	guestUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid guest ID format")
		return
	}

	guest, err := gc.Guests.GetByID(guestUUID)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Guest not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	party, err := gc.Guests.PartyFor(guest)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guest":   guest,
		"plusOne": party.PlusOne,
	})
}

// UpdateGuest merges a partial update and reconciles the plus-one
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	guestUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid guest ID format")
		return
	}

	var input services.UpdateGuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.RSVPStatus != nil && !utils.ValidRSVPStatus(*input.RSVPStatus) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid RSVP status")
		return
	}
	if input.PhoneNumber != nil && *input.PhoneNumber != "" && !utils.ValidatePhone(*input.PhoneNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if input.PreferredContactMethod != nil && *input.PreferredContactMethod != "" &&
		!utils.ValidContactMethod(*input.PreferredContactMethod) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact method")
		return
	}

	guest, err := gc.Guests.Update(guestUUID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGuestNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Guest not found")
		case errors.Is(err, services.ErrFirstNameRequired):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update guest: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, guest)
}

// DeleteGuest removes a guest (and its plus-one, if any)
func (gc *GuestController) DeleteGuest(c *gin.Context) {
	guestUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid guest ID format")
		return
	}

	if err := gc.Guests.Delete(guestUUID); err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Guest not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete guest")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted"})
}
