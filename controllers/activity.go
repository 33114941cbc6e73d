package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-backend/config"
	"wedding-backend/models"
	"wedding-backend/services"
	"wedding-backend/utils"
)

type ActivityController struct {
	Guests *services.GuestService
	Emails *services.EmailService
}

// CreateActivityInput defines the expected JSON structure for creating an activity
type CreateActivityInput struct {
	Name         string     `json:"name" binding:"required"`
	Description  *string    `json:"description"`
	ActivityDate *time.Time `json:"activityDate"`
	LocationName *string    `json:"locationName"`
	Cost         *string    `json:"cost"`
	DisplayOrder *int       `json:"displayOrder"`
}

// UpdateActivityInput defines the expected JSON structure for updating an activity
type UpdateActivityInput struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	ActivityDate *time.Time `json:"activityDate"`
	LocationName *string    `json:"locationName"`
	Cost         *string    `json:"cost"`
	DisplayOrder *int       `json:"displayOrder"`
}

type ActivityInterestInput struct {
	Code       string     `json:"code" binding:"required"`
	ActivityID uuid.UUID  `json:"activityId" binding:"required"`
	GuestID    *uuid.UUID `json:"guestId"`
	Interested bool       `json:"interested"`
}

type activityWithInterest struct {
	models.Activity
	InterestedCount int64 `json:"interestedCount"`
}

// CreateActivity creates a weekend activity
func (ac *ActivityController) CreateActivity(c *gin.Context) {
	var input CreateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	activity := models.Activity{
		Name:         input.Name,
		Description:  input.Description,
		ActivityDate: input.ActivityDate,
		LocationName: input.LocationName,
		Cost:         input.Cost,
	}
	if input.DisplayOrder != nil {
		activity.DisplayOrder = *input.DisplayOrder
	}

	if err := config.DB.Create(&activity).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create activity")
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// GetActivities lists activities with interest counts
func (ac *ActivityController) GetActivities(c *gin.Context) {
	var activities []models.Activity
	if err := config.DB.Order("display_order, activity_date").Find(&activities).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}

	out := make([]activityWithInterest, 0, len(activities))
	for _, activity := range activities {
		var count int64
		config.DB.Model(&models.GuestActivityInterest{}).
			Where("activity_id = ? AND interested = ?", activity.ID, true).Count(&count)
		out = append(out, activityWithInterest{Activity: activity, InterestedCount: count})
	}

	c.JSON(http.StatusOK, out)
}

// UpdateActivity merges a partial update
func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	activityUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	var input UpdateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var activity models.Activity
	if err := config.DB.First(&activity, "id = ?", activityUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Activity not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		activity.Name = *input.Name
	}
	if input.Description != nil {
		activity.Description = input.Description
	}
	if input.ActivityDate != nil {
		activity.ActivityDate = input.ActivityDate
	}
	if input.LocationName != nil {
		activity.LocationName = input.LocationName
	}
	if input.Cost != nil {
		activity.Cost = input.Cost
	}
	if input.DisplayOrder != nil {
		activity.DisplayOrder = *input.DisplayOrder
	}

	if err := config.DB.Save(&activity).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update activity")
		return
	}

	c.JSON(http.StatusOK, activity)
}

// DeleteActivity removes an activity and its interest rows
func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	activityUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	var activity models.Activity
	if err := config.DB.First(&activity, "id = ?", activityUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Activity not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", activity.ID).
			Delete(&models.GuestActivityInterest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&activity).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted"})
}

// MarkInterest records a party member's interest in an activity (public,
// code-identified). Idempotent per (guest, activity).
func (ac *ActivityController) MarkInterest(c *gin.Context) {
	var input ActivityInterestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	party, err := ac.Guests.GetParty(input.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInviteCode):
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid invite code")
		case errors.Is(err, services.ErrCodeNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Invite code not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	guestID := party.Primary.ID
	if input.GuestID != nil {
		if *input.GuestID != party.Primary.ID &&
			(party.PlusOne == nil || *input.GuestID != party.PlusOne.ID) {
			utils.RespondWithError(c, http.StatusForbidden, "Guest is not part of this party")
			return
		}
		guestID = *input.GuestID
	}

	var count int64
	if err := config.DB.Model(&models.Activity{}).Where("id = ?", input.ActivityID).Count(&count).Error; err != nil || count == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Activity not found")
		return
	}

	interest := models.GuestActivityInterest{GuestID: guestID, ActivityID: input.ActivityID}
	if err := config.DB.Where("guest_id = ? AND activity_id = ?", guestID, input.ActivityID).
		FirstOrCreate(&interest).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record interest")
		return
	}

	interest.Interested = input.Interested
	if err := config.DB.Save(&interest).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record interest")
		return
	}

	c.JSON(http.StatusOK, interest)
}

// SendActivitiesEmail sends the activities campaign to send-eligible guests
func (ac *ActivityController) SendActivitiesEmail(c *gin.Context) {
	var input SendEventInvitesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		input = SendEventInvitesInput{}
	}

	report, err := ac.Emails.SendActivitiesEmail(c.Request.Context(), input.Resend)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No active activities template")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send activities email")
		return
	}

	c.JSON(http.StatusOK, report)
}
