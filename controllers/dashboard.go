package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wedding-backend/config"
	"wedding-backend/models"
	"wedding-backend/services"
	"wedding-backend/utils"
)

type DashboardController struct {
	Events *services.EventService
}

type DashboardOverview struct {
	TotalGuests      int64             `json:"totalGuests"`
	PrimaryGuests    int64             `json:"primaryGuests"`
	PlusOnes         int64             `json:"plusOnes"`
	Confirmed        int64             `json:"confirmed"`
	Declined         int64             `json:"declined"`
	Pending          int64             `json:"pending"`
	InvitesSent      int64             `json:"invitesSent"`
	DaysUntilWedding *int              `json:"daysUntilWedding"`
	Events           []eventWithCounts `json:"events"`
	RecentRSVPs      []RecentRSVP      `json:"recentRsvps"`
}

type RecentRSVP struct {
	Name       string    `json:"name"`
	RSVPStatus string    `json:"rsvpStatus"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview

	config.DB.Model(&models.Guest{}).Count(&overview.TotalGuests)
	config.DB.Model(&models.Guest{}).Where("is_plus_one = ?", false).Count(&overview.PrimaryGuests)
	config.DB.Model(&models.Guest{}).Where("is_plus_one = ?", true).Count(&overview.PlusOnes)
	config.DB.Model(&models.Guest{}).Where("rsvp_status = ?", models.RSVPYes).Count(&overview.Confirmed)
	config.DB.Model(&models.Guest{}).Where("rsvp_status = ?", models.RSVPNo).Count(&overview.Declined)
	overview.Pending = overview.TotalGuests - overview.Confirmed - overview.Declined
	config.DB.Model(&models.Guest{}).Where("email_sent = ?", true).Count(&overview.InvitesSent)

	// Countdown to the wedding day (earliest default event with a date)
	var wedding models.Event
	if err := config.DB.Where("is_default = ? AND event_date IS NOT NULL", true).
		Order("event_date").First(&wedding).Error; err == nil && wedding.EventDate != nil {
		days := utils.DaysBetween(time.Now(), *wedding.EventDate)
		overview.DaysUntilWedding = &days
	}

	events, err := dc.Events.List()
	if err == nil {
		for i := range events {
			counts, err := dc.Events.Counts(&events[i])
			if err != nil {
				continue
			}
			overview.Events = append(overview.Events, eventWithCounts{Event: events[i], EventCounts: counts})
		}
	}

	// Last 5 responses
	var recent []models.Guest
	config.DB.Where("rsvp_status <> ?", models.RSVPPending).
		Order("updated_at DESC").Limit(5).Find(&recent)
	for _, guest := range recent {
		overview.RecentRSVPs = append(overview.RecentRSVPs, RecentRSVP{
			Name:       guest.FullName(),
			RSVPStatus: guest.RSVPStatus,
			UpdatedAt:  guest.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, overview)
}
