package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`

	EventDate *time.Time `json:"eventDate"`
	StartTime *string    `json:"startTime"`
	EndTime   *string    `json:"endTime"`

	LocationName    *string  `json:"locationName"`
	LocationAddress *string  `json:"locationAddress"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`

	// Default events proxy the main wedding RSVP: every guest is invited
	// automatically and counts come from the guests' own rsvp_status.
	IsDefault    bool `gorm:"default:false" json:"isDefault"`
	DisplayOrder int  `gorm:"uniqueIndex;not null" json:"displayOrder"`

	Invites []GuestEventInvite `gorm:"foreignKey:EventID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
