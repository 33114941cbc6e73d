package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is an optional wedding-weekend outing guests can express
// interest in.
type Activity struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`

	ActivityDate *time.Time `json:"activityDate"`
	LocationName *string    `json:"locationName"`
	Cost         *string    `json:"cost"`
	DisplayOrder int        `gorm:"default:0" json:"displayOrder"`

	Interests []GuestActivityInterest `gorm:"foreignKey:ActivityID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

type GuestActivityInterest struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	GuestID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_guest_activity,priority:1" json:"guestId"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_guest_activity,priority:2" json:"activityId"`
	Interested bool      `gorm:"default:true" json:"interested"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *GuestActivityInterest) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
