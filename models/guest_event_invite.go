package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestEventInvite struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	GuestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_guest_event,priority:1" json:"guestId"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_guest_event,priority:2" json:"eventId"`

	RSVPStatus string `gorm:"type:varchar(10);default:'pending'" json:"rsvpStatus"`

	EmailSent        bool       `gorm:"default:false" json:"emailSent"`
	EmailSentAt      *time.Time `json:"emailSentAt"`
	EmailResendCount int        `gorm:"default:0" json:"emailResendCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *GuestEventInvite) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
