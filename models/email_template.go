package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template types.
const (
	TemplateInvite      = "invite"
	TemplateActivities  = "activities"
	TemplateEventInvite = "event_invite"
)

type EmailTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"type"`
	Subject  string    `gorm:"not null" json:"subject"`
	HTML     string    `gorm:"type:text;not null" json:"html"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *EmailTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
