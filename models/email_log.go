// models/email_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailLog struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	GuestID uuid.UUID  `gorm:"type:uuid;index;not null" json:"guestId"`
	EventID *uuid.UUID `gorm:"type:uuid;index" json:"eventId"`

	Kind         string `gorm:"type:varchar(20)" json:"kind"`    // invite, activities, event_invite, reminder
	Channel      string `gorm:"type:varchar(20)" json:"channel"` // email, sms, whatsapp
	Subject      string `json:"subject"`
	Status       string `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string `gorm:"type:text" json:"errorMessage"`

	SentAt time.Time `json:"sentAt"`

	CreatedAt time.Time `json:"createdAt"`
}

func (l *EmailLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
