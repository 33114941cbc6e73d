package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RSVP statuses shared by guests and event invites.
const (
	RSVPPending = "pending"
	RSVPYes     = "yes"
	RSVPNo      = "no"
)

// Preferred contact methods.
const (
	ContactEmail    = "email"
	ContactText     = "text"
	ContactWhatsApp = "whatsapp"
	ContactPhone    = "phone_call"
	ContactNone     = "none"
)

type Guest struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	FirstName string  `gorm:"not null" json:"firstName"`
	LastName  *string `json:"lastName"`

	Email                  *string `json:"email"`
	PhoneNumber            *string `json:"phoneNumber"`
	Whatsapp               *string `json:"whatsapp"`
	PreferredContactMethod *string `gorm:"type:varchar(20)" json:"preferredContactMethod"`

	Side   *string `gorm:"type:varchar(10)" json:"side"` // bride, groom, both
	List   *string `gorm:"type:varchar(1)" json:"list"`  // a, b, c
	Family bool    `gorm:"default:false" json:"family"`

	RSVPStatus string `gorm:"type:varchar(10);default:'pending'" json:"rsvpStatus"`

	PlusOneAllowed bool       `gorm:"default:false" json:"plusOneAllowed"`
	IsPlusOne      bool       `gorm:"default:false;index" json:"isPlusOne"`
	PrimaryGuestID *uuid.UUID `gorm:"type:uuid;index" json:"primaryGuestId"`

	MailingAddress      *string `json:"mailingAddress"`
	PhysicalInviteSent  bool    `gorm:"default:false" json:"physicalInviteSent"`
	DietaryRestrictions *string `json:"dietaryRestrictions"`
	Under21             bool    `gorm:"default:false" json:"under21"`
	Notes               *string `json:"notes"`

	// Shared verbatim between a primary guest and its plus-one; unique per
	// party, not per row.
	InviteCode string `gorm:"type:varchar(9);not null;index" json:"inviteCode"`

	NumberOfResends            int        `gorm:"default:0" json:"numberOfResends"`
	EmailSent                  bool       `gorm:"default:false" json:"emailSent"`
	EmailSentAt                *time.Time `json:"emailSentAt"`
	ActivitiesEmailSent        bool       `gorm:"default:false" json:"activitiesEmailSent"`
	ActivitiesEmailSentAt      *time.Time `json:"activitiesEmailSentAt"`
	ActivitiesEmailResendCount int        `gorm:"default:0" json:"activitiesEmailResendCount"`

	// Set when an authenticated account is matched to this guest, by explicit
	// invite-code redemption or by email match.
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}

// FullName joins first and last name with a space.
func (g *Guest) FullName() string {
	if g.LastName != nil && *g.LastName != "" {
		return g.FirstName + " " + *g.LastName
	}
	return g.FirstName
}

// SendEligible reports whether this guest can receive email: primary guests
// with an address containing "@". Plus-ones never receive independent email.
func (g *Guest) SendEligible() bool {
	return !g.IsPlusOne && g.Email != nil && strings.Contains(*g.Email, "@")
}
