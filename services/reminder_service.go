// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	appconfig "wedding-backend/config"
	"wedding-backend/models"
	"wedding-backend/utils"
)

// ReminderService nudges guests who have not RSVP'd yet and prefer to be
// reached by text or WhatsApp.
type ReminderService struct {
	db     *gorm.DB
	cfg    *appconfig.App
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB, cfg *appconfig.App) *ReminderService {
	return &ReminderService{
		db:  db,
		cfg: cfg,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 10 AM
	c.AddFunc("0 10 * * *", func() {
		s.SendPendingReminders()
	})

	c.Start()
	log.Println("RSVP reminder scheduler started")
}

// SendPendingReminders messages every pending primary guest whose preferred
// contact method is text or whatsapp. One failed recipient does not stop
// the rest.
func (s *ReminderService) SendPendingReminders() {
	log.Println("Starting RSVP reminder processing...")

	var guests []models.Guest
	err := s.db.Where("is_plus_one = ? AND rsvp_status = ? AND preferred_contact_method IN ?",
		false, models.RSVPPending, []string{models.ContactText, models.ContactWhatsApp}).
		Find(&guests).Error
	if err != nil {
		log.Printf("Failed to fetch pending guests: %v", err)
		return
	}

	for i := range guests {
		s.sendReminder(&guests[i])
	}

	log.Println("RSVP reminder processing completed")
}

func (s *ReminderService) sendReminder(guest *models.Guest) {
	message := fmt.Sprintf(
		"Hi %s! We still need your RSVP for the wedding. Your invite code is %s.",
		guest.FirstName, guest.InviteCode)

	if deadline := s.rsvpDeadline(); deadline != nil {
		days := utils.DaysBetween(time.Now(), *deadline)
		if days > 0 {
			message = fmt.Sprintf("%s Only %d days left to respond!", message, days)
		}
	}

	channel := "sms"
	var to string

	if guest.PreferredContactMethod != nil && *guest.PreferredContactMethod == models.ContactWhatsApp &&
		guest.Whatsapp != nil && strings.HasPrefix(*guest.Whatsapp, "+") {
		to = "whatsapp:" + *guest.Whatsapp
		channel = "whatsapp"
	} else if guest.PhoneNumber != nil {
		to = *guest.PhoneNumber
	} else {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + s.cfg.TwilioWhatsAppFrom)
	} else {
		params.SetFrom(s.cfg.TwilioPhoneNumber)
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", to, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", to, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", to)
	}

	entry := models.EmailLog{
		GuestID:      guest.ID,
		Kind:         "reminder",
		Channel:      channel,
		Subject:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for guest %s: %v", guest.ID, err)
	}
}

// rsvpDeadline is the date of the earliest upcoming default event, if any.
func (s *ReminderService) rsvpDeadline() *time.Time {
	var event models.Event
	err := s.db.Where("is_default = ? AND event_date IS NOT NULL", true).
		Order("event_date").First(&event).Error
	if err != nil {
		return nil
	}
	return event.EventDate
}
