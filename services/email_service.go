// services/email_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appconfig "wedding-backend/config"
	"wedding-backend/models"
)

// EmailService sends transactional email through AWS SES. Bulk sends report
// per-recipient failures instead of aborting the batch.
type EmailService struct {
	db       *gorm.DB
	client   *sesv2.Client
	from     string
	fromName string
}

// NewEmailService creates the sender. Initializes the SES client if
// credentials are provided; without them every send fails cleanly.
func NewEmailService(db *gorm.DB, cfg *appconfig.App) *EmailService {
	svc := &EmailService{
		db:       db,
		from:     cfg.EmailFrom,
		fromName: cfg.EmailFromName,
	}

	if cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWSRegion),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, "")),
		)
		if err != nil {
			log.Printf("[SES] Warning: Failed to initialize AWS config: %v", err)
		} else {
			svc.client = sesv2.NewFromConfig(awsCfg)
		}
	}

	return svc
}

// RecipientError is one failed recipient in a bulk send.
type RecipientError struct {
	GuestID uuid.UUID `json:"guestId"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
}

// SendReport summarizes a bulk send.
type SendReport struct {
	Sent   int              `json:"sent"`
	Errors []RecipientError `json:"errors"`
}

// Send delivers a single email.
func (s *EmailService) Send(ctx context.Context, to, subject, html string) error {
	if s.client == nil {
		return errors.New("SES client not initialized - check credentials")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.from)),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}

// SendInvites emails the invite template to every send-eligible guest.
// resend=false skips guests whose invite already went out.
func (s *EmailService) SendInvites(ctx context.Context, resend bool) (*SendReport, error) {
	template, err := s.activeTemplate(models.TemplateInvite)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("is_plus_one = ? AND email LIKE ?", false, "%@%")
	if !resend {
		query = query.Where("email_sent = ?", false)
	}
	var guests []models.Guest
	if err := query.Find(&guests).Error; err != nil {
		return nil, err
	}

	report := &SendReport{}
	for i := range guests {
		guest := &guests[i]
		subject, html := renderTemplate(template, guest)

		if err := s.Send(ctx, *guest.Email, subject, html); err != nil {
			log.Printf("[SES] Failed to send invite to %s: %v", *guest.Email, err)
			report.Errors = append(report.Errors, RecipientError{
				GuestID: guest.ID, Email: *guest.Email, Message: err.Error(),
			})
			s.logSend(guest.ID, nil, "invite", subject, err)
			continue
		}

		now := time.Now()
		updates := map[string]interface{}{
			"email_sent":    true,
			"email_sent_at": &now,
		}
		if guest.EmailSent {
			updates["number_of_resends"] = guest.NumberOfResends + 1
		}
		if err := s.db.Model(guest).Updates(updates).Error; err != nil {
			log.Printf("Failed to record invite send for guest %s: %v", guest.ID, err)
		}
		s.logSend(guest.ID, nil, "invite", subject, nil)
		report.Sent++
	}
	return report, nil
}

// SendActivitiesEmail emails the activities template to send-eligible guests
// who have not had it yet (or again, when resend is set).
func (s *EmailService) SendActivitiesEmail(ctx context.Context, resend bool) (*SendReport, error) {
	template, err := s.activeTemplate(models.TemplateActivities)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("is_plus_one = ? AND email LIKE ?", false, "%@%")
	if !resend {
		query = query.Where("activities_email_sent = ?", false)
	}
	var guests []models.Guest
	if err := query.Find(&guests).Error; err != nil {
		return nil, err
	}

	report := &SendReport{}
	for i := range guests {
		guest := &guests[i]
		subject, html := renderTemplate(template, guest)

		if err := s.Send(ctx, *guest.Email, subject, html); err != nil {
			log.Printf("[SES] Failed to send activities email to %s: %v", *guest.Email, err)
			report.Errors = append(report.Errors, RecipientError{
				GuestID: guest.ID, Email: *guest.Email, Message: err.Error(),
			})
			s.logSend(guest.ID, nil, "activities", subject, err)
			continue
		}

		now := time.Now()
		updates := map[string]interface{}{
			"activities_email_sent":    true,
			"activities_email_sent_at": &now,
		}
		if guest.ActivitiesEmailSent {
			updates["activities_email_resend_count"] = guest.ActivitiesEmailResendCount + 1
		}
		if err := s.db.Model(guest).Updates(updates).Error; err != nil {
			log.Printf("Failed to record activities send for guest %s: %v", guest.ID, err)
		}
		s.logSend(guest.ID, nil, "activities", subject, nil)
		report.Sent++
	}
	return report, nil
}

// SendEventInvites emails the event-invite template to the send-eligible
// guests holding an invite row for the event.
func (s *EmailService) SendEventInvites(ctx context.Context, event *models.Event, resend bool) (*SendReport, error) {
	template, err := s.activeTemplate(models.TemplateEventInvite)
	if err != nil {
		return nil, err
	}

	var invites []models.GuestEventInvite
	query := s.db.Where("event_id = ?", event.ID)
	if !resend {
		query = query.Where("email_sent = ?", false)
	}
	if err := query.Find(&invites).Error; err != nil {
		return nil, err
	}

	report := &SendReport{}
	for i := range invites {
		invite := &invites[i]

		var guest models.Guest
		if err := s.db.First(&guest, "id = ?", invite.GuestID).Error; err != nil {
			continue
		}
		if !guest.SendEligible() {
			continue
		}

		subject, html := renderTemplate(template, &guest)
		subject = strings.ReplaceAll(subject, "[EventName]", event.Name)
		html = strings.ReplaceAll(html, "[EventName]", event.Name)

		if err := s.Send(ctx, *guest.Email, subject, html); err != nil {
			log.Printf("[SES] Failed to send event invite to %s: %v", *guest.Email, err)
			report.Errors = append(report.Errors, RecipientError{
				GuestID: guest.ID, Email: *guest.Email, Message: err.Error(),
			})
			s.logSend(guest.ID, &event.ID, "event_invite", subject, err)
			continue
		}

		now := time.Now()
		updates := map[string]interface{}{
			"email_sent":    true,
			"email_sent_at": &now,
		}
		if invite.EmailSent {
			updates["email_resend_count"] = invite.EmailResendCount + 1
		}
		if err := s.db.Model(invite).Updates(updates).Error; err != nil {
			log.Printf("Failed to record event invite send for guest %s: %v", guest.ID, err)
		}
		s.logSend(guest.ID, &event.ID, "event_invite", subject, nil)
		report.Sent++
	}
	return report, nil
}

func (s *EmailService) activeTemplate(templateType string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := s.db.Where("type = ? AND is_active = ?", templateType, true).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *EmailService) logSend(guestID uuid.UUID, eventID *uuid.UUID, kind, subject string, sendErr error) {
	entry := models.EmailLog{
		GuestID: guestID,
		EventID: eventID,
		Kind:    kind,
		Channel: "email",
		Subject: subject,
		Status:  "sent",
		SentAt:  time.Now(),
	}
	if sendErr != nil {
		entry.Status = "failed"
		entry.ErrorMessage = sendErr.Error()
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log email for guest %s: %v", guestID, err)
	}
}

// renderTemplate substitutes the guest placeholders in the template.
func renderTemplate(template *models.EmailTemplate, guest *models.Guest) (string, string) {
	replace := func(text string) string {
		text = strings.ReplaceAll(text, "[GuestName]", guest.FullName())
		text = strings.ReplaceAll(text, "[FirstName]", guest.FirstName)
		text = strings.ReplaceAll(text, "[InviteCode]", guest.InviteCode)
		return text
	}
	return replace(template.Subject), replace(template.HTML)
}
