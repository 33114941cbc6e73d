// services/guest_service.go
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-backend/models"
	"wedding-backend/utils"
)

// GuestService owns guest rows and the primary/plus-one relationship.
type GuestService struct {
	db       *gorm.DB
	plusOnes *PlusOneService
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{db: db, plusOnes: NewPlusOneService()}
}

// CreateGuestInput defines the fields accepted when creating a primary guest.
type CreateGuestInput struct {
	FirstName              string  `json:"firstName" binding:"required"`
	LastName               *string `json:"lastName"`
	Email                  *string `json:"email"`
	PhoneNumber            *string `json:"phoneNumber"`
	Whatsapp               *string `json:"whatsapp"`
	PreferredContactMethod *string `json:"preferredContactMethod"`
	Side                   *string `json:"side"`
	List                   *string `json:"list"`
	Family                 *bool   `json:"family"`
	PlusOneAllowed         *bool   `json:"plusOneAllowed"`
	PlusOneFirstName       *string `json:"plusOneFirstName"`
	PlusOneLastName        *string `json:"plusOneLastName"`
	MailingAddress         *string `json:"mailingAddress"`
	DietaryRestrictions    *string `json:"dietaryRestrictions"`
	Under21                *bool   `json:"under21"`
	Notes                  *string `json:"notes"`
}

// UpdateGuestInput defines a partial update. nil means "leave unchanged";
// a pointer to an empty string clears the (nullable) column.
type UpdateGuestInput struct {
	FirstName              *string `json:"firstName"`
	LastName               *string `json:"lastName"`
	Email                  *string `json:"email"`
	PhoneNumber            *string `json:"phoneNumber"`
	Whatsapp               *string `json:"whatsapp"`
	PreferredContactMethod *string `json:"preferredContactMethod"`
	Side                   *string `json:"side"`
	List                   *string `json:"list"`
	Family                 *bool   `json:"family"`
	RSVPStatus             *string `json:"rsvpStatus"`
	PlusOneAllowed         *bool   `json:"plusOneAllowed"`
	PlusOneFirstName       *string `json:"plusOneFirstName"`
	PlusOneLastName        *string `json:"plusOneLastName"`
	MailingAddress         *string `json:"mailingAddress"`
	PhysicalInviteSent     *bool   `json:"physicalInviteSent"`
	DietaryRestrictions    *string `json:"dietaryRestrictions"`
	Under21                *bool   `json:"under21"`
	Notes                  *string `json:"notes"`
}

// Party is a primary guest plus its optional plus-one, identified together
// by one invite code.
type Party struct {
	InviteCode string        `json:"inviteCode"`
	Primary    models.Guest  `json:"primaryGuest"`
	PlusOne    *models.Guest `json:"plusOne"`
}

// Create inserts a primary guest with a fresh collision-checked invite code.
// If the input allows a plus-one, the plus-one row is created in the same
// transaction.
func (s *GuestService) Create(input CreateGuestInput) (*models.Guest, error) {
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		return nil, ErrFirstNameRequired
	}

	code, err := s.freshInviteCode()
	if err != nil {
		return nil, err
	}

	guest := models.Guest{
		FirstName:              firstName,
		LastName:               nullableString(input.LastName),
		Email:                  nullableString(input.Email),
		PhoneNumber:            nullableString(input.PhoneNumber),
		Whatsapp:               nullableString(input.Whatsapp),
		PreferredContactMethod: nullableString(input.PreferredContactMethod),
		Side:                   nullableString(input.Side),
		List:                   nullableString(input.List),
		MailingAddress:         nullableString(input.MailingAddress),
		DietaryRestrictions:    nullableString(input.DietaryRestrictions),
		Notes:                  nullableString(input.Notes),
		RSVPStatus:             models.RSVPPending,
		IsPlusOne:              false,
		InviteCode:             code,
		NumberOfResends:        0,
	}
	if input.Family != nil {
		guest.Family = *input.Family
	}
	if input.Under21 != nil {
		guest.Under21 = *input.Under21
	}
	if input.PlusOneAllowed != nil {
		guest.PlusOneAllowed = *input.PlusOneAllowed
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&guest).Error; err != nil {
			return err
		}
		if guest.PlusOneAllowed {
			return s.plusOnes.Reconcile(tx, &guest, input.PlusOneFirstName, input.PlusOneLastName)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// Update merges the provided fields over the stored row. Plus-one
// reconciliation and side/list/family propagation run in the same
// transaction, so a failed dependent write rolls back the whole update.
func (s *GuestService) Update(id uuid.UUID, input UpdateGuestInput) (*models.Guest, error) {
	guest, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		trimmed := strings.TrimSpace(*input.FirstName)
		if trimmed == "" {
			return nil, ErrFirstNameRequired
		}
		guest.FirstName = trimmed
	}
	if input.LastName != nil {
		guest.LastName = nullableString(input.LastName)
	}
	if input.Email != nil {
		guest.Email = nullableString(input.Email)
	}
	if input.PhoneNumber != nil {
		guest.PhoneNumber = nullableString(input.PhoneNumber)
	}
	if input.Whatsapp != nil {
		guest.Whatsapp = nullableString(input.Whatsapp)
	}
	if input.PreferredContactMethod != nil {
		guest.PreferredContactMethod = nullableString(input.PreferredContactMethod)
	}
	if input.Side != nil {
		guest.Side = nullableString(input.Side)
	}
	if input.List != nil {
		guest.List = nullableString(input.List)
	}
	if input.Family != nil {
		guest.Family = *input.Family
	}
	if input.RSVPStatus != nil {
		guest.RSVPStatus = *input.RSVPStatus
	}
	if input.MailingAddress != nil {
		guest.MailingAddress = nullableString(input.MailingAddress)
	}
	if input.PhysicalInviteSent != nil {
		guest.PhysicalInviteSent = *input.PhysicalInviteSent
	}
	if input.DietaryRestrictions != nil {
		guest.DietaryRestrictions = nullableString(input.DietaryRestrictions)
	}
	if input.Under21 != nil {
		guest.Under21 = *input.Under21
	}
	if input.Notes != nil {
		guest.Notes = nullableString(input.Notes)
	}
	if input.PlusOneAllowed != nil && !guest.IsPlusOne {
		guest.PlusOneAllowed = *input.PlusOneAllowed
	}

	touchedPlusOne := input.PlusOneAllowed != nil ||
		input.PlusOneFirstName != nil || input.PlusOneLastName != nil

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(guest).Error; err != nil {
			return err
		}
		if guest.IsPlusOne {
			return nil
		}
		if touchedPlusOne {
			return s.plusOnes.Reconcile(tx, guest, input.PlusOneFirstName, input.PlusOneLastName)
		}
		return s.plusOnes.Propagate(tx, guest)
	})
	if err != nil {
		return nil, err
	}
	return guest, nil
}

// Delete removes a guest. A primary guest takes its plus-one with it; a
// plus-one removed directly flips its primary's plus_one_allowed off so the
// pair never ends up in a half state.
func (s *GuestService) Delete(id uuid.UUID) error {
	guest, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if guest.IsPlusOne {
			if guest.PrimaryGuestID != nil {
				if err := tx.Model(&models.Guest{}).
					Where("id = ?", *guest.PrimaryGuestID).
					Update("plus_one_allowed", false).Error; err != nil {
					return err
				}
			}
		} else {
			if err := tx.Where("primary_guest_id = ? AND is_plus_one = ?", guest.ID, true).
				Delete(&models.Guest{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("guest_id = ?", guest.ID).
			Delete(&models.GuestEventInvite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("guest_id = ?", guest.ID).
			Delete(&models.GuestActivityInterest{}).Error; err != nil {
			return err
		}
		return tx.Delete(guest).Error
	})
}

func (s *GuestService) GetByID(id uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	if err := s.db.First(&guest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &guest, nil
}

// List returns all guest rows, primaries first, then by name.
func (s *GuestService) List() ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.db.Order("is_plus_one, first_name, last_name").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// GetParty resolves a user-supplied invite code to the primary guest and its
// optional plus-one. The code is trimmed and upper-cased before lookup.
func (s *GuestService) GetParty(code string) (*Party, error) {
	code = utils.NormalizeInviteCode(code)
	if !utils.IsValidInviteCode(code) {
		return nil, ErrInvalidInviteCode
	}

	var primary models.Guest
	err := s.db.Where("invite_code = ? AND is_plus_one = ?", code, false).First(&primary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}

	party := &Party{InviteCode: code, Primary: primary}

	var plusOne models.Guest
	err = s.db.Where("invite_code = ? AND is_plus_one = ?", code, true).First(&plusOne).Error
	if err == nil {
		party.PlusOne = &plusOne
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return party, nil
}

// PartyFor returns the party a guest row belongs to, whichever half it is.
func (s *GuestService) PartyFor(guest *models.Guest) (*Party, error) {
	return s.GetParty(guest.InviteCode)
}

func (s *GuestService) freshInviteCode() (string, error) {
	for i := 0; i < 20; i++ {
		code := utils.GenerateInviteCode()
		var count int64
		if err := s.db.Model(&models.Guest{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invite code")
}

// nullableString maps an absent or blank value to null so unset optional
// fields persist as null, not empty string.
func nullableString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func trimOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
