// services/session_service.go
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-backend/config"
	"wedding-backend/models"
	"wedding-backend/utils"
)

// SessionService resolves "who is asking" from an authenticated account, a
// bare invite code, or both, into a unified party view.
type SessionService struct {
	db     *gorm.DB
	cfg    *config.App
	guests *GuestService
}

func NewSessionService(db *gorm.DB, cfg *config.App) *SessionService {
	return &SessionService{db: db, cfg: cfg, guests: NewGuestService(db)}
}

type ResolvedParty struct {
	InviteCode   string        `json:"inviteCode"`
	PrimaryGuest *models.Guest `json:"primaryGuest"`
	PlusOne      *models.Guest `json:"plusOne"`
	IsLoggedIn   bool          `json:"isLoggedIn"`
	IsAdmin      bool          `json:"isAdmin"`
}

// Resolve maps the caller to a party. Order: an account already linked to a
// guest wins; an unlinked account whose email matches a primary guest is
// auto-linked; otherwise an explicit invite code is used. Returns (nil, nil)
// when nothing matches and no code was supplied — the caller is an unknown
// guest.
func (s *SessionService) Resolve(userID *uuid.UUID, email, code string) (*ResolvedParty, error) {
	isLoggedIn := userID != nil
	isAdmin := isLoggedIn && s.cfg.IsAdmin(email)

	if isLoggedIn {
		var linked models.Guest
		err := s.db.Where("user_id = ?", *userID).First(&linked).Error
		if err == nil {
			return s.partyView(linked.InviteCode, isLoggedIn, isAdmin)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// Unlinked account: try the email auto-link against primary guests.
		if email != "" {
			var match models.Guest
			err = s.db.Where("is_plus_one = ? AND user_id IS NULL AND LOWER(email) = ?",
				false, strings.ToLower(email)).First(&match).Error
			if err == nil {
				if err := s.db.Model(&match).Update("user_id", *userID).Error; err != nil {
					return nil, err
				}
				return s.partyView(match.InviteCode, isLoggedIn, isAdmin)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	}

	if strings.TrimSpace(code) != "" {
		party, err := s.guests.GetParty(code)
		if err != nil {
			return nil, err
		}
		view := &ResolvedParty{
			InviteCode:   party.InviteCode,
			PrimaryGuest: &party.Primary,
			PlusOne:      party.PlusOne,
			IsLoggedIn:   isLoggedIn,
			IsAdmin:      isAdmin,
		}
		return view, nil
	}

	return nil, nil
}

// LinkAccountToGuest redeems an invite code for an authenticated account.
// Prefers the row whose email matches the account's; falls back to the
// primary guest. Fails on an unknown code or when the candidate is already
// linked to a different account.
func (s *SessionService) LinkAccountToGuest(code string, userID uuid.UUID, email string) (*models.Guest, error) {
	code = utils.NormalizeInviteCode(code)
	if !utils.IsValidInviteCode(code) {
		return nil, ErrInvalidInviteCode
	}

	var rows []models.Guest
	if err := s.db.Where("invite_code = ?", code).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrCodeNotFound
	}

	var candidate *models.Guest
	lowered := strings.ToLower(email)
	for i := range rows {
		if rows[i].Email != nil && strings.ToLower(*rows[i].Email) == lowered {
			candidate = &rows[i]
			break
		}
	}
	if candidate == nil {
		for i := range rows {
			if !rows[i].IsPlusOne {
				candidate = &rows[i]
				break
			}
		}
	}
	if candidate == nil {
		return nil, ErrCodeNotFound
	}

	if candidate.UserID != nil && *candidate.UserID != userID {
		return nil, ErrAlreadyLinked
	}

	if err := s.db.Model(candidate).Update("user_id", userID).Error; err != nil {
		return nil, err
	}
	candidate.UserID = &userID
	return candidate, nil
}

func (s *SessionService) partyView(code string, isLoggedIn, isAdmin bool) (*ResolvedParty, error) {
	party, err := s.guests.GetParty(code)
	if err != nil {
		return nil, err
	}
	return &ResolvedParty{
		InviteCode:   party.InviteCode,
		PrimaryGuest: &party.Primary,
		PlusOne:      party.PlusOne,
		IsLoggedIn:   isLoggedIn,
		IsAdmin:      isAdmin,
	}, nil
}
