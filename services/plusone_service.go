// services/plusone_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wedding-backend/models"
)

// PlusOneService reconciles a primary guest's derived plus-one row. The pair
// is always in one of two states (no plus-one / has plus-one) and every
// primary update that touches plus-one eligibility moves between them:
//
//	no plus-one  + allowed=false -> no-op
//	no plus-one  + allowed=true  -> create
//	has plus-one + allowed=true  -> update names and grouping
//	has plus-one + allowed=false -> delete
//
// All writes run on the caller's transaction so a failed dependent write
// rolls back the primary update with it.
type PlusOneService struct{}

func NewPlusOneService() *PlusOneService {
	return &PlusOneService{}
}

// PlusOneNamePlaceholder is the last name given to a plus-one whose name the
// primary guest has not supplied yet.
const PlusOneNamePlaceholder = "- Plus One"

// Reconcile applies the transition for primary after its fields have been
// merged. first/last are the submitted plus-one name fields (nil when the
// request did not carry them). Safe to retry: it re-reads the current state
// and never creates a second plus-one row.
func (s *PlusOneService) Reconcile(tx *gorm.DB, primary *models.Guest, first, last *string) error {
	existing, err := s.find(tx, primary)
	if err != nil {
		return err
	}

	if !primary.PlusOneAllowed {
		if existing == nil {
			return nil
		}
		if err := tx.Delete(existing).Error; err != nil {
			return fmt.Errorf("removing plus-one: %w", err)
		}
		return nil
	}

	firstName, lastName := plusOneName(primary, first, last)

	if existing != nil {
		existing.FirstName = firstName
		existing.LastName = lastName
		existing.Side = primary.Side
		existing.List = primary.List
		existing.Family = primary.Family
		existing.InviteCode = primary.InviteCode
		if err := tx.Save(existing).Error; err != nil {
			return fmt.Errorf("updating plus-one: %w", err)
		}
		return nil
	}

	plusOne := models.Guest{
		FirstName:      firstName,
		LastName:       lastName,
		Side:           primary.Side,
		List:           primary.List,
		Family:         primary.Family,
		RSVPStatus:     models.RSVPPending,
		PlusOneAllowed: false,
		IsPlusOne:      true,
		PrimaryGuestID: &primary.ID,
		InviteCode:     primary.InviteCode,
	}
	if err := tx.Create(&plusOne).Error; err != nil {
		return fmt.Errorf("creating plus-one: %w", err)
	}
	return nil
}

// Propagate syncs side/list/family onto an existing plus-one after a primary
// update that did not touch plus-one fields. The schema has no trigger for
// this; it is done explicitly and synchronously here.
func (s *PlusOneService) Propagate(tx *gorm.DB, primary *models.Guest) error {
	existing, err := s.find(tx, primary)
	if err != nil || existing == nil {
		return err
	}
	existing.Side = primary.Side
	existing.List = primary.List
	existing.Family = primary.Family
	existing.InviteCode = primary.InviteCode
	if err := tx.Save(existing).Error; err != nil {
		return fmt.Errorf("propagating to plus-one: %w", err)
	}
	return nil
}

func (s *PlusOneService) find(tx *gorm.DB, primary *models.Guest) (*models.Guest, error) {
	var plusOne models.Guest
	err := tx.Where("primary_guest_id = ? AND is_plus_one = ?", primary.ID, true).First(&plusOne).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plusOne, nil
}

// plusOneName applies the naming rule: a supplied non-empty first name wins;
// otherwise the plus-one is named after the primary's full name with the
// placeholder last name.
func plusOneName(primary *models.Guest, first, last *string) (string, *string) {
	if first != nil {
		trimmed := trimOrEmpty(first)
		if trimmed != "" {
			return trimmed, nullableString(last)
		}
	}
	placeholder := PlusOneNamePlaceholder
	return primary.FullName(), &placeholder
}
