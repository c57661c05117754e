// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond the domain layer and geometry.
package services

import (
	"github.com/google/uuid"

	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
)

// CheckClaim enforces the claim preconditions in order:
//   - the item is not resolved
//   - nobody has claimed it yet
//   - the claimer is not the owner
//   - the item is a found item
func CheckClaim(item *models.Item, claimerID uuid.UUID) error {
	switch {
	case item.IsResolved:
		return itemdomain.ErrAlreadyResolved
	case item.ClaimerID != nil:
		return itemdomain.ErrAlreadyClaimed
	case item.IsOwner(claimerID):
		return itemdomain.ErrOwnItem
	case item.Type != models.TypeFound:
		return itemdomain.ErrNotClaimable
	default:
		return nil
	}
}

// CheckResolve enforces that only the owner or the claimer resolves, and
// only once.
func CheckResolve(item *models.Item, userID uuid.UUID) error {
	if !item.IsOwner(userID) && !item.IsClaimer(userID) {
		return itemdomain.ErrNotParticipant
	}
	if item.IsResolved {
		return itemdomain.ErrAlreadyResolved
	}
	return nil
}
