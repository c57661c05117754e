package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
)

// Ledger credits gamification points. It is implemented by the user
// context; this context only names the reason.
type Ledger interface {
	Credit(ctx context.Context, userID uuid.UUID, reason models.RewardReason) (*models.Standing, error)
}

// PartyResolver looks up the public projection of users by id. Stores that
// cannot join against users directly use it to build views.
type PartyResolver interface {
	Parties(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Party, error)
}

// ImageStore keeps item photos and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}
