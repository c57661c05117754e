package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return; <= 0 means no limit
	Offset int // Number of records to skip
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Every read returns views with owner and claimer resolved.
type ItemRepository interface {
	Insert(ctx context.Context, item *models.Item) error

	// GetByID returns ErrItemNotFound when no item has the id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.ItemView, error)

	// ListOpen returns unresolved items, newest first.
	ListOpen(ctx context.Context, opts QueryOpts) ([]*models.ItemView, error)

	// FindNearby returns unresolved items within maxMeters of center,
	// nearest first.
	FindNearby(ctx context.Context, center orb.Point, maxMeters float64, opts QueryOpts) ([]*models.ItemView, error)

	// Claim sets the claimer in one conditional write that only matches an
	// open found item not owned by claimerID. Returns ErrPreconditionFailed
	// when nothing matched.
	Claim(ctx context.Context, id, claimerID uuid.UUID, at time.Time) (*models.ItemView, error)

	// Resolve marks an unresolved item resolved. Returns ErrPreconditionFailed
	// when the item is missing or already resolved.
	Resolve(ctx context.Context, id uuid.UUID, at time.Time) (*models.ItemView, error)

	// DeleteExpired removes up to limit open items whose expiry is before now
	// and returns them. Claimed and resolved items are never deleted.
	DeleteExpired(ctx context.Context, now time.Time, limit int) ([]*models.Item, error)
}
