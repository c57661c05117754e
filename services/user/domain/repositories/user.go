package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
)

// UserRepository is the persistence interface for the User aggregate.
// The domain layer owns this interface; infrastructure implements it.
type UserRepository interface {
	// Create inserts u. Returns ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, u *models.User) error

	// GetByID returns ErrUserNotFound when no user has the id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail looks up a normalized email. Returns ErrUserNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Credit applies award to the user as one atomic update and returns the
	// updated user. Concurrent credits to the same user must not lose points.
	Credit(ctx context.Context, id uuid.UUID, award models.Award) (*models.User, error)
}
