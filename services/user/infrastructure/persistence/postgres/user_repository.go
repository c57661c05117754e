package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/pkg/database"
	userdomain "github.com/theEquinoxDev/LocalLoop/services/user/domain"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
	domainsvcs "github.com/theEquinoxDev/LocalLoop/services/user/domain/services"
	"github.com/theEquinoxDev/LocalLoop/services/user/infrastructure/persistence/postgres/db"
)

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by the given connection pool.
func NewUserRepository(database *database.Database) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a user. Returns ErrUserAlreadyExists on the email unique index.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	q := db.New(r.db.DB())
	if err := q.InsertUser(ctx, db.InsertUserParams{
		ID:           u.ID,
		Name:         u.Name,
		Email:        models.NormalizeEmail(u.Email),
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Points:       int32(u.Points),
		Level:        int32(u.Level),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}); err != nil {
		if database.IsPgCode(err, database.CodeUniqueViolation) {
			return userdomain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return rowToUser(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return rowToUser(row), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := db.New(r.db.DB()).FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	users := make([]*models.User, len(rows))
	for i, row := range rows {
		users[i] = rowToUser(row)
	}
	return users, nil
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := db.New(r.db.DB()).UserExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// Credit locks the user row, applies the award and writes the new standing
// in one transaction.
func (r *UserRepository) Credit(ctx context.Context, id uuid.UUID, award models.Award) (*models.User, error) {
	var out *models.User
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetUserForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return userdomain.ErrUserNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}

		u := rowToUser(row)
		domainsvcs.ApplyAward(u, award, time.Now().UTC())
		if err := q.UpdateUserStanding(ctx, db.UpdateUserStandingParams{
			ID:            u.ID,
			Points:        int32(u.Points),
			Level:         int32(u.Level),
			ItemsPosted:   int32(u.ItemsPosted),
			ItemsClaimed:  int32(u.ItemsClaimed),
			ItemsReturned: int32(u.ItemsReturned),
			UpdatedAt:     u.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("update standing: %w", err)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// rowToUser maps a db.User to a domain models.User.
func rowToUser(row db.User) *models.User {
	return &models.User{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Phone:         row.Phone,
		PasswordHash:  row.PasswordHash,
		Points:        int(row.Points),
		Level:         int(row.Level),
		ItemsPosted:   int(row.ItemsPosted),
		ItemsClaimed:  int(row.ItemsClaimed),
		ItemsReturned: int(row.ItemsReturned),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
