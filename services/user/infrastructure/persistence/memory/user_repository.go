// Package memory is an in-process UserRepository for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	userdomain "github.com/theEquinoxDev/LocalLoop/services/user/domain"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
	domainsvcs "github.com/theEquinoxDev/LocalLoop/services/user/domain/services"
)

// UserRepository keeps users in maps guarded by a single mutex.
// Returned users are copies; mutating them does not touch the store.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*models.User
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

// NewUserRepository returns an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]uuid.UUID),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserRepository) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := models.NormalizeEmail(u.Email)
	if _, taken := r.byEmail[email]; taken {
		return userdomain.ErrUserAlreadyExists
	}
	stored := *u
	stored.Email = email
	r.byID[u.ID] = &stored
	r.byEmail[email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[models.NormalizeEmail(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.User, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if u, ok := r.byID[id]; ok {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *UserRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

// Credit applies the award under the write lock.
func (r *UserRepository) Credit(_ context.Context, id uuid.UUID, award models.Award) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	domainsvcs.ApplyAward(u, award, r.now())
	c := *u
	return &c, nil
}
