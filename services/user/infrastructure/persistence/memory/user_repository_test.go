package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	userdomain "github.com/theEquinoxDev/LocalLoop/services/user/domain"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
)

func mustUser(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := models.NewUser("Test User", email, "555-0100", "hash")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return u
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := mustUser(t, "asha@example.com")

	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, mustUser(t, "ASHA@example.com")); !errors.Is(err, userdomain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}

	got, err := repo.GetByEmail(ctx, " Asha@Example.com ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetByEmail returned %v, want %v", got.ID, u.ID)
	}

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	ok, err := repo.Exists(ctx, u.ID)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := mustUser(t, "copy@example.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, _ := repo.GetByID(ctx, u.ID)
	got.Points = 9999

	again, _ := repo.GetByID(ctx, u.ID)
	if again.Points != 0 {
		t.Fatalf("store was mutated through a returned user: %d", again.Points)
	}
}

func TestUserRepository_FindByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	a, b := mustUser(t, "a@example.com"), mustUser(t, "b@example.com")
	for _, u := range []*models.User{a, b} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, uuid.New(), b.ID, a.ID})
	if err != nil {
		t.Fatalf("FindByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
}

func TestUserRepository_CreditIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := mustUser(t, "busy@example.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	const n = 50
	award := models.Award{Reason: models.ReasonClaimItem, Points: 100, Counter: models.CounterItemsClaimed}
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Credit(ctx, u.ID, award); err != nil {
				t.Errorf("Credit: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := repo.GetByID(ctx, u.ID)
	if got.Points != n*100 || got.ItemsClaimed != n {
		t.Fatalf("lost updates: points=%d claimed=%d", got.Points, got.ItemsClaimed)
	}
	if got.Level != 11 {
		t.Errorf("expected level 11 at %d points, got %d", got.Points, got.Level)
	}
}

func TestUserRepository_CreditUnknownUser(t *testing.T) {
	repo := NewUserRepository()
	_, err := repo.Credit(context.Background(), uuid.New(), models.Award{Points: 50})
	if !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
