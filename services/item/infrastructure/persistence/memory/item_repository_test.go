package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/repositories"
)

type staticParties map[uuid.UUID]models.Party

func (s staticParties) Parties(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Party, error) {
	out := make(map[uuid.UUID]models.Party, len(ids))
	for _, id := range ids {
		if p, ok := s[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newItem(owner uuid.UUID, typ models.Type, lng, lat float64) *models.Item {
	now := time.Now().UTC()
	return &models.Item{
		ID:        uuid.New(),
		Title:     "Blue umbrella",
		Type:      typ,
		Category:  "accessories",
		Location:  orb.Point{lng, lat},
		Radius:    models.DefaultRadius,
		OwnerID:   owner,
		ExpiresAt: now.Add(24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestItemRepository_GetByIDResolvesParties(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := NewItemRepository(staticParties{owner: {ID: owner, Name: "Owner", Email: "o@example.com"}})

	it := newItem(owner, models.TypeFound, 77.59, 12.97)
	if err := repo.Insert(ctx, it); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	v, err := repo.GetByID(ctx, it.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if v.Owner.Name != "Owner" || v.Claimer != nil {
		t.Fatalf("unexpected view parties: %+v, %+v", v.Owner, v.Claimer)
	}

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemRepository_ListOpenNewestFirst(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := NewItemRepository(staticParties{})

	older := newItem(owner, models.TypeFound, 0, 0)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := newItem(owner, models.TypeLost, 0, 0)
	resolved := newItem(owner, models.TypeFound, 0, 0)
	resolved.IsResolved = true
	for _, it := range []*models.Item{older, newer, resolved} {
		if err := repo.Insert(ctx, it); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	got, err := repo.ListOpen(ctx, repositories.QueryOpts{})
	if err != nil {
		t.Fatalf("ListOpen: %v", err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("unexpected order: %v", ids(got))
	}

	page, _ := repo.ListOpen(ctx, repositories.QueryOpts{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].ID != older.ID {
		t.Fatalf("unexpected page: %v", ids(page))
	}
}

func TestItemRepository_FindNearby(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := NewItemRepository(staticParties{})
	center := orb.Point{77.5946, 12.9716}

	near := newItem(owner, models.TypeFound, 77.5950, 12.9716) // ~43m
	mid := newItem(owner, models.TypeFound, 77.6000, 12.9716)  // ~585m
	far := newItem(owner, models.TypeFound, 77.7000, 12.9716)  // ~11km
	gone := newItem(owner, models.TypeFound, 77.5946, 12.9716)
	gone.IsResolved = true
	for _, it := range []*models.Item{far, mid, near, gone} {
		if err := repo.Insert(ctx, it); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	got, err := repo.FindNearby(ctx, center, 2000, repositories.QueryOpts{})
	if err != nil {
		t.Fatalf("FindNearby: %v", err)
	}
	if len(got) != 2 || got[0].ID != near.ID || got[1].ID != mid.ID {
		t.Fatalf("unexpected nearby result: %v", ids(got))
	}
}

func TestItemRepository_ConcurrentClaimHasOneWinner(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := NewItemRepository(staticParties{})
	it := newItem(owner, models.TypeFound, 0, 0)
	if err := repo.Insert(ctx, it); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var wins, losses atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Claim(ctx, it.ID, uuid.New(), time.Now())
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, itemdomain.ErrPreconditionFailed):
				losses.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 || losses.Load() != 15 {
		t.Fatalf("wins=%d losses=%d", wins.Load(), losses.Load())
	}
	v, _ := repo.GetByID(ctx, it.ID)
	if v.ClaimerID == nil || v.ClaimedAt == nil {
		t.Fatal("claim was not recorded")
	}
}

func TestItemRepository_ClaimRejectsOwnerAndLostItems(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := NewItemRepository(staticParties{})
	found := newItem(owner, models.TypeFound, 0, 0)
	lost := newItem(owner, models.TypeLost, 0, 0)
	for _, it := range []*models.Item{found, lost} {
		if err := repo.Insert(ctx, it); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	if _, err := repo.Claim(ctx, found.ID, owner, time.Now()); !errors.Is(err, itemdomain.ErrPreconditionFailed) {
		t.Fatalf("owner claim: expected ErrPreconditionFailed, got %v", err)
	}
	if _, err := repo.Claim(ctx, lost.ID, uuid.New(), time.Now()); !errors.Is(err, itemdomain.ErrPreconditionFailed) {
		t.Fatalf("lost claim: expected ErrPreconditionFailed, got %v", err)
	}
}

func TestItemRepository_ResolveOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(staticParties{})
	it := newItem(uuid.New(), models.TypeFound, 0, 0)
	if err := repo.Insert(ctx, it); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	v, err := repo.Resolve(ctx, it.ID, time.Now())
	if err != nil || !v.IsResolved {
		t.Fatalf("Resolve = %+v, %v", v, err)
	}
	if _, err := repo.Resolve(ctx, it.ID, time.Now()); !errors.Is(err, itemdomain.ErrPreconditionFailed) {
		t.Fatalf("second resolve: expected ErrPreconditionFailed, got %v", err)
	}
}

func TestItemRepository_DeleteExpiredOnlyOpen(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := NewItemRepository(staticParties{})
	past := time.Now().Add(-time.Hour)

	open := newItem(owner, models.TypeFound, 0, 0)
	open.ExpiresAt = past
	claimed := newItem(owner, models.TypeFound, 0, 0)
	claimed.ExpiresAt = past
	resolved := newItem(owner, models.TypeFound, 0, 0)
	resolved.ExpiresAt = past
	resolved.IsResolved = true
	live := newItem(owner, models.TypeFound, 0, 0)
	for _, it := range []*models.Item{open, claimed, resolved, live} {
		if err := repo.Insert(ctx, it); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if _, err := repo.Claim(ctx, claimed.ID, uuid.New(), time.Now()); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	expired, err := repo.DeleteExpired(ctx, time.Now(), 10)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != open.ID {
		t.Fatalf("unexpected expired set: %d items", len(expired))
	}
	if _, err := repo.GetByID(ctx, open.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expired item still present: %v", err)
	}
	for _, it := range []*models.Item{claimed, resolved, live} {
		if _, err := repo.GetByID(ctx, it.ID); err != nil {
			t.Fatalf("item %s removed: %v", it.ID, err)
		}
	}
}

func ids(views []*models.ItemView) []uuid.UUID {
	out := make([]uuid.UUID, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}
