// Package memory is an in-process ItemRepository for development and tests.
// Proximity uses haversine distance over a linear scan.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/repositories"
	domainsvcs "github.com/theEquinoxDev/LocalLoop/services/item/domain/services"
)

// ItemRepository keeps items in a map guarded by one mutex, so every
// conditional write is atomic with respect to the others.
type ItemRepository struct {
	mu      sync.RWMutex
	items   map[uuid.UUID]*models.Item
	parties repositories.PartyResolver
}

// NewItemRepository returns an empty repository that resolves owners and
// claimers through parties.
func NewItemRepository(parties repositories.PartyResolver) *ItemRepository {
	return &ItemRepository{items: make(map[uuid.UUID]*models.Item), parties: parties}
}

func (r *ItemRepository) Insert(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.items[item.ID]; dup {
		return fmt.Errorf("insert item %s: duplicate id", item.ID)
	}
	r.items[item.ID] = clone(item)
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ItemView, error) {
	r.mu.RLock()
	item, ok := r.items[id]
	var c *models.Item
	if ok {
		c = clone(item)
	}
	r.mu.RUnlock()
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	views, err := r.populate(ctx, []*models.Item{c})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (r *ItemRepository) ListOpen(ctx context.Context, opts repositories.QueryOpts) ([]*models.ItemView, error) {
	r.mu.RLock()
	open := make([]*models.Item, 0, len(r.items))
	for _, it := range r.items {
		if !it.IsResolved {
			open = append(open, clone(it))
		}
	}
	r.mu.RUnlock()

	sort.Slice(open, func(i, j int) bool { return open[i].CreatedAt.After(open[j].CreatedAt) })
	return r.populate(ctx, paginate(open, opts))
}

func (r *ItemRepository) FindNearby(ctx context.Context, center orb.Point, maxMeters float64, opts repositories.QueryOpts) ([]*models.ItemView, error) {
	type hit struct {
		item *models.Item
		dist float64
	}
	r.mu.RLock()
	var hits []hit
	for _, it := range r.items {
		if it.IsResolved {
			continue
		}
		if d := domainsvcs.DistanceMeters(center, it.Location); d <= maxMeters {
			hits = append(hits, hit{clone(it), d})
		}
	}
	r.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	items := make([]*models.Item, len(hits))
	for i, h := range hits {
		items[i] = h.item
	}
	return r.populate(ctx, paginate(items, opts))
}

// Claim checks and writes under the same lock.
func (r *ItemRepository) Claim(ctx context.Context, id, claimerID uuid.UUID, at time.Time) (*models.ItemView, error) {
	r.mu.Lock()
	item, ok := r.items[id]
	if !ok || domainsvcs.CheckClaim(item, claimerID) != nil {
		r.mu.Unlock()
		return nil, itemdomain.ErrPreconditionFailed
	}
	item.MarkClaimed(claimerID, at)
	c := clone(item)
	r.mu.Unlock()

	views, err := r.populate(ctx, []*models.Item{c})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (r *ItemRepository) Resolve(ctx context.Context, id uuid.UUID, at time.Time) (*models.ItemView, error) {
	r.mu.Lock()
	item, ok := r.items[id]
	if !ok || item.IsResolved {
		r.mu.Unlock()
		return nil, itemdomain.ErrPreconditionFailed
	}
	item.MarkResolved(at)
	c := clone(item)
	r.mu.Unlock()

	views, err := r.populate(ctx, []*models.Item{c})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (r *ItemRepository) DeleteExpired(_ context.Context, now time.Time, limit int) ([]*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired []*models.Item
	for id, it := range r.items {
		if limit > 0 && len(expired) >= limit {
			break
		}
		if it.State() == models.StateOpen && it.ExpiresAt.Before(now) {
			expired = append(expired, it)
			delete(r.items, id)
		}
	}
	return expired, nil
}

// populate resolves owner and claimer parties for items in one batch.
func (r *ItemRepository) populate(ctx context.Context, items []*models.Item) ([]*models.ItemView, error) {
	ids := make([]uuid.UUID, 0, 2*len(items))
	for _, it := range items {
		ids = append(ids, it.OwnerID)
		if it.ClaimerID != nil {
			ids = append(ids, *it.ClaimerID)
		}
	}
	parties := map[uuid.UUID]models.Party{}
	if len(ids) > 0 && r.parties != nil {
		var err error
		if parties, err = r.parties.Parties(ctx, ids); err != nil {
			return nil, fmt.Errorf("resolve parties: %w", err)
		}
	}

	views := make([]*models.ItemView, len(items))
	for i, it := range items {
		v := &models.ItemView{Item: *it, Owner: partyOrID(parties, it.OwnerID)}
		if it.ClaimerID != nil {
			p := partyOrID(parties, *it.ClaimerID)
			v.Claimer = &p
		}
		views[i] = v
	}
	return views, nil
}

func partyOrID(parties map[uuid.UUID]models.Party, id uuid.UUID) models.Party {
	if p, ok := parties[id]; ok {
		return p
	}
	return models.Party{ID: id}
}

func paginate(items []*models.Item, opts repositories.QueryOpts) []*models.Item {
	if opts.Offset > 0 {
		if opts.Offset >= len(items) {
			return nil
		}
		items = items[opts.Offset:]
	}
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items
}

// clone copies an item including its pointer fields.
func clone(it *models.Item) *models.Item {
	c := *it
	if it.ClaimerID != nil {
		id := *it.ClaimerID
		c.ClaimerID = &id
	}
	if it.ClaimedAt != nil {
		t := *it.ClaimedAt
		c.ClaimedAt = &t
	}
	return &c
}
