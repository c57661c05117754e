package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/theEquinoxDev/LocalLoop/pkg/database"
	"github.com/theEquinoxDev/LocalLoop/pkg/events"
	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
	domainevents "github.com/theEquinoxDev/LocalLoop/services/item/domain/events"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
	"github.com/theEquinoxDev/LocalLoop/services/item/domain/repositories"
	"github.com/theEquinoxDev/LocalLoop/services/item/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL
// with PostGIS. Every write publishes its lifecycle event through the outbox
// in the same transaction when a bus is configured.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given pool. bus
// may be nil, in which case no events are published.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

func (r *ItemRepository) Insert(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertItem(ctx, db.InsertItemParams{
			ID:          item.ID,
			Title:       item.Title,
			Description: nullString(item.Description),
			Type:        string(item.Type),
			Category:    item.Category,
			ImageUrl:    nullString(item.ImageURL),
			Longitude:   item.Longitude(),
			Latitude:    item.Latitude(),
			Radius:      item.Radius,
			OwnerID:     item.OwnerID,
			ExpiresAt:   item.ExpiresAt,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}

		return r.publish(ctx, tx, domainevents.TopicItemPosted, domainevents.ItemPostedEvent{
			ItemEvent: domainevents.NewItemEvent(item.ID, item.OwnerID, item.CreatedAt),
			Type:      string(item.Type),
			Category:  item.Category,
			Longitude: item.Longitude(),
			Latitude:  item.Latitude(),
		})
	})
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ItemView, error) {
	row, err := db.New(r.db.DB()).GetItemView(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToView(row), nil
}

func (r *ItemRepository) ListOpen(ctx context.Context, opts repositories.QueryOpts) ([]*models.ItemView, error) {
	limit, offset := page(opts)
	rows, err := db.New(r.db.DB()).ListOpenItems(ctx, db.ListOpenItemsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("query open items: %w", err)
	}
	return rowsToViews(rows), nil
}

func (r *ItemRepository) FindNearby(ctx context.Context, center orb.Point, maxMeters float64, opts repositories.QueryOpts) ([]*models.ItemView, error) {
	limit, offset := page(opts)
	rows, err := db.New(r.db.DB()).FindNearbyItems(ctx, db.FindNearbyItemsParams{
		Longitude: center.X(),
		Latitude:  center.Y(),
		MaxMeters: maxMeters,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("query nearby items: %w", err)
	}
	return rowsToViews(rows), nil
}

// Claim writes the claimer only if every claim precondition still holds at
// write time. Zero affected rows is reported as ErrPreconditionFailed.
func (r *ItemRepository) Claim(ctx context.Context, id, claimerID uuid.UUID, at time.Time) (*models.ItemView, error) {
	var view *models.ItemView
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		n, err := q.ClaimItem(ctx, db.ClaimItemParams{ID: id, ClaimerID: claimerID, ClaimedAt: at})
		if err != nil {
			return fmt.Errorf("claim item: %w", err)
		}
		if n == 0 {
			return itemdomain.ErrPreconditionFailed
		}
		row, err := q.GetItemView(ctx, id)
		if err != nil {
			return fmt.Errorf("reload claimed item: %w", err)
		}
		view = rowToView(row)

		return r.publish(ctx, tx, domainevents.TopicItemClaimed, domainevents.ItemClaimedEvent{
			ItemEvent: domainevents.NewItemEvent(id, view.OwnerID, at),
			ClaimerID: claimerID,
		})
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (r *ItemRepository) Resolve(ctx context.Context, id uuid.UUID, at time.Time) (*models.ItemView, error) {
	var view *models.ItemView
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		n, err := q.ResolveItem(ctx, db.ResolveItemParams{ID: id, ResolvedAt: at})
		if err != nil {
			return fmt.Errorf("resolve item: %w", err)
		}
		if n == 0 {
			return itemdomain.ErrPreconditionFailed
		}
		row, err := q.GetItemView(ctx, id)
		if err != nil {
			return fmt.Errorf("reload resolved item: %w", err)
		}
		view = rowToView(row)

		return r.publish(ctx, tx, domainevents.TopicItemResolved, domainevents.ItemResolvedEvent{
			ItemEvent: domainevents.NewItemEvent(id, view.OwnerID, at),
			ClaimerID: view.ClaimerID,
		})
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteExpired removes up to limit open items past their expiry. Rows
// locked by a concurrent claim are skipped and picked up by a later sweep.
func (r *ItemRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) ([]*models.Item, error) {
	if limit <= 0 || limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	var expired []*models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		rows, err := db.New(tx).DeleteExpiredItems(ctx, db.DeleteExpiredItemsParams{Now: now, Limit: int32(limit)})
		if err != nil {
			return fmt.Errorf("delete expired items: %w", err)
		}
		expired = make([]*models.Item, len(rows))
		for i, row := range rows {
			expired[i] = rowToItem(row)
			if err := r.publish(ctx, tx, domainevents.TopicItemExpired, domainevents.ItemExpiredEvent{
				ItemEvent: domainevents.NewItemEvent(row.ID, row.OwnerID, now),
				ImageURL:  row.ImageUrl.String,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}

// publish writes event to the outbox inside tx. It is a no-op without a bus.
type itemEvent interface {
	Header() domainevents.ItemEvent
}

// publish writes event to the outbox inside tx. It is a no-op without a bus.
func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, event itemEvent) error {
	if r.bus == nil {
		return nil
	}
	h := event.Header()
	msg, err := events.NewJSONMessage(h.EventID, h.Version, event)
	if err != nil {
		return err
	}
	if err := r.bus.PublishInTx(ctx, tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func page(opts repositories.QueryOpts) (limit, offset int32) {
	limit = math.MaxInt32
	if opts.Limit > 0 && opts.Limit < math.MaxInt32 {
		limit = int32(opts.Limit)
	}
	if opts.Offset > 0 && opts.Offset < math.MaxInt32 {
		offset = int32(opts.Offset)
	}
	return limit, offset
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func rowToItem(row db.Item) *models.Item {
	item := &models.Item{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description.String,
		Type:        models.Type(row.Type),
		Category:    row.Category,
		ImageURL:    row.ImageUrl.String,
		Location:    orb.Point{row.Longitude, row.Latitude},
		Radius:      row.Radius,
		OwnerID:     row.OwnerID,
		IsResolved:  row.IsResolved,
		ExpiresAt:   row.ExpiresAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.ClaimerID.Valid {
		id := row.ClaimerID.UUID
		item.ClaimerID = &id
	}
	if row.ClaimedAt.Valid {
		t := row.ClaimedAt.Time
		item.ClaimedAt = &t
	}
	return item
}

func rowToView(row db.ItemView) *models.ItemView {
	v := &models.ItemView{
		Item: *rowToItem(row.Item),
		Owner: models.Party{
			ID:    row.OwnerID,
			Name:  row.OwnerName,
			Email: row.OwnerEmail,
			Phone: row.OwnerPhone,
		},
	}
	if row.ClaimerID.Valid {
		v.Claimer = &models.Party{
			ID:    row.ClaimerID.UUID,
			Name:  row.ClaimerName.String,
			Email: row.ClaimerEmail.String,
			Phone: row.ClaimerPhone.String,
		}
	}
	return v
}

func rowsToViews(rows []db.ItemView) []*models.ItemView {
	views := make([]*models.ItemView, len(rows))
	for i, row := range rows {
		views[i] = rowToView(row)
	}
	return views
}
