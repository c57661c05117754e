package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const itemColumns = `i.id, i.title, i.description, i.type, i.category, i.image_url,
	ST_X(i.location::geometry), ST_Y(i.location::geometry), i.radius,
	i.owner_id, i.claimer_id, i.claimed_at, i.is_resolved, i.expires_at, i.created_at, i.updated_at`

const viewColumns = itemColumns + `,
	o.name, o.email, o.phone, c.name, c.email, c.phone`

const viewFrom = `FROM items i
JOIN users o ON o.id = i.owner_id
LEFT JOIN users c ON c.id = i.claimer_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func itemDest(i *Item) []interface{} {
	return []interface{}{
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Type,
		&i.Category,
		&i.ImageUrl,
		&i.Longitude,
		&i.Latitude,
		&i.Radius,
		&i.OwnerID,
		&i.ClaimerID,
		&i.ClaimedAt,
		&i.IsResolved,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
}

func scanItemView(row rowScanner) (ItemView, error) {
	var v ItemView
	dest := append(itemDest(&v.Item),
		&v.OwnerName,
		&v.OwnerEmail,
		&v.OwnerPhone,
		&v.ClaimerName,
		&v.ClaimerEmail,
		&v.ClaimerPhone,
	)
	err := row.Scan(dest...)
	return v, err
}

func collectViews(rows *sql.Rows) ([]ItemView, error) {
	defer rows.Close()
	var items []ItemView
	for rows.Next() {
		v, err := scanItemView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertItem = `-- name: InsertItem :exec
INSERT INTO items (id, title, description, type, category, image_url, location, radius, owner_id, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($7, $8), 4326)::geography, $9, $10, $11, $12, $13)
`

type InsertItemParams struct {
	ID          uuid.UUID
	Title       string
	Description sql.NullString
	Type        string
	Category    string
	ImageUrl    sql.NullString
	Longitude   float64
	Latitude    float64
	Radius      float64
	OwnerID     uuid.UUID
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) error {
	_, err := q.db.ExecContext(ctx, insertItem,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.Type,
		arg.Category,
		arg.ImageUrl,
		arg.Longitude,
		arg.Latitude,
		arg.Radius,
		arg.OwnerID,
		arg.ExpiresAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getItemView = `-- name: GetItemView :one
SELECT ` + viewColumns + `
` + viewFrom + `
WHERE i.id = $1
`

func (q *Queries) GetItemView(ctx context.Context, id uuid.UUID) (ItemView, error) {
	return scanItemView(q.db.QueryRowContext(ctx, getItemView, id))
}

const listOpenItems = `-- name: ListOpenItems :many
SELECT ` + viewColumns + `
` + viewFrom + `
WHERE NOT i.is_resolved
ORDER BY i.created_at DESC
LIMIT $1 OFFSET $2
`

type ListOpenItemsParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListOpenItems(ctx context.Context, arg ListOpenItemsParams) ([]ItemView, error) {
	rows, err := q.db.QueryContext(ctx, listOpenItems, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

const findNearbyItems = `-- name: FindNearbyItems :many
SELECT ` + viewColumns + `
` + viewFrom + `
WHERE NOT i.is_resolved
  AND ST_DWithin(i.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
ORDER BY ST_Distance(i.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography)
LIMIT $4 OFFSET $5
`

type FindNearbyItemsParams struct {
	Longitude float64
	Latitude  float64
	MaxMeters float64
	Limit     int32
	Offset    int32
}

func (q *Queries) FindNearbyItems(ctx context.Context, arg FindNearbyItemsParams) ([]ItemView, error) {
	rows, err := q.db.QueryContext(ctx, findNearbyItems,
		arg.Longitude,
		arg.Latitude,
		arg.MaxMeters,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	return collectViews(rows)
}

const claimItem = `-- name: ClaimItem :execrows
UPDATE items
SET claimer_id = $2, claimed_at = $3, updated_at = $3
WHERE id = $1
  AND claimer_id IS NULL
  AND NOT is_resolved
  AND owner_id <> $2
  AND type = 'found'
`

type ClaimItemParams struct {
	ID        uuid.UUID
	ClaimerID uuid.UUID
	ClaimedAt time.Time
}

func (q *Queries) ClaimItem(ctx context.Context, arg ClaimItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, claimItem, arg.ID, arg.ClaimerID, arg.ClaimedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const resolveItem = `-- name: ResolveItem :execrows
UPDATE items
SET is_resolved = true, updated_at = $2
WHERE id = $1 AND NOT is_resolved
`

type ResolveItemParams struct {
	ID         uuid.UUID
	ResolvedAt time.Time
}

func (q *Queries) ResolveItem(ctx context.Context, arg ResolveItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, resolveItem, arg.ID, arg.ResolvedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteExpiredItems = `-- name: DeleteExpiredItems :many
DELETE FROM items i
WHERE i.id IN (
    SELECT id FROM items
    WHERE expires_at < $1 AND claimer_id IS NULL AND NOT is_resolved
    ORDER BY expires_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
RETURNING ` + itemColumns + `
`

type DeleteExpiredItemsParams struct {
	Now   time.Time
	Limit int32
}

func (q *Queries) DeleteExpiredItems(ctx context.Context, arg DeleteExpiredItemsParams) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, deleteExpiredItems, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(itemDest(&i)...); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
