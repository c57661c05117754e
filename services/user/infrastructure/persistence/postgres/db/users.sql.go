package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const userColumns = `id, name, email, phone, password_hash, points, level, items_posted, items_claimed, items_returned, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (User, error) {
	var i User
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.PasswordHash,
		&i.Points,
		&i.Level,
		&i.ItemsPosted,
		&i.ItemsClaimed,
		&i.ItemsReturned,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertUser = `-- name: InsertUser :exec
INSERT INTO users (id, name, email, phone, password_hash, points, level, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type InsertUserParams struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Points       int32
	Level        int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) InsertUser(ctx context.Context, arg InsertUserParams) error {
	_, err := q.db.ExecContext(ctx, insertUser,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.PasswordHash,
		arg.Points,
		arg.Level,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getUserByID = `-- name: GetUserByID :one
SELECT ` + userColumns + ` FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const getUserForUpdate = `-- name: GetUserForUpdate :one
SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetUserForUpdate(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserForUpdate, id))
}

const findUsersByIDs = `-- name: FindUsersByIDs :many
SELECT ` + userColumns + ` FROM users WHERE id = ANY($1::uuid[])
`

func (q *Queries) FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error) {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	rows, err := q.db.QueryContext(ctx, findUsersByIDs, strs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		i, err := scanUser(rows)
		if err != nil {
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

const userExists = `-- name: UserExists :one
SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
`

func (q *Queries) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, userExists, id).Scan(&exists)
	return exists, err
}

const updateUserStanding = `-- name: UpdateUserStanding :exec
UPDATE users
SET points = $2, level = $3, items_posted = $4, items_claimed = $5, items_returned = $6, updated_at = $7
WHERE id = $1
`

type UpdateUserStandingParams struct {
	ID            uuid.UUID
	Points        int32
	Level         int32
	ItemsPosted   int32
	ItemsClaimed  int32
	ItemsReturned int32
	UpdatedAt     time.Time
}

func (q *Queries) UpdateUserStanding(ctx context.Context, arg UpdateUserStandingParams) error {
	_, err := q.db.ExecContext(ctx, updateUserStanding,
		arg.ID,
		arg.Points,
		arg.Level,
		arg.ItemsPosted,
		arg.ItemsClaimed,
		arg.ItemsReturned,
		arg.UpdatedAt,
	)
	return err
}
