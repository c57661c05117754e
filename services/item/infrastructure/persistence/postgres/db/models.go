package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Item is a row of items with the location split into coordinates.
type Item struct {
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
	ClaimerID   uuid.NullUUID
	ClaimedAt   sql.NullTime
	IsResolved  bool
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemView is an Item joined with its owner and optional claimer.
type ItemView struct {
	Item
	OwnerName    string
	OwnerEmail   string
	OwnerPhone   string
	ClaimerName  sql.NullString
	ClaimerEmail sql.NullString
	ClaimerPhone sql.NullString
}
