package db

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Phone         string
	PasswordHash  string
	Points        int32
	Level         int32
	ItemsPosted   int32
	ItemsClaimed  int32
	ItemsReturned int32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
