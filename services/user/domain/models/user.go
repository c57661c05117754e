package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/pkg/apperr"
)

// Minimum lengths enforced on registration.
const (
	MinNameLength     = 2
	MinPasswordLength = 6
)

// User is the aggregate for this bounded context. PasswordHash never leaves
// the service layer; presenters build their own views.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string

	Points        int
	Level         int
	ItemsPosted   int
	ItemsClaimed  int
	ItemsReturned int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail trims and lowercases an address so lookups and the unique
// index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds a level-1 user with no points. Field problems are returned
// as apperr.Fields.
func NewUser(name, email, phone, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	phone = strings.TrimSpace(phone)

	fields := apperr.Fields{}
	switch {
	case name == "":
		fields["name"] = "This field is required"
	case utf8.RuneCountInString(name) < MinNameLength:
		fields["name"] = "Minimum length is 2"
	}
	switch {
	case email == "":
		fields["email"] = "This field is required"
	case !strings.Contains(email, "@"):
		fields["email"] = "Must be a valid email address"
	}
	if phone == "" {
		fields["phone"] = "This field is required"
	}
	if passwordHash == "" {
		fields["password"] = "This field is required"
	}
	if len(fields) > 0 {
		return nil, fields
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Level:        1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
