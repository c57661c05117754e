package models

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/theEquinoxDev/LocalLoop/pkg/apperr"
)

// Type tells whether the poster lost the item or found it.
type Type string

const (
	TypeLost  Type = "lost"
	TypeFound Type = "found"
)

// ParseType accepts "lost" or "found" in any case.
func ParseType(s string) (Type, bool) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeLost, TypeFound:
		return t, true
	default:
		return "", false
	}
}

// Title and radius limits.
const (
	MinTitleLength = 3
	MaxTitleLength = 255
	DefaultRadius  = 200.0
)

// State is the lifecycle position derived from claimer and resolution.
type State string

const (
	StateOpen     State = "open"
	StateClaimed  State = "claimed"
	StateResolved State = "resolved"
)

// Item is the core aggregate for this bounded context.
// Location is [longitude, latitude]; orb.Point keeps that order (X, Y).
type Item struct {
	ID          uuid.UUID
	Title       string
	Description string
	Type        Type
	Category    string
	ImageURL    string
	Location    orb.Point
	Radius      float64

	OwnerID   uuid.UUID
	ClaimerID *uuid.UUID // set at most once
	ClaimedAt *time.Time // set iff ClaimerID is set

	IsResolved bool
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewItemParams carries the untrusted fields of a new report.
type NewItemParams struct {
	Title       string
	Description string
	Type        string
	Category    string
	Latitude    *float64
	Longitude   *float64
	Radius      *float64
	ExpiresAt   string
}

// NewItem validates p and builds an open item owned by ownerID. Field
// problems are returned together as apperr.Fields.
func NewItem(ownerID uuid.UUID, p NewItemParams) (*Item, error) {
	fields := apperr.Fields{}

	title := strings.TrimSpace(p.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		fields["title"] = "This field is required"
	case n < MinTitleLength:
		fields["title"] = fmt.Sprintf("Minimum length is %d", MinTitleLength)
	case n > MaxTitleLength:
		fields["title"] = fmt.Sprintf("Maximum length is %d", MaxTitleLength)
	}

	typ, ok := ParseType(p.Type)
	if !ok {
		fields["type"] = "Must be one of: lost found"
	}

	category := strings.TrimSpace(p.Category)
	if category == "" {
		fields["category"] = "This field is required"
	}

	switch {
	case p.Latitude == nil:
		fields["latitude"] = "This field is required"
	case !validLatitude(*p.Latitude):
		fields["latitude"] = "Must be a latitude between -90 and 90"
	}
	switch {
	case p.Longitude == nil:
		fields["longitude"] = "This field is required"
	case !validLongitude(*p.Longitude):
		fields["longitude"] = "Must be a longitude between -180 and 180"
	}

	radius := DefaultRadius
	if p.Radius != nil {
		if r := *p.Radius; r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r) {
			radius = r
		} else {
			fields["radius"] = "Must be greater than 0"
		}
	}

	var expiresAt time.Time
	if strings.TrimSpace(p.ExpiresAt) == "" {
		fields["expiresAt"] = "This field is required"
	} else if t, err := ParseExpiry(p.ExpiresAt); err != nil {
		fields["expiresAt"] = "Must be an RFC 3339 timestamp or YYYY-MM-DD date"
	} else {
		expiresAt = t
	}

	if len(fields) > 0 {
		return nil, fields
	}

	now := time.Now().UTC()
	return &Item{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(p.Description),
		Type:        typ,
		Category:    category,
		Location:    orb.Point{*p.Longitude, *p.Latitude},
		Radius:      radius,
		OwnerID:     ownerID,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ParseExpiry accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date
// (midnight UTC).
func ParseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiry %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Longitude returns the X coordinate.
func (i *Item) Longitude() float64 { return i.Location.X() }

// Latitude returns the Y coordinate.
func (i *Item) Latitude() float64 { return i.Location.Y() }

// State derives the lifecycle state.
func (i *Item) State() State {
	switch {
	case i.IsResolved:
		return StateResolved
	case i.ClaimerID != nil:
		return StateClaimed
	default:
		return StateOpen
	}
}

// IsOwner reports whether userID posted the item.
func (i *Item) IsOwner(userID uuid.UUID) bool { return i.OwnerID == userID }

// IsClaimer reports whether userID claimed the item.
func (i *Item) IsClaimer(userID uuid.UUID) bool {
	return i.ClaimerID != nil && *i.ClaimerID == userID
}

// MarkClaimed records the claim. Preconditions are checked by the caller.
func (i *Item) MarkClaimed(claimerID uuid.UUID, at time.Time) {
	id := claimerID
	t := at
	i.ClaimerID = &id
	i.ClaimedAt = &t
	i.UpdatedAt = at
}

// MarkResolved flips the item to resolved. It never reverts.
func (i *Item) MarkResolved(at time.Time) {
	i.IsResolved = true
	i.UpdatedAt = at
}

func validLatitude(v float64) bool  { return v >= -90 && v <= 90 }
func validLongitude(v float64) bool { return v >= -180 && v <= 180 }
