package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
)

// LocationResponse is a GeoJSON point; coordinates are [lng, lat].
type LocationResponse struct {
	Type        string     `json:"type"        example:"Point"`
	Coordinates [2]float64 `json:"coordinates"`
} // @name LocationResponse

// PartyResponse is the public projection of an owner or claimer.
type PartyResponse struct {
	ID    uuid.UUID `json:"_id"   example:"123e4567-e89b-12d3-a456-426614174000"`
	Name  string    `json:"name"  example:"Asha Rao"`
	Email string    `json:"email" example:"asha@example.com"`
	Phone string    `json:"phone" example:"+91 98450 00000"`
} // @name PartyResponse

// ItemResponse is the external representation of an item.
type ItemResponse struct {
	ID          uuid.UUID        `json:"_id"                   example:"550e8400-e29b-41d4-a716-446655440000"`
	Title       string           `json:"title"                 example:"Blue umbrella"`
	Description string           `json:"description,omitempty" example:"Left at the bus stop"`
	Type        string           `json:"type"                  example:"found" enums:"lost,found"`
	Category    string           `json:"category"              example:"accessories"`
	ImageURL    string           `json:"imageUrl,omitempty"    example:"http://localhost:9000/localloop-items/items/550e8400-e29b-41d4-a716-446655440000.jpg"`
	Location    LocationResponse `json:"location"`
	Radius      float64          `json:"radius"                example:"200"`
	Owner       PartyResponse    `json:"owner"`
	Claimer     *PartyResponse   `json:"claimer,omitempty"`
	ClaimedAt   *time.Time       `json:"claimedAt,omitempty"`
	IsResolved  bool             `json:"isResolved"`
	ExpiresAt   time.Time        `json:"expiresAt"   example:"2024-02-15T00:00:00Z"`
	CreatedAt   time.Time        `json:"createdAt"   example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time        `json:"updatedAt"   example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// RewardResponse is a user's standing right after being credited.
type RewardResponse struct {
	UserID        uuid.UUID `json:"userId"`
	PointsEarned  int       `json:"pointsEarned"  example:"50"`
	Points        int       `json:"points"        example:"150"`
	Level         int       `json:"level"         example:"1"`
	ItemsPosted   int       `json:"itemsPosted"   example:"2"`
	ItemsClaimed  int       `json:"itemsClaimed"  example:"0"`
	ItemsReturned int       `json:"itemsReturned" example:"1"`
} // @name RewardResponse

// ItemRewardResponse is an item plus the acting user's reward.
type ItemRewardResponse struct {
	ItemResponse
	Reward *RewardResponse `json:"reward,omitempty"`
} // @name ItemRewardResponse

// ResolveRewards holds the owner's and, when claimed, the claimer's reward.
type ResolveRewards struct {
	Owner   *RewardResponse `json:"owner,omitempty"`
	Claimer *RewardResponse `json:"claimer,omitempty"`
} // @name ResolveRewards

// ResolveResponse is returned by PATCH /api/items/{id}/resolve.
type ResolveResponse struct {
	Message string         `json:"message" example:"Item resolved"`
	Rewards ResolveRewards `json:"rewards"`
} // @name ResolveResponse

func newItemResponse(v *models.ItemView) ItemResponse {
	resp := ItemResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Type:        string(v.Type),
		Category:    v.Category,
		ImageURL:    v.ImageURL,
		Location:    LocationResponse{Type: "Point", Coordinates: [2]float64{v.Longitude(), v.Latitude()}},
		Radius:      v.Radius,
		Owner:       newPartyResponse(v.Owner),
		ClaimedAt:   v.ClaimedAt,
		IsResolved:  v.IsResolved,
		ExpiresAt:   v.ExpiresAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.Claimer != nil {
		c := newPartyResponse(*v.Claimer)
		resp.Claimer = &c
	}
	return resp
}

func newItemResponses(views []*models.ItemView) []ItemResponse {
	out := make([]ItemResponse, len(views))
	for i, v := range views {
		out[i] = newItemResponse(v)
	}
	return out
}

func newPartyResponse(p models.Party) PartyResponse {
	return PartyResponse{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func newRewardResponse(s *models.Standing) *RewardResponse {
	if s == nil {
		return nil
	}
	return &RewardResponse{
		UserID:        s.UserID,
		PointsEarned:  s.PointsEarned,
		Points:        s.Points,
		Level:         s.Level,
		ItemsPosted:   s.ItemsPosted,
		ItemsClaimed:  s.ItemsClaimed,
		ItemsReturned: s.ItemsReturned,
	}
}
