package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
)

// UserResponse is the public view of a user. The password hash is never included.
type UserResponse struct {
	ID            uuid.UUID `json:"_id"           example:"123e4567-e89b-12d3-a456-426614174000"`
	Name          string    `json:"name"          example:"Asha Rao"`
	Email         string    `json:"email"         example:"asha@example.com"`
	Phone         string    `json:"phone"         example:"+91 98450 00000"`
	Points        int       `json:"points"        example:"150"`
	Level         int       `json:"level"         example:"1"`
	ItemsPosted   int       `json:"itemsPosted"   example:"1"`
	ItemsClaimed  int       `json:"itemsClaimed"  example:"1"`
	ItemsReturned int       `json:"itemsReturned" example:"0"`
	CreatedAt     time.Time `json:"createdAt"     example:"2024-01-15T10:30:00Z"`
	UpdatedAt     time.Time `json:"updatedAt"     example:"2024-01-15T10:30:00Z"`
} // @name UserResponse

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserResponse
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsImtpZCI6ImRlZmF1bHQifQ..."`
} // @name AuthResponse

// MeResponse adds the derived rank fields to the user view.
type MeResponse struct {
	UserResponse
	RankTitle         string `json:"rankTitle"         example:"Beginner"`
	PointsToNextLevel int    `json:"pointsToNextLevel" example:"350"`
} // @name MeResponse

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Points:        u.Points,
		Level:         u.Level,
		ItemsPosted:   u.ItemsPosted,
		ItemsClaimed:  u.ItemsClaimed,
		ItemsReturned: u.ItemsReturned,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
