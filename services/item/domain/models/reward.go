package models

import "github.com/google/uuid"

// RewardReason names the lifecycle event points are credited for.
type RewardReason string

const (
	RewardPostItem        RewardReason = "post_item"
	RewardClaimItem       RewardReason = "claim_item"
	RewardConfirmReturn   RewardReason = "confirm_return"
	RewardReturnCompleted RewardReason = "return_completed"
)

// Standing is a user's gamification totals right after an award.
type Standing struct {
	UserID        uuid.UUID
	PointsEarned  int
	Points        int
	Level         int
	ItemsPosted   int
	ItemsClaimed  int
	ItemsReturned int
}
