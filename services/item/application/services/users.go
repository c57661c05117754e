package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/services/item/domain/models"
	userservices "github.com/theEquinoxDev/LocalLoop/services/user/application/services"
	usermodels "github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
	userdomainsvcs "github.com/theEquinoxDev/LocalLoop/services/user/domain/services"
)

// userLedger credits item rewards through the user context.
type userLedger struct {
	users *userservices.UserService
}

func (l userLedger) Credit(ctx context.Context, userID uuid.UUID, reason models.RewardReason) (*models.Standing, error) {
	award, err := userdomainsvcs.AwardFor(usermodels.Reason(reason))
	if err != nil {
		return nil, err
	}
	u, err := l.users.Credit(ctx, userID, award.Reason)
	if err != nil {
		return nil, err
	}
	return &models.Standing{
		UserID:        u.ID,
		PointsEarned:  award.Points,
		Points:        u.Points,
		Level:         u.Level,
		ItemsPosted:   u.ItemsPosted,
		ItemsClaimed:  u.ItemsClaimed,
		ItemsReturned: u.ItemsReturned,
	}, nil
}

// userParties resolves owner and claimer projections through the user context.
type userParties struct {
	users *userservices.UserService
}

func (p userParties) Parties(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Party, error) {
	profiles, err := p.users.Profiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	out := make(map[uuid.UUID]models.Party, len(profiles))
	for id, u := range profiles {
		out[id] = models.Party{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
	}
	return out, nil
}
