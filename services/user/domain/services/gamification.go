// Package services contains stateless domain services for the user bounded
// context: the gamification rules that turn lifecycle events into points,
// levels and rank titles.
package services

import (
	"fmt"
	"time"

	userdomain "github.com/theEquinoxDev/LocalLoop/services/user/domain"
	"github.com/theEquinoxDev/LocalLoop/services/user/domain/models"
)

// PointsPerLevel is the number of points between consecutive levels.
const PointsPerLevel = 500

// Point values per lifecycle event.
const (
	PointsPostItem      = 50
	PointsClaimItem     = 100
	PointsConfirmReturn = 200
)

// Rank titles by minimum level, highest first.
var ranks = []struct {
	minLevel int
	title    string
}{
	{20, "Legend"},
	{15, "Master"},
	{10, "Expert"},
	{5, "Helper"},
}

// CalculateLevel returns floor(points/500)+1. Negative points count as zero.
func CalculateLevel(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// PointsToNextLevel returns how many points are missing to reach the next level.
func PointsToNextLevel(points int) int {
	if points < 0 {
		points = 0
	}
	return CalculateLevel(points)*PointsPerLevel - points
}

// RankTitle maps a level to its display title.
func RankTitle(level int) string {
	for _, r := range ranks {
		if level >= r.minLevel {
			return r.title
		}
	}
	return "Beginner"
}

// AwardFor returns the point award for reason.
func AwardFor(reason models.Reason) (models.Award, error) {
	switch reason {
	case models.ReasonPostItem:
		return models.Award{Reason: reason, Points: PointsPostItem, Counter: models.CounterItemsPosted}, nil
	case models.ReasonClaimItem:
		return models.Award{Reason: reason, Points: PointsClaimItem, Counter: models.CounterItemsClaimed}, nil
	case models.ReasonConfirmReturn:
		return models.Award{Reason: reason, Points: PointsConfirmReturn, Counter: models.CounterItemsReturned}, nil
	case models.ReasonReturnCompleted:
		return models.Award{Reason: reason, Points: PointsConfirmReturn, Counter: models.CounterNone}, nil
	default:
		return models.Award{}, fmt.Errorf("%w: %q", userdomain.ErrUnknownReward, reason)
	}
}

// ApplyAward adds the award to u, recomputes the level and bumps the counter.
// Callers are responsible for serializing concurrent applications to one user.
func ApplyAward(u *models.User, a models.Award, at time.Time) {
	u.Points += a.Points
	if u.Points < 0 {
		u.Points = 0
	}
	u.Level = CalculateLevel(u.Points)
	switch a.Counter {
	case models.CounterItemsPosted:
		u.ItemsPosted++
	case models.CounterItemsClaimed:
		u.ItemsClaimed++
	case models.CounterItemsReturned:
		u.ItemsReturned++
	}
	u.UpdatedAt = at
}
