package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/theEquinoxDev/LocalLoop"

// Metrics holds the domain counters exported on /metrics. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	itemsPosted    metric.Int64Counter
	itemsClaimed   metric.Int64Counter
	itemsResolved  metric.Int64Counter
	itemsExpired   metric.Int64Counter
	pointsAwarded  metric.Int64Counter
	claimConflicts metric.Int64Counter
	rewardFailures metric.Int64Counter
}

// NewMetrics registers the domain instruments on the global meter provider,
// so call it after Setup.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error
	if m.itemsPosted, err = meter.Int64Counter("localloop.items.posted",
		metric.WithDescription("Items reported, by type")); err != nil {
		return nil, err
	}
	if m.itemsClaimed, err = meter.Int64Counter("localloop.items.claimed",
		metric.WithDescription("Successful claims")); err != nil {
		return nil, err
	}
	if m.itemsResolved, err = meter.Int64Counter("localloop.items.resolved",
		metric.WithDescription("Items confirmed returned")); err != nil {
		return nil, err
	}
	if m.itemsExpired, err = meter.Int64Counter("localloop.items.expired",
		metric.WithDescription("Open items removed by the expiry sweep")); err != nil {
		return nil, err
	}
	if m.pointsAwarded, err = meter.Int64Counter("localloop.points.awarded",
		metric.WithDescription("Gamification points credited, by reason")); err != nil {
		return nil, err
	}
	if m.claimConflicts, err = meter.Int64Counter("localloop.claims.conflicts",
		metric.WithDescription("Claims lost to a concurrent claimer")); err != nil {
		return nil, err
	}
	if m.rewardFailures, err = meter.Int64Counter("localloop.rewards.failed",
		metric.WithDescription("Rewards not credited after a committed lifecycle change, by reason")); err != nil {
		return nil, err
	}
	return m, nil
}

// ItemPosted counts a newly reported item of the given type (lost|found).
func (m *Metrics) ItemPosted(ctx context.Context, itemType string) {
	if m == nil {
		return
	}
	m.itemsPosted.Add(ctx, 1, metric.WithAttributes(attribute.String("type", itemType)))
}

func (m *Metrics) ItemClaimed(ctx context.Context) {
	if m == nil {
		return
	}
	m.itemsClaimed.Add(ctx, 1)
}

func (m *Metrics) ItemResolved(ctx context.Context) {
	if m == nil {
		return
	}
	m.itemsResolved.Add(ctx, 1)
}

func (m *Metrics) ItemsExpired(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.itemsExpired.Add(ctx, int64(n))
}

// PointsAwarded records points credited for reason (post, claim, return).
func (m *Metrics) PointsAwarded(ctx context.Context, reason string, points int) {
	if m == nil || points <= 0 {
		return
	}
	m.pointsAwarded.Add(ctx, int64(points), metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Metrics) ClaimConflict(ctx context.Context) {
	if m == nil {
		return
	}
	m.claimConflicts.Add(ctx, 1)
}

// RewardFailed counts a credit for reason that was lost after the lifecycle
// change committed.
func (m *Metrics) RewardFailed(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.rewardFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
