package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/pkg/app"
	"github.com/theEquinoxDev/LocalLoop/pkg/config"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	itemWorkflows "github.com/theEquinoxDev/LocalLoop/services/item/application/workflows"
	itemEvents "github.com/theEquinoxDev/LocalLoop/services/item/domain/events"
)

// itemCache is the part of the item service the event handlers drive.
type itemCache interface {
	WarmCache(ctx context.Context, id uuid.UUID) error
	EvictCache(ctx context.Context, id uuid.UUID) error
}

// registerSubscribers follows every item topic. Add new topics to
// itemEvents.Topics as the item context publishes them.
func registerSubscribers(ctx context.Context, a *app.Application, items itemCache) error {
	for _, topic := range itemEvents.Topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handleItemEvent(topic, items, a.Logger))
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}

		// Drain subscriber errors so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", itemEvents.Topics)
	return nil
}

// handleItemEvent keeps the Redis read model in step with the store.
// Handlers must be idempotent; EventBus retries failed deliveries.
// Cache work is best-effort, so failures are logged and the message acked.
func handleItemEvent(topic string, items itemCache, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt itemEvents.ItemEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode %s: %w", topic, err)
		}
		if evt.ItemID == uuid.Nil {
			log.WarnContext(ctx, "item event without item id", "topic", topic, "event_id", evt.EventID)
			return nil
		}

		var err error
		if topic == itemEvents.TopicItemExpired {
			err = items.EvictCache(ctx, evt.ItemID)
		} else {
			err = items.WarmCache(ctx, evt.ItemID)
		}
		if err != nil {
			log.WarnContext(ctx, "cache update failed", "topic", topic, "item_id", evt.ItemID, "error", err)
			return nil
		}
		log.DebugContext(ctx, "cache updated", "topic", topic, "item_id", evt.ItemID)
		return nil
	}
}

// runSweepTicker runs the expiry sweep on cfg.ExpirySweepInterval when
// Temporal is disabled. Runs until ctx is cancelled.
func runSweepTicker(ctx context.Context, cfg *config.Config, sweeper itemWorkflows.Sweeper, log logger.Logger) {
	interval := cfg.ExpirySweepInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("expiry sweep scheduled", "interval", interval, "batch", cfg.ExpirySweepBatch)
	for {
		select {
		case <-ctx.Done():
			log.Info("expiry sweep shutting down")
			return
		case <-ticker.C:
			sweepOnce(ctx, sweeper, cfg.ExpirySweepBatch, log)
		}
	}
}

// sweepOnce drains expired items batch by batch.
func sweepOnce(ctx context.Context, sweeper itemWorkflows.Sweeper, batch int, log logger.Logger) int {
	total := 0
	for {
		n, err := sweeper.SweepExpired(ctx, batch)
		total += n
		if err != nil {
			log.ErrorContext(ctx, "expiry sweep failed", "removed", total, "error", err)
			return total
		}
		if n < batch || batch <= 0 {
			break
		}
	}
	if total > 0 {
		log.InfoContext(ctx, "expiry sweep finished", "removed", total)
	}
	return total
}
