package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/pkg/events"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	itemEvents "github.com/theEquinoxDev/LocalLoop/services/item/domain/events"
)

type recordingCache struct {
	warmed  []uuid.UUID
	evicted []uuid.UUID
	err     error
}

func (c *recordingCache) WarmCache(_ context.Context, id uuid.UUID) error {
	c.warmed = append(c.warmed, id)
	return c.err
}

func (c *recordingCache) EvictCache(_ context.Context, id uuid.UUID) error {
	c.evicted = append(c.evicted, id)
	return c.err
}

func eventMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	msg, err := events.NewJSONMessage(uuid.New(), itemEvents.Version, payload)
	if err != nil {
		t.Fatalf("NewJSONMessage: %v", err)
	}
	return msg
}

func TestHandleItemEvent_WarmsAndEvicts(t *testing.T) {
	itemID, ownerID := uuid.New(), uuid.New()
	header := itemEvents.NewItemEvent(itemID, ownerID, time.Now())

	tests := []struct {
		topic     string
		payload   any
		wantWarm  bool
		wantEvict bool
	}{
		{itemEvents.TopicItemPosted, itemEvents.ItemPostedEvent{ItemEvent: header, Type: "found"}, true, false},
		{itemEvents.TopicItemClaimed, itemEvents.ItemClaimedEvent{ItemEvent: header, ClaimerID: uuid.New()}, true, false},
		{itemEvents.TopicItemResolved, itemEvents.ItemResolvedEvent{ItemEvent: header}, true, false},
		{itemEvents.TopicItemExpired, itemEvents.ItemExpiredEvent{ItemEvent: header}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			cache := &recordingCache{}
			h := handleItemEvent(tt.topic, cache, logger.Nop())
			if err := h(context.Background(), eventMessage(t, tt.payload)); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if got := len(cache.warmed) == 1 && cache.warmed[0] == itemID; got != tt.wantWarm {
				t.Errorf("warmed = %v, want warm %v", cache.warmed, tt.wantWarm)
			}
			if got := len(cache.evicted) == 1 && cache.evicted[0] == itemID; got != tt.wantEvict {
				t.Errorf("evicted = %v, want evict %v", cache.evicted, tt.wantEvict)
			}
		})
	}
}

func TestHandleItemEvent_CacheFailureIsAcked(t *testing.T) {
	cache := &recordingCache{err: errors.New("redis down")}
	h := handleItemEvent(itemEvents.TopicItemPosted, cache, logger.Nop())
	msg := eventMessage(t, itemEvents.NewItemEvent(uuid.New(), uuid.New(), time.Now()))
	if err := h(context.Background(), msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestHandleItemEvent_BadPayload(t *testing.T) {
	h := handleItemEvent(itemEvents.TopicItemPosted, &recordingCache{}, logger.Nop())
	if err := h(context.Background(), message.NewMessage("1", []byte("not json"))); err == nil {
		t.Fatal("expected decode error")
	}
}

type batchSweeper struct {
	batches []int
	err     error
	calls   int
}

func (s *batchSweeper) SweepExpired(_ context.Context, limit int) (int, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	if len(s.batches) == 0 {
		return 0, nil
	}
	n := min(s.batches[0], limit)
	s.batches = s.batches[1:]
	return n, nil
}

func TestSweepOnce(t *testing.T) {
	s := &batchSweeper{batches: []int{3, 3, 2}}
	if got := sweepOnce(context.Background(), s, 3, logger.Nop()); got != 8 {
		t.Errorf("removed = %d, want 8", got)
	}
	if s.calls != 3 {
		t.Errorf("calls = %d, want 3", s.calls)
	}

	failing := &batchSweeper{err: errors.New("boom")}
	if got := sweepOnce(context.Background(), failing, 3, logger.Nop()); got != 0 {
		t.Errorf("removed = %d, want 0", got)
	}
	if failing.calls != 1 {
		t.Errorf("calls = %d, want 1", failing.calls)
	}
}
