package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/services/item/domain/events"
)

func TestNewItemEvent(t *testing.T) {
	itemID, ownerID := uuid.New(), uuid.New()
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	a := events.NewItemEvent(itemID, ownerID, at)
	b := events.NewItemEvent(itemID, ownerID, at)
	if a.EventID == uuid.Nil || a.EventID == b.EventID {
		t.Fatal("expected distinct non-zero event ids")
	}
	if a.Version != events.Version || a.ItemID != itemID || a.OwnerID != ownerID || !a.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event %+v", a)
	}
}

func TestItemEvents_JSONFieldNames(t *testing.T) {
	base := events.NewItemEvent(uuid.New(), uuid.New(), time.Now().UTC())
	claimer := uuid.New()

	tests := []struct {
		name   string
		event  any
		fields []string
	}{
		{"posted", events.ItemPostedEvent{ItemEvent: base, Type: "found"},
			[]string{"event_id", "version", "item_id", "owner_id", "occurred_at", "type", "category", "lng", "lat"}},
		{"claimed", events.ItemClaimedEvent{ItemEvent: base, ClaimerID: claimer},
			[]string{"item_id", "claimer_id"}},
		{"resolved", events.ItemResolvedEvent{ItemEvent: base, ClaimerID: &claimer},
			[]string{"item_id", "claimer_id"}},
		{"expired", events.ItemExpiredEvent{ItemEvent: base, ImageURL: "http://img"},
			[]string{"item_id", "image_url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("json.Marshal failed: %v", err)
			}
			var raw map[string]any
			if err := json.Unmarshal(data, &raw); err != nil {
				t.Fatalf("unmarshal to map failed: %v", err)
			}
			for _, field := range tt.fields {
				if _, ok := raw[field]; !ok {
					t.Errorf("expected JSON field %q not found in: %s", field, data)
				}
			}
		})
	}
}

func TestResolvedEvent_OmitsMissingClaimer(t *testing.T) {
	data, _ := json.Marshal(events.ItemResolvedEvent{ItemEvent: events.NewItemEvent(uuid.New(), uuid.New(), time.Now())})
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["claimer_id"]; ok {
		t.Fatalf("claimer_id should be omitted, got %s", data)
	}
}

func TestTopics(t *testing.T) {
	want := map[string]bool{"item.posted": true, "item.claimed": true, "item.resolved": true, "item.expired": true}
	if len(events.Topics) != len(want) {
		t.Fatalf("expected %d topics, got %v", len(want), events.Topics)
	}
	for _, topic := range events.Topics {
		if !want[topic] {
			t.Errorf("unexpected topic %q", topic)
		}
	}
}
