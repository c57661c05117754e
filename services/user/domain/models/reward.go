package models

// Reason names the lifecycle event a point award is for.
type Reason string

const (
	ReasonPostItem        Reason = "post_item"
	ReasonClaimItem       Reason = "claim_item"
	ReasonConfirmReturn   Reason = "confirm_return"   // credited to the item's owner
	ReasonReturnCompleted Reason = "return_completed" // credited to the claimer
)

// Counter is the activity counter an award increments alongside points.
type Counter int

const (
	CounterNone Counter = iota
	CounterItemsPosted
	CounterItemsClaimed
	CounterItemsReturned
)

// Award is a point grant plus the counter it bumps.
type Award struct {
	Reason  Reason
	Points  int
	Counter Counter
}
