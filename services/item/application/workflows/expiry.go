// Package workflows holds the Temporal workflows and activities of the item
// context.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// ExpirySweepWorkflowID is the fixed id of the cron execution, so that every
// process can ask for it at startup without scheduling duplicates.
const ExpirySweepWorkflowID = "localloop-expiry-sweep"

// Sweeper deletes up to limit expired open items and reports how many went.
type Sweeper interface {
	SweepExpired(ctx context.Context, limit int) (int, error)
}

// SweepActivities exposes a Sweeper as a Temporal activity.
type SweepActivities struct {
	Sweeper Sweeper
}

// SweepExpiredItems runs one sweep batch.
func (a *SweepActivities) SweepExpiredItems(ctx context.Context, limit int) (int, error) {
	return a.Sweeper.SweepExpired(ctx, limit)
}

// ExpirySweepWorkflow removes expired items in batches of limit until a batch
// comes back short. It returns the total removed.
func ExpirySweepWorkflow(ctx workflow.Context, limit int) (int, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    3,
		},
	})

	var a *SweepActivities
	total := 0
	for {
		var n int
		if err := workflow.ExecuteActivity(ctx, a.SweepExpiredItems, limit).Get(ctx, &n); err != nil {
			return total, err
		}
		total += n
		if n < limit || limit <= 0 {
			break
		}
	}
	workflow.GetLogger(ctx).Info("expiry sweep finished", "removed", total)
	return total, nil
}

// Register adds the sweep workflow and activities to w.
func Register(w worker.Registry, sweeper Sweeper) {
	w.RegisterWorkflow(ExpirySweepWorkflow)
	w.RegisterActivity(&SweepActivities{Sweeper: sweeper})
}
