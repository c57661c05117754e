package workflows

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.temporal.io/sdk/testsuite"
)

type scriptedSweeper struct {
	mu      sync.Mutex
	batches []int
	err     error
	calls   int
}

func (s *scriptedSweeper) SweepExpired(_ context.Context, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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

func TestExpirySweepWorkflow_DrainsUntilShortBatch(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	sweeper := &scriptedSweeper{batches: []int{2, 2, 1, 2}}
	env.RegisterActivity(&SweepActivities{Sweeper: sweeper})
	env.ExecuteWorkflow(ExpirySweepWorkflow, 2)

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow error: %v", err)
	}
	var total int
	if err := env.GetWorkflowResult(&total); err != nil {
		t.Fatalf("result: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if sweeper.calls != 3 {
		t.Errorf("calls = %d, want 3", sweeper.calls)
	}
}

func TestExpirySweepWorkflow_NothingExpired(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	env.RegisterActivity(&SweepActivities{Sweeper: &scriptedSweeper{}})
	env.ExecuteWorkflow(ExpirySweepWorkflow, 50)

	var total int
	if err := env.GetWorkflowResult(&total); err != nil {
		t.Fatalf("result: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestExpirySweepWorkflow_ActivityFailure(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	sweeper := &scriptedSweeper{err: errors.New("store down")}
	env.RegisterActivity(&SweepActivities{Sweeper: sweeper})
	env.ExecuteWorkflow(ExpirySweepWorkflow, 10)

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if env.GetWorkflowError() == nil {
		t.Fatal("expected workflow error")
	}
	if sweeper.calls != 3 {
		t.Errorf("calls = %d, want 3 attempts", sweeper.calls)
	}
}
