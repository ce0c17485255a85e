package internal

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/zap"

	"github.com/swf-go/decider/internal/common/metrics"
)

// Worker is the single-threaded poll/dispatch/submit loop of spec §4.8: one
// goroutine, one task list, running until ctx is canceled.
type Worker struct {
	Transport Transport
	Registry  *Registry
	Domain    string
	TaskList  string
	Identity  string
	Logger    *zap.Logger
	Scope     tally.Scope
}

// Run polls task list TaskList in domain Domain until ctx is canceled,
// dispatching each decision task to the matching registered workflow type
// and submitting the resulting decisions. A task for an unregistered
// (name, version) is counted and dropped rather than treated as fatal,
// since another worker process may own that type (spec §4.8, §7).
func (w *Worker) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scope := w.Scope
	if scope == nil {
		scope = tally.NoopScope
	}
	identity := w.Identity
	if identity == "" {
		identity = defaultIdentity()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		task, err := PollDecisionTask(ctx, w.Transport, w.Domain, w.TaskList, identity, logger, scope)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("poll for decision task failed", zap.Error(err))
			continue
		}
		if task == nil {
			continue
		}

		wt, ok := w.Registry.Lookup(task.WorkflowType)
		if !ok {
			scope.Counter(metrics.UnrecognizedWorkflowCounter).Inc(1)
			logger.Warn("decision task for unregistered workflow type, dropping",
				zap.String("type", task.WorkflowType.String()),
				zap.String("workflow_id", task.WorkflowID))
			continue
		}

		start := time.Now()
		if err := Run(ctx, task, wt, w.Transport, logger); err != nil {
			logger.Error("decision run failed", zap.Error(err),
				zap.String("workflow_id", task.WorkflowID),
				zap.String("run_id", task.RunID))
		}
		scope.Timer(metrics.DecisionLatencyTimer).Record(time.Since(start))
	}
}
