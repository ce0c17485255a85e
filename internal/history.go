package internal

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/zap"

	"github.com/swf-go/decider/internal/common/backoff"
	"github.com/swf-go/decider/internal/common/metrics"
)

// pagePolicy bounds a single history page fetch to 7 retries after the
// first attempt (spec §4.2 step 2), separately from the worker loop's
// indefinite long-poll retry.
var pagePolicy = backoff.ConstantPolicy{Delay: 200 * time.Millisecond, MaxAttempts: 7}

// pollPolicy never exhausts: a transient transport error on the long poll
// itself is retried forever while ctx is live (spec §4.2 step 1, §4.8). A
// long poll that returns no task is not retried here; PollDecisionTask
// returns (nil, nil) for it and the worker loop polls again.
var pollPolicy = backoff.UnboundedPolicy{Delay: time.Second}

// PollDecisionTask implements the four-step algorithm of spec §4.2: long
// poll for a task, then page through its history to completion, retrying
// each page fetch up to 7 times before raising a PaginationFault. It
// returns (nil, nil) when the long poll answers with no task, so the worker
// loop can distinguish "no task, keep polling" from a real error. If ctx is
// canceled while long-polling, it returns a non-nil error.
func PollDecisionTask(ctx context.Context, transport Transport, domain, taskList, identity string, logger *zap.Logger, scope tally.Scope) (*DecisionTask, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if scope == nil {
		scope = tally.NoopScope
	}

	var first *DecisionTaskPage
	err := backoff.Retry(ctx, func() error {
		page, err := transport.PollForDecisionTask(ctx, domain, taskList, identity, "")
		if err != nil {
			scope.Counter(metrics.DecisionsPollErrorCounter).Inc(1)
			return err
		}
		first = page
		return nil
	}, pollPolicy, func(error) bool { return ctx.Err() == nil })
	if err != nil {
		return nil, err
	}
	if first == nil || first.TaskToken == "" {
		return nil, nil
	}

	scope.Counter(metrics.DecisionsTaskCounter).Inc(1)

	events := append([]Event(nil), first.Events...)
	taskToken, nextPageToken := first.TaskToken, first.NextPageToken

	for nextPageToken != "" {
		var page *DecisionTaskPage
		attempts := 0
		err := backoff.Retry(ctx, func() error {
			attempts++
			p, err := transport.PollForDecisionTask(ctx, domain, taskList, identity, nextPageToken)
			if err != nil {
				scope.Counter(metrics.DecisionsPaginationRetryCounter).Inc(1)
				return err
			}
			page = p
			return nil
		}, pagePolicy, nil)
		if err != nil {
			scope.Counter(metrics.DecisionsPaginationFaultCounter).Inc(1)
			return nil, &PaginationFault{TaskToken: taskToken, Attempts: attempts, Cause: err}
		}

		events = append(events, page.Events...)
		nextPageToken = page.NextPageToken
	}

	return &DecisionTask{
		TaskToken:    taskToken,
		Domain:       domain,
		TaskList:     taskList,
		WorkflowID:   first.WorkflowID,
		RunID:        first.RunID,
		WorkflowType: first.WorkflowType,
		Events:       events,
	}, nil
}
