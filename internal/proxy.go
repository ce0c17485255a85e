package internal

import (
	"errors"
	"strconv"

	"github.com/swf-go/decider/converter"
)

// ErrBlocked is the suspend signal a Future returns from Result when the
// call it represents has not resolved in this decision run (spec §5:
// "every proxy call is either resolved or pending, and pending futures
// never complete in the same decision run"). Workflow code checks
// IsReady() (or compares the Result error to ErrBlocked via errors.Is)
// and returns early, letting the runner flush the accumulated decisions.
var ErrBlocked = errors.New("call has not resolved in this decision run")

// Future is the result handle a proxy invocation returns (spec §4.5). It
// implements design note (a) of spec §9: a sum-typed return that carries
// either the value, an error, or a pending marker, rather than blocking a
// goroutine.
type Future interface {
	IsReady() bool
	// Result decodes the resolved value into ptr. It returns ErrBlocked if
	// the call is still pending, or the call's own error/timeout failure if
	// it resolved unsuccessfully.
	Result(ptr interface{}) error
	// Err returns the call's terminal error, or nil if it succeeded or is
	// still pending.
	Err() error
	// OrderIndex is this call's position in the termination order, used to
	// break ties between multiple ready futures (spec §4.3).
	OrderIndex() int
}

type futureState int

const (
	futurePending futureState = iota
	futureResult
	futureError
)

type future struct {
	state      futureState
	raw        string
	orderIndex int
	err        error
	codec      converter.DataConverter
}

func (f *future) IsReady() bool { return f.state != futurePending }

func (f *future) Result(ptr interface{}) error {
	switch f.state {
	case futurePending:
		return ErrBlocked
	case futureError:
		return f.err
	default:
		if ptr == nil {
			return nil
		}
		return f.codec.FromValue(f.raw, ptr)
	}
}

func (f *future) Err() error {
	if f.state == futureError {
		return f.err
	}
	return nil
}

func (f *future) OrderIndex() int { return f.orderIndex }

func pendingFuture() Future { return &future{state: futurePending} }

// callAttempt tracks, via the persisted per-call context (spec §3's
// "per-call user-visible context strings", piggybacked for the engine's own
// replay bookkeeping per §3's closing sentence), how many times a call key
// has been attempted. This is what lets the same call key both resolve a
// failed attempt and be rescheduled for a further attempt, instead of the
// plain "is_error implies terminal" reading of spec §4.5 step 1 — necessary
// because the pack's reference implementation did not ship the file
// containing the original retry/attempt bookkeeping (see DESIGN.md).
func callAttempt(ctx *Context, k string) int {
	n, err := strconv.Atoi(ctx.CallContext(k))
	if err != nil {
		return 0
	}
	return n
}

func setCallAttempt(ctx *Context, k string, attempt int) {
	ctx.SetCallContext(k, strconv.Itoa(attempt))
}

// ActivityProxy represents one declared activity dependency (spec §4.5).
type ActivityProxy struct {
	Config ProxyConfig
}

// Call implements the scheduling protocol of spec §4.5, extended with the
// retry-schedule bookkeeping described in callAttempt's doc comment.
func (p ActivityProxy) Call(ctx *Context, args ...interface{}) Future {
	k := ctx.NextCallKey()
	return scheduleWithRetry(ctx, p.Config, k, func(input string) {
		ctx.ScheduleActivity(ScheduleActivityParams{
			CallKey:         k,
			Type:            p.Config.Target,
			Input:           input,
			TaskList:        p.Config.TaskList,
			ScheduleToStart: secondsOf(p.Config.ScheduleToStart),
			ScheduleToClose: secondsOf(p.Config.ScheduleToClose),
			StartToClose:    secondsOf(p.Config.StartToClose),
			Heartbeat:       secondsOf(p.Config.Heartbeat),
		})
	}, args...)
}

// WorkflowProxy represents one declared sub-workflow dependency (spec §4.5).
type WorkflowProxy struct {
	Config ProxyConfig
}

// Call implements the scheduling protocol of spec §4.5 for a child workflow.
func (p WorkflowProxy) Call(ctx *Context, args ...interface{}) Future {
	k := ctx.NextCallKey()
	return scheduleWithRetry(ctx, p.Config, k, func(input string) {
		ctx.ScheduleWorkflow(ScheduleWorkflowParams{
			CallKey:          k,
			Type:             p.Config.Target,
			Input:            input,
			TaskList:         p.Config.TaskList,
			WorkflowDuration: secondsOf(p.Config.ScheduleToClose),
			DecisionDuration: secondsOf(p.Config.StartToClose),
		})
	}, args...)
}

// scheduleWithRetry is the shared body of ActivityProxy.Call and
// WorkflowProxy.Call: step 1 resolves already-terminal calls (honoring the
// configured retry budget before treating a failure as terminal), step 2
// emits a retry timer when a delay is owed, and step 3 emits the schedule
// decision, consuming the rate-limit budget (spec §4.5).
func scheduleWithRetry(ctx *Context, cfg ProxyConfig, k string, schedule func(input string), args ...interface{}) Future {
	if cfg.InputCodec == nil {
		cfg.InputCodec = converter.Default
	}
	if cfg.ResultCodec == nil {
		cfg.ResultCodec = converter.Default
	}
	state := ctx.State()

	if state.IsResult(k) {
		raw, idx, _ := state.Result(k)
		return &future{state: futureResult, raw: raw, orderIndex: idx, codec: cfg.ResultCodec}
	}
	if state.IsTimeout(k) {
		idx, _ := state.Timeout(k)
		return &future{state: futureError, orderIndex: idx, err: &TimeoutError{CallKey: k}}
	}
	if state.IsError(k) {
		attempt := callAttempt(ctx, k)
		sched := cfg.retrySchedule()
		if attempt+1 < len(sched) {
			return retryAfterFailure(ctx, cfg, k, attempt, schedule, args...)
		}
		reason, idx, _ := state.Err(k)
		return &future{state: futureError, orderIndex: idx, err: &ActivityError{CallKey: k, Reason: reason}}
	}

	if state.IsRunning(k) {
		return pendingFuture()
	}

	// Brand new call: attempt 0.
	return attemptSchedule(ctx, cfg, k, schedule, args...)
}

// retryAfterFailure handles a call key whose most recent attempt failed but
// whose retry schedule has attempts remaining.
func retryAfterFailure(ctx *Context, cfg ProxyConfig, k string, attempt int, schedule func(input string), args ...interface{}) Future {
	delay := secondsOf(cfg.delayForAttempt(attempt + 1))
	if delay > 0 && !ctx.TimerReady(k) {
		if ctx.IsRunning(timerCallKey(k)) {
			return pendingFuture()
		}
		ctx.ScheduleTimer(k, delay)
		return pendingFuture()
	}
	setCallAttempt(ctx, k, attempt+1)
	return attemptSchedule(ctx, cfg, k, schedule, args...)
}

// attemptSchedule serializes args and emits the schedule decision for call
// key k, subject to the rate-limit budget (spec §4.5 step 3).
func attemptSchedule(ctx *Context, cfg ProxyConfig, k string, schedule func(input string), args ...interface{}) Future {
	if !ctx.tryConsumeScheduleBudget() {
		return pendingFuture()
	}

	input, err := cfg.InputCodec.ToArgs(args...)
	if err != nil {
		ctx.Fail(err.Error())
		return pendingFuture()
	}

	schedule(input)
	return pendingFuture()
}
