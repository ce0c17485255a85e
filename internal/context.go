package internal

import (
	"context"

	"go.uber.org/zap"
)

// Context is the per-decision mutable surface exposed (indirectly, through
// proxies) to user workflow code (spec §4.4). It wraps the projected
// DecisionState with query methods, accumulates outgoing decisions, and
// owns the terminal/non-terminal distinction: once a terminal decision
// (fail/finish/restart) is appended the batch is overwritten with just that
// one decision and the context is closed.
type Context struct {
	transport Transport
	logger    *zap.Logger

	domain   string
	taskList string
	state    *DecisionState

	decisions []Decision
	closed    bool
	flushed   bool

	// callContext holds per-call user-visible context strings, persisted in
	// the decider context blob's json part alongside the engine's own
	// replay helpers (spec §3).
	callContext map[string]string

	// globalContext is the opaque, user-overridable tail of the persisted
	// context blob (spec §3, §6).
	globalContext string

	// rateBudget is the descending-counter rate-limit guard of spec §4.5:
	// only the first RateLimit not-yet-scheduled calls in a decision run may
	// emit schedule decisions.
	rateBudget int

	// callKeyCounter is the per-workflow auto-incremented counter call keys
	// are derived from (spec §3).
	callKeyCounter int
}

// NewContext builds a Context around a projected DecisionState, restoring
// the per-call context strings and the global context tail from the
// previous decision's persisted blob (spec §3, §6). callCounter is the
// value the call-key counter starts from.
func NewContext(transport Transport, logger *zap.Logger, domain, taskList string, state *DecisionState, callContext map[string]string, callCounter int, globalContext string) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	if callContext == nil {
		callContext = make(map[string]string)
	}
	return &Context{
		transport:      transport,
		logger:         logger,
		domain:         domain,
		taskList:       taskList,
		state:          state,
		callContext:    callContext,
		callKeyCounter: callCounter,
		globalContext:  globalContext,
	}
}

// State exposes the underlying projected DecisionState for query methods
// proxies consult directly.
func (c *Context) State() *DecisionState { return c.state }

// SetRateLimit initializes the descending schedule-decision budget for this
// decision run (spec §4.5), from the workflow type's ExecutionConfig.
func (c *Context) SetRateLimit(n int) { c.rateBudget = n }

// tryConsumeScheduleBudget reports whether a fresh schedule decision may be
// emitted, decrementing the remaining budget if so. Completed/already-
// scheduled calls never call this (spec §4.5: "Completed / already-scheduled
// calls do not consume budget").
func (c *Context) tryConsumeScheduleBudget() bool {
	if c.rateBudget <= 0 {
		return false
	}
	c.rateBudget--
	return true
}

// NextCallKey returns the next deterministic call key from the per-workflow
// counter (spec §3: "auto-incremented counter per decision run"). Replaying
// the same workflow code over the same history yields the same sequence of
// calls to NextCallKey, and therefore the same keys.
func (c *Context) NextCallKey() string {
	k := activityCallKey(c.callKeyCounter)
	c.callKeyCounter++
	return k
}

// Closed reports whether a terminal decision has already been appended.
func (c *Context) Closed() bool { return c.closed }

// IsRunning, IsResult, IsError, IsTimeout, TimerReady are pure queries on
// the projected state (spec §4.4).
func (c *Context) IsRunning(k string) bool { return c.state.IsRunning(k) }
func (c *Context) IsResult(k string) bool  { return c.state.IsResult(k) }
func (c *Context) IsError(k string) bool   { return c.state.IsError(k) }
func (c *Context) IsTimeout(k string) bool { return c.state.IsTimeout(k) }
func (c *Context) TimerReady(k string) bool { return c.state.TimerReady(k) }

// Result, Err, Timeout surface the resolved DecisionState accessors.
func (c *Context) Result(k string) (string, int, error)  { return c.state.Result(k) }
func (c *Context) Err(k string) (string, int, error)     { return c.state.Err(k) }
func (c *Context) Timeout(k string) (int, error)         { return c.state.Timeout(k) }

// CallContext returns the persisted user-visible context string for call
// key k, or "" if none was set.
func (c *Context) CallContext(k string) string { return c.callContext[k] }

// SetCallContext stores a user-visible context string for call key k, to be
// persisted across decisions via the context blob.
func (c *Context) SetCallContext(k, v string) { c.callContext[k] = v }

// GlobalContext returns the user-overridable global context tail.
func (c *Context) GlobalContext() string { return c.globalContext }

// SetGlobalContext overrides the user-overridable global context tail.
func (c *Context) SetGlobalContext(v string) { c.globalContext = v }

func (c *Context) append(d Decision) {
	if c.closed {
		return
	}
	c.decisions = append(c.decisions, d)
}

// ScheduleTimer appends a start_timer decision for call key k (spec §4.4).
// k is the plain call key; the timer namespace suffix is applied here.
func (c *Context) ScheduleTimer(k string, delaySeconds int64) {
	if c.closed {
		return
	}
	c.append(Decision{
		Kind:               DecisionStartTimer,
		TimerID:            timerCallKey(k),
		StartToFireTimeout: durationSeconds(delaySeconds),
	})
}

// ScheduleActivityParams bundles schedule_activity_task's fields (spec §4.4:
// "schedule_activity(k, name, version, input, task_list?, …four timeouts)").
type ScheduleActivityParams struct {
	CallKey                string
	Type                   TypeID
	Input                  string
	TaskList               string
	ScheduleToStart        int64
	ScheduleToClose        int64
	StartToClose           int64
	Heartbeat              int64
}

// ScheduleActivity appends a schedule_activity_task decision.
func (c *Context) ScheduleActivity(p ScheduleActivityParams) {
	if c.closed {
		return
	}
	c.append(Decision{
		Kind:                   DecisionScheduleActivityTask,
		ActivityCallKey:        p.CallKey,
		ActivityType:           p.Type,
		ActivityInput:          p.Input,
		ActivityTaskList:       p.TaskList,
		ScheduleToStartTimeout: durationSeconds(p.ScheduleToStart),
		ScheduleToCloseTimeout: durationSeconds(p.ScheduleToClose),
		StartToCloseTimeout:    durationSeconds(p.StartToClose),
		HeartbeatTimeout:       durationSeconds(p.Heartbeat),
	})
}

// ScheduleWorkflowParams bundles start_child_workflow_execution's fields.
type ScheduleWorkflowParams struct {
	CallKey          string
	Type             TypeID
	Input            string
	TaskList         string
	WorkflowDuration int64
	DecisionDuration int64
}

// ScheduleWorkflow appends a start_child_workflow_execution decision, using
// the sub-workflow call-key namespace for the service-visible workflow id.
func (c *Context) ScheduleWorkflow(p ScheduleWorkflowParams) {
	if c.closed {
		return
	}
	c.append(Decision{
		Kind:                  DecisionStartChildWorkflowExecution,
		ChildWorkflowID:       wrapWorkflowID(p.CallKey),
		ChildType:             p.Type,
		ChildInput:            p.Input,
		ChildTaskList:         p.TaskList,
		ChildWorkflowDuration: durationSeconds(p.WorkflowDuration),
		ChildDecisionDuration: durationSeconds(p.DecisionDuration),
	})
}

// Fail replaces the batch with a single fail_workflow_execution decision,
// truncating reason to 256 bytes, then marks the context closed (spec §4.4).
// Flush submits the batch.
func (c *Context) Fail(reason string) {
	if c.closed {
		return
	}
	c.decisions = []Decision{{
		Kind:   DecisionFailWorkflowExecution,
		Reason: truncateBytes(reason, MaxReasonBytes),
	}}
	c.closed = true
}

// Finish replaces the batch with a single complete_workflow_execution
// decision, truncating result to 32768 bytes, then marks the context closed
// (spec §4.4). Flush submits the batch.
func (c *Context) Finish(result string) {
	if c.closed {
		return
	}
	c.decisions = []Decision{{
		Kind:   DecisionCompleteWorkflowExecution,
		Result: truncateBytes(result, MaxResultBytes),
	}}
	c.closed = true
}

// Restart replaces the batch with a single continue_as_new decision,
// truncating input to 32768 bytes and propagating task-list/durations/
// policy/tags from the started event, then marks the context closed
// (spec §4.4). Flush submits the batch.
func (c *Context) Restart(input string) {
	if c.closed {
		return
	}
	started := c.state.Started
	policy := ChildPolicyUnset
	var taskList string
	var wfDuration, decDuration int64
	var tags []string
	if started != nil {
		policy = started.ChildPolicy
		taskList = started.TaskList
		wfDuration = started.WorkflowDuration
		decDuration = started.DecisionDuration
		tags = started.Tags
	}
	policy, _ = validateChildPolicy(policy)
	c.decisions = []Decision{{
		Kind:                     DecisionContinueAsNewWorkflowExecution,
		ContinueInput:            truncateBytes(input, MaxInputBytes),
		ContinueTaskList:         taskList,
		ContinueWorkflowDuration: durationSeconds(wfDuration),
		ContinueDecisionDuration: durationSeconds(decDuration),
		ContinueChildPolicy:      policy,
		ContinueTags:             normalizeTags(tags),
	}}
	c.closed = true
}

// persistedContextBlob renders the execution_context string Flush submits,
// per the layout of spec §3/§6.
func (c *Context) persistedContextBlob() (string, error) {
	state := persistedState{
		EventToCall: c.state.EventToCall,
		CallContext: c.callContext,
		Running:     keysOf(c.state.Running),
		Results:     c.state.Results,
		Errors:      c.state.Errors,
		Timedout:    keysOf(c.state.Timedout),
		Fired:       keysOf(c.state.Fired),
		Order:       c.state.Order,
		CallCounter: c.callKeyCounter,
	}
	return concatContext(state, c.globalContext)
}

func keysOf(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Flush submits the accumulated decision batch to the transport exactly
// once; it is idempotent via the closed-after-flush flag. Transport failure
// is swallowed: the service will redeliver the decision task on timeout
// (spec §4.4, §7).
func (c *Context) Flush(ctx context.Context, taskToken string) {
	if c.flushed || taskToken == "" {
		return
	}
	c.flushed = true
	c.closed = true

	blob, err := c.persistedContextBlob()
	if err != nil {
		c.logger.Error("failed to render persisted context blob", zap.Error(err))
		blob = ""
	}

	if err := c.transport.RespondDecisionTaskCompleted(ctx, taskToken, c.decisions, blob); err != nil {
		c.logger.Warn("respond decision task completed failed, leaving task for redelivery", zap.Error(err))
	}
}
