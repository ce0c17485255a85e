package internal

// Event is the tagged union over the history event kinds the decision
// engine consumes (spec §4.1). Event kinds the service emits that the
// engine has no case for decode to nil and are dropped by the transport
// client before the pager sees them.
type Event interface {
	eventID() int64
	isEvent()
}

type baseEvent struct {
	ID int64
}

func (b baseEvent) eventID() int64 { return b.ID }
func (baseEvent) isEvent()         {}

// ActivityScheduled records that the service accepted a schedule_activity_task
// decision and assigned it event id ID, for call key CallKey.
type ActivityScheduled struct {
	baseEvent
	CallKey string
}

// ActivityCompleted resolves the activity scheduled at event ScheduledID.
type ActivityCompleted struct {
	baseEvent
	ScheduledID int64
	Result      string
}

// ActivityFailed resolves the activity scheduled at event ScheduledID with an error.
type ActivityFailed struct {
	baseEvent
	ScheduledID int64
	Reason      string
}

// ActivityTimedOut resolves the activity scheduled at event ScheduledID as timed out.
type ActivityTimedOut struct {
	baseEvent
	ScheduledID int64
}

// ScheduleActivityFailed records that the service rejected a schedule
// request before any ActivityScheduled event was produced.
type ScheduleActivityFailed struct {
	baseEvent
	CallKey string
	Cause   string
}

// ChildWorkflowInitiated records that a start_child_workflow_execution
// decision was accepted for the given decider-assigned WorkflowID (which
// embeds the call key per spec §3's sub-workflow call-key namespace).
type ChildWorkflowInitiated struct {
	baseEvent
	WorkflowID string
}

// ChildWorkflowCompleted resolves a child workflow by its WorkflowID.
type ChildWorkflowCompleted struct {
	baseEvent
	WorkflowID string
	Result     string
}

// ChildWorkflowFailed resolves a child workflow by its WorkflowID with an error.
type ChildWorkflowFailed struct {
	baseEvent
	WorkflowID string
	Reason     string
}

// ChildWorkflowTimedOut resolves a child workflow by its WorkflowID as timed out.
type ChildWorkflowTimedOut struct {
	baseEvent
	WorkflowID string
}

// StartChildWorkflowFailed records a rejected start_child_workflow_execution
// decision, before any ChildWorkflowInitiated event.
type StartChildWorkflowFailed struct {
	baseEvent
	WorkflowID string
	Cause      string
}

// TimerStarted records that a start_timer decision was accepted for TimerID
// (the timer call-key namespace, "<k>:t").
type TimerStarted struct {
	baseEvent
	TimerID string
}

// TimerFired resolves the timer started with TimerID.
type TimerFired struct {
	baseEvent
	TimerID string
}

// WorkflowExecutionStarted is always the first event of a history; it carries
// the input and execution configuration the runner needs to instantiate the
// workflow and, on restart, propagate unset fields forward.
type WorkflowExecutionStarted struct {
	baseEvent
	Input              string
	TaskList           string
	WorkflowDuration   int64 // seconds, 0 = unset
	DecisionDuration   int64 // seconds, 0 = unset
	ChildPolicy        ChildPolicy
	Tags               []string
}

// DecisionTaskCompleted records the execution context a prior decision
// persisted, and the started_event_id that bounds the history window it saw.
type DecisionTaskCompleted struct {
	baseEvent
	ExecutionContext string
	StartedEventID   int64
}
