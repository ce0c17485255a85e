package internal

import "context"

// Transport is the thin request/response client the engine depends on
// (spec §6). Its wire format, retries at the HTTP layer, and connection
// management are out of scope for this engine (spec §1); a concrete
// implementation lives in the sibling transport package.
type Transport interface {
	// RegisterWorkflowType registers a workflow type with its defaults.
	// Implementations must return ErrTypeAlreadyExists (via errors.Is) when
	// the type is already registered, so Registry can fall back to
	// DescribeWorkflowType for the compatibility check.
	RegisterWorkflowType(ctx context.Context, domain string, t TypeID, cfg ExecutionConfig) error

	// DescribeWorkflowType reads back a previously registered type's defaults.
	DescribeWorkflowType(ctx context.Context, domain string, t TypeID) (ExecutionConfig, error)

	// PollForDecisionTask long-polls for a decision task when nextPageToken
	// is empty, or fetches a history page when it is not. A long-poll
	// response with no task available is signaled by a DecisionTaskPage
	// with an empty TaskToken.
	PollForDecisionTask(ctx context.Context, domain, taskList, identity, nextPageToken string) (*DecisionTaskPage, error)

	// RespondDecisionTaskCompleted submits one decision batch.
	RespondDecisionTaskCompleted(ctx context.Context, taskToken string, decisions []Decision, executionContext string) error

	// StartWorkflowExecution starts a new workflow execution, returning its run id.
	StartWorkflowExecution(ctx context.Context, domain string, req StartWorkflowRequest) (runID string, err error)
}

// DecisionTaskPage is one page of a decision task's event history (spec §4.2).
type DecisionTaskPage struct {
	TaskToken     string
	WorkflowID    string
	RunID         string
	WorkflowType  TypeID
	Events        []Event
	NextPageToken string
}

// StartWorkflowRequest is the argument to Transport.StartWorkflowExecution
// (spec §4.9 Starter / §6 start_workflow_execution).
type StartWorkflowRequest struct {
	WorkflowID       string
	Type             TypeID
	TaskList         string
	WorkflowDuration int64 // seconds, 0 = unset
	DecisionDuration int64 // seconds, 0 = unset
	Input            string
	Tags             []string
}

// DecisionKind tags which variant of the outgoing decision union a Decision
// carries. Named after the decision constructors of spec §4.4/§6.
type DecisionKind int

// Decision kinds, one per spec §4.4/§6 decision constructor.
const (
	DecisionStartTimer DecisionKind = iota
	DecisionScheduleActivityTask
	DecisionStartChildWorkflowExecution
	DecisionCompleteWorkflowExecution
	DecisionFailWorkflowExecution
	DecisionContinueAsNewWorkflowExecution
)

// Decision is one outgoing decision in a decision batch. Only the fields
// relevant to Kind are populated; this mirrors the flat decision struct the
// SWF wire protocol itself uses (a Decision envelope with one populated
// "DecisionAttributes" variant).
type Decision struct {
	Kind DecisionKind

	// DecisionStartTimer
	TimerID      string
	StartToFireTimeout string

	// DecisionScheduleActivityTask
	ActivityCallKey        string
	ActivityType           TypeID
	ActivityInput          string
	ActivityTaskList       string
	ScheduleToStartTimeout string
	ScheduleToCloseTimeout string
	StartToCloseTimeout    string
	HeartbeatTimeout       string

	// DecisionStartChildWorkflowExecution
	ChildWorkflowID       string
	ChildType             TypeID
	ChildInput            string
	ChildTaskList         string
	ChildWorkflowDuration string
	ChildDecisionDuration string

	// DecisionCompleteWorkflowExecution
	Result string

	// DecisionFailWorkflowExecution
	Reason string

	// DecisionContinueAsNewWorkflowExecution
	ContinueInput            string
	ContinueTaskList         string
	ContinueWorkflowDuration string
	ContinueDecisionDuration string
	ContinueChildPolicy      ChildPolicy
	ContinueTags             []string
}
