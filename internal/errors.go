package internal

import "fmt"

// PaginationFault is raised when a history page fetch exhausts its retry
// budget (spec §4.2 step 2, §7). The pager abandons the decision task when
// it sees one; it never reaches user code.
type PaginationFault struct {
	TaskToken string
	Attempts  int
	Cause     error
}

func (e *PaginationFault) Error() string {
	return fmt.Sprintf("pagination exhausted after %d attempts for task %s: %v", e.Attempts, e.TaskToken, e.Cause)
}

func (e *PaginationFault) Unwrap() error { return e.Cause }

// RegistrationFault is raised when a workflow type's remote configuration
// disagrees with the locally declared defaults, or registration itself
// fails for a reason other than "already exists" (spec §4.7, §7). It is
// fatal to the worker process; the engine only reports it.
type RegistrationFault struct {
	Type   TypeID
	Reason string
	Cause  error
}

func (e *RegistrationFault) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registration fault for %s: %s: %v", e.Type, e.Reason, e.Cause)
	}
	return fmt.Sprintf("registration fault for %s: %s", e.Type, e.Reason)
}

func (e *RegistrationFault) Unwrap() error { return e.Cause }

// InvariantError indicates the projected history violated a decision-state
// invariant (spec §3 invariants, §7) — e.g. a completion event referencing a
// call-key that was never in the running set. This is fatal: it means the
// history or the engine itself is corrupted, not something a retry fixes.
type InvariantError struct {
	CallKey string
	Detail  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("decision state invariant violated for call key %q: %s", e.CallKey, e.Detail)
}

// SerializationFault wraps a failure to encode proxy call arguments. Per
// spec §7 it is unrecoverable under deterministic replay and always results
// in failing the whole workflow execution.
type SerializationFault struct {
	CallKey string
	Cause   error
}

func (e *SerializationFault) Error() string {
	return fmt.Sprintf("failed to serialize arguments for call key %q: %v", e.CallKey, e.Cause)
}

func (e *SerializationFault) Unwrap() error { return e.Cause }

// DeserializationFault wraps a failure to decode a future's stored result.
// Per spec §7 it is scoped to the one future read; it must not abort the
// workflow or other in-flight calls.
type DeserializationFault struct {
	CallKey string
	Cause   error
}

func (e *DeserializationFault) Error() string {
	return fmt.Sprintf("failed to deserialize result for call key %q: %v", e.CallKey, e.Cause)
}

func (e *DeserializationFault) Unwrap() error { return e.Cause }

// NotReadyError is returned by DecisionState accessors (Result/Err/Timeout)
// when the queried call key is not yet in the corresponding resolved set.
type NotReadyError struct {
	CallKey string
	Want    string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("call key %q has no %s yet", e.CallKey, e.Want)
}

// ActivityError is what a Future.Err() returns for a call key resolved via
// ActivityFailed/ScheduleActivityFailed or ChildWorkflowFailed/StartChildWorkflowFailed.
type ActivityError struct {
	CallKey string
	Reason  string
}

func (e *ActivityError) Error() string {
	return e.Reason
}

// TimeoutError is what Future.Err() returns for a call key that timed out.
type TimeoutError struct {
	CallKey string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("call %q timed out", e.CallKey)
}
