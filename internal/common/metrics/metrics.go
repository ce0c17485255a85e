// Package metrics names the counters and timers the engine emits through a
// tally.Scope, mirroring how the teacher's internal/common/metrics package
// centralizes metric name constants rather than scattering string literals.
package metrics

const (
	// DecisionsTaskCounter counts decision tasks received by the poller.
	DecisionsTaskCounter = "swf.decision.poll"
	// DecisionsPollErrorCounter counts transport errors from a long poll.
	DecisionsPollErrorCounter = "swf.decision.poll.error"
	// DecisionsPaginationRetryCounter counts a single page-fetch retry.
	DecisionsPaginationRetryCounter = "swf.decision.pagination.retry"
	// DecisionsPaginationFaultCounter counts pagination exhaustion events.
	DecisionsPaginationFaultCounter = "swf.decision.pagination.fault"
	// DecisionsEmittedCounter counts outgoing decisions flushed to the service.
	DecisionsEmittedCounter = "swf.decision.emitted"
	// DecisionsFlushErrorCounter counts swallowed RespondDecisionTaskCompleted errors.
	DecisionsFlushErrorCounter = "swf.decision.flush.error"
	// RegistrationFaultCounter counts fatal registration mismatches.
	RegistrationFaultCounter = "swf.registration.fault"
	// UnrecognizedWorkflowCounter counts decision tasks for an unknown (name, version).
	UnrecognizedWorkflowCounter = "swf.decision.unrecognized"

	// DecisionLatencyTimer times a full decide-and-flush round.
	DecisionLatencyTimer = "swf.decision.latency"
)
