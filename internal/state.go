package internal

// DecisionState is the decision state projected from a workflow's event
// history (spec §3). It is constructed fresh at the start of every decision
// and discarded at flush; only the persisted context blob survives across
// decisions.
type DecisionState struct {
	Running     map[string]struct{}
	Results     map[string]string
	Errors      map[string]string
	Timedout    map[string]struct{}
	Fired       map[string]struct{}
	Order       []string
	EventToCall map[int64]string

	// Started carries the WorkflowExecutionStarted attributes the runner and
	// restart logic need (input, task list, durations, policy, tags).
	Started *WorkflowExecutionStarted

	// LastExecutionContext is the most recent DecisionTaskCompleted's
	// execution_context blob, or "" if this is the first decision.
	LastExecutionContext string
}

func newDecisionState() *DecisionState {
	return &DecisionState{
		Running:     make(map[string]struct{}),
		Results:     make(map[string]string),
		Errors:      make(map[string]string),
		Timedout:    make(map[string]struct{}),
		Fired:       make(map[string]struct{}),
		EventToCall: make(map[int64]string),
	}
}

// IsRunning reports whether call key k has an in-flight scheduled task.
func (s *DecisionState) IsRunning(k string) bool {
	_, ok := s.Running[k]
	return ok
}

// IsResult reports whether call key k resolved with a result.
func (s *DecisionState) IsResult(k string) bool {
	_, ok := s.Results[k]
	return ok
}

// IsError reports whether call key k resolved with an error.
func (s *DecisionState) IsError(k string) bool {
	_, ok := s.Errors[k]
	return ok
}

// IsTimeout reports whether call key k resolved as timed out.
func (s *DecisionState) IsTimeout(k string) bool {
	_, ok := s.Timedout[k]
	return ok
}

// TimerReady reports whether the timer for call key k has fired. Written
// fresh against spec §9's flagged defect in the timer lookup path: it takes
// the caller's call key directly and namespaces it itself, rather than
// relying on an ambient variable.
func (s *DecisionState) TimerReady(k string) bool {
	_, ok := s.Fired[timerCallKey(k)]
	return ok
}

// orderIndex returns the index of k within Order, or -1 if absent.
func (s *DecisionState) orderIndex(k string) int {
	for i, ck := range s.Order {
		if ck == k {
			return i
		}
	}
	return -1
}

// Result returns the stored payload and termination order index for call
// key k. It errors if k never resolved with a result.
func (s *DecisionState) Result(k string) (string, int, error) {
	v, ok := s.Results[k]
	if !ok {
		return "", 0, &NotReadyError{CallKey: k, Want: "result"}
	}
	return v, s.orderIndex(k), nil
}

// Err returns the stored reason and termination order index for call key k.
// It errors if k never resolved with an error.
func (s *DecisionState) Err(k string) (string, int, error) {
	v, ok := s.Errors[k]
	if !ok {
		return "", 0, &NotReadyError{CallKey: k, Want: "error"}
	}
	return v, s.orderIndex(k), nil
}

// Timeout returns the termination order index for call key k. It errors if
// k never resolved as timed out.
func (s *DecisionState) Timeout(k string) (int, error) {
	if _, ok := s.Timedout[k]; !ok {
		return 0, &NotReadyError{CallKey: k, Want: "timeout"}
	}
	return s.orderIndex(k), nil
}

func (s *DecisionState) resolveRunning(k string) error {
	if _, ok := s.Running[k]; !ok {
		return &InvariantError{CallKey: k, Detail: "resolution event for a call key not in running"}
	}
	delete(s.Running, k)
	return nil
}

// beginAttempt enters call key k into running, clearing any terminal state
// left over from a prior attempt under the same key. Retrying a call
// (spec §3 ProxyConfig retry schedule, §4.5) reuses its call key across
// attempts, so a later ActivityScheduled/TimerStarted/ChildWorkflowInitiated
// for a key that already resolved supersedes that resolution rather than
// violating the "at most one of running/results/.../fired" invariant. A new
// attempt of a non-timer key also discards the firing of its previous retry
// timer, so the next retry waits on a timer of its own.
func (s *DecisionState) beginAttempt(k string) {
	delete(s.Results, k)
	delete(s.Errors, k)
	delete(s.Timedout, k)
	delete(s.Fired, k)
	if !isTimerCallKey(k) {
		delete(s.Fired, timerCallKey(k))
	}
	s.Running[k] = struct{}{}
}

// Project folds events into a fresh DecisionState, following the
// construction rules of spec §4.3. It returns an *InvariantError if the
// history is internally inconsistent.
func Project(events []Event) (*DecisionState, error) {
	s := newDecisionState()

	for _, e := range events {
		switch ev := e.(type) {
		case *WorkflowExecutionStarted:
			s.Started = ev

		case *DecisionTaskCompleted:
			s.LastExecutionContext = ev.ExecutionContext

		case *ActivityScheduled:
			s.EventToCall[ev.ID] = ev.CallKey
			s.beginAttempt(ev.CallKey)

		case *ActivityCompleted:
			k, ok := s.EventToCall[ev.ScheduledID]
			if !ok {
				return nil, &InvariantError{Detail: "ActivityCompleted references unknown scheduled event"}
			}
			if err := s.resolveRunning(k); err != nil {
				return nil, err
			}
			s.Results[k] = ev.Result
			s.Order = append(s.Order, k)

		case *ActivityFailed:
			k, ok := s.EventToCall[ev.ScheduledID]
			if !ok {
				return nil, &InvariantError{Detail: "ActivityFailed references unknown scheduled event"}
			}
			if err := s.resolveRunning(k); err != nil {
				return nil, err
			}
			s.Errors[k] = ev.Reason
			s.Order = append(s.Order, k)

		case *ActivityTimedOut:
			k, ok := s.EventToCall[ev.ScheduledID]
			if !ok {
				return nil, &InvariantError{Detail: "ActivityTimedOut references unknown scheduled event"}
			}
			if err := s.resolveRunning(k); err != nil {
				return nil, err
			}
			s.Timedout[k] = struct{}{}
			s.Order = append(s.Order, k)

		case *ScheduleActivityFailed:
			// Rejected before scheduling; never entered running.
			s.Errors[ev.CallKey] = ev.Cause
			s.Order = append(s.Order, ev.CallKey)

		case *ChildWorkflowInitiated:
			k, ok := extractCallKey(ev.WorkflowID)
			if !ok {
				return nil, &InvariantError{Detail: "ChildWorkflowInitiated has malformed workflow id " + ev.WorkflowID}
			}
			s.beginAttempt(k)

		case *ChildWorkflowCompleted:
			k, ok := extractCallKey(ev.WorkflowID)
			if !ok {
				return nil, &InvariantError{Detail: "ChildWorkflowCompleted has malformed workflow id " + ev.WorkflowID}
			}
			if err := s.resolveRunning(k); err != nil {
				return nil, err
			}
			s.Results[k] = ev.Result
			s.Order = append(s.Order, k)

		case *ChildWorkflowFailed:
			k, ok := extractCallKey(ev.WorkflowID)
			if !ok {
				return nil, &InvariantError{Detail: "ChildWorkflowFailed has malformed workflow id " + ev.WorkflowID}
			}
			if err := s.resolveRunning(k); err != nil {
				return nil, err
			}
			s.Errors[k] = ev.Reason
			s.Order = append(s.Order, k)

		case *ChildWorkflowTimedOut:
			k, ok := extractCallKey(ev.WorkflowID)
			if !ok {
				return nil, &InvariantError{Detail: "ChildWorkflowTimedOut has malformed workflow id " + ev.WorkflowID}
			}
			if err := s.resolveRunning(k); err != nil {
				return nil, err
			}
			s.Timedout[k] = struct{}{}
			s.Order = append(s.Order, k)

		case *StartChildWorkflowFailed:
			k, ok := extractCallKey(ev.WorkflowID)
			if !ok {
				return nil, &InvariantError{Detail: "StartChildWorkflowFailed has malformed workflow id " + ev.WorkflowID}
			}
			s.Errors[k] = ev.Cause
			s.Order = append(s.Order, k)

		case *TimerStarted:
			s.beginAttempt(ev.TimerID)

		case *TimerFired:
			if err := s.resolveRunning(ev.TimerID); err != nil {
				return nil, err
			}
			s.Fired[ev.TimerID] = struct{}{}
			// Timer firings are optional in Order (spec §3 invariant 3).

		default:
			// Unknown/unhandled event kind: dropped silently (spec §4.1).
		}
	}

	return s, nil
}
