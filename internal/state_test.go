package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(id int64, e Event) Event {
	switch v := e.(type) {
	case *ActivityScheduled:
		v.ID = id
		return v
	case *ActivityCompleted:
		v.ID = id
		return v
	case *ActivityFailed:
		v.ID = id
		return v
	case *ActivityTimedOut:
		v.ID = id
		return v
	case *WorkflowExecutionStarted:
		v.ID = id
		return v
	case *DecisionTaskCompleted:
		v.ID = id
		return v
	default:
		return e
	}
}

func Test_Project_ActivityLifecycle(t *testing.T) {
	events := []Event{
		ev(1, &WorkflowExecutionStarted{Input: "[[7], {}]"}),
		ev(2, &ActivityScheduled{CallKey: "0"}),
		ev(3, &ActivityCompleted{ScheduledID: 2, Result: "14"}),
	}

	s, err := Project(events)
	require.NoError(t, err)
	assert.False(t, s.IsRunning("0"))
	assert.True(t, s.IsResult("0"))
	result, idx, err := s.Result("0")
	require.NoError(t, err)
	assert.Equal(t, "14", result)
	assert.Equal(t, 0, idx)
}

func Test_Project_ActivityFailedThenRetried_SameCallKey(t *testing.T) {
	events := []Event{
		ev(1, &WorkflowExecutionStarted{Input: "[[], {}]"}),
		ev(2, &ActivityScheduled{CallKey: "0"}),
		ev(3, &ActivityFailed{ScheduledID: 2, Reason: "boom"}),
		// Retry reuses call key "0" with a fresh ActivityScheduled event.
		ev(4, &ActivityScheduled{CallKey: "0"}),
		ev(5, &ActivityCompleted{ScheduledID: 4, Result: "42"}),
	}

	s, err := Project(events)
	require.NoError(t, err)
	assert.False(t, s.IsError("0"), "the retry's success should supersede the earlier failure")
	assert.True(t, s.IsResult("0"))
	result, _, err := s.Result("0")
	require.NoError(t, err)
	assert.Equal(t, "42", result)
}

func Test_Project_TimerLifecycle(t *testing.T) {
	events := []Event{
		ev(1, &WorkflowExecutionStarted{}),
		&TimerStarted{TimerID: "0:t"},
		&TimerFired{TimerID: "0:t"},
	}

	s, err := Project(events)
	require.NoError(t, err)
	assert.True(t, s.TimerReady("0"))
	assert.False(t, s.IsRunning("0:t"))
}

func Test_Project_ChildWorkflowLifecycle(t *testing.T) {
	wfID := wrapWorkflowID("0")
	events := []Event{
		ev(1, &WorkflowExecutionStarted{}),
		&ChildWorkflowInitiated{WorkflowID: wfID},
		&ChildWorkflowCompleted{WorkflowID: wfID, Result: "\"ok\""},
	}

	s, err := Project(events)
	require.NoError(t, err)
	assert.True(t, s.IsResult("0"))
	result, _, err := s.Result("0")
	require.NoError(t, err)
	assert.Equal(t, "\"ok\"", result)
}

func Test_Project_ScheduleActivityFailed_NeverRan(t *testing.T) {
	events := []Event{
		ev(1, &WorkflowExecutionStarted{}),
		&ScheduleActivityFailed{CallKey: "0", Cause: "ACTIVITY_TYPE_DOES_NOT_EXIST"},
	}

	s, err := Project(events)
	require.NoError(t, err)
	assert.False(t, s.IsRunning("0"))
	assert.True(t, s.IsError("0"))
}

func Test_Project_InvariantViolation_UnknownScheduledEvent(t *testing.T) {
	events := []Event{
		ev(1, &WorkflowExecutionStarted{}),
		ev(2, &ActivityCompleted{ScheduledID: 99, Result: "x"}),
	}

	_, err := Project(events)
	require.Error(t, err)
	var invErr *InvariantError
	assert.ErrorAs(t, err, &invErr)
}

func Test_Project_InvariantViolation_DoubleResolve(t *testing.T) {
	events := []Event{
		ev(1, &WorkflowExecutionStarted{}),
		ev(2, &ActivityScheduled{CallKey: "0"}),
		ev(3, &ActivityCompleted{ScheduledID: 2, Result: "x"}),
		ev(4, &ActivityCompleted{ScheduledID: 2, Result: "x"}),
	}

	_, err := Project(events)
	assert.Error(t, err)
}

func Test_Project_OrderReflectsTerminationSequence(t *testing.T) {
	events := []Event{
		ev(1, &WorkflowExecutionStarted{}),
		ev(2, &ActivityScheduled{CallKey: "0"}),
		ev(3, &ActivityScheduled{CallKey: "1"}),
		ev(4, &ActivityCompleted{ScheduledID: 3, Result: "\"b\""}),
		ev(5, &ActivityCompleted{ScheduledID: 2, Result: "\"a\""}),
	}

	s, err := Project(events)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "0"}, s.Order)
}
