package internal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/swf-go/decider/converter"
	"github.com/swf-go/decider/internal"
	"github.com/swf-go/decider/mocks"
)

// addOneWorkflow schedules a single activity call on its declared dependency
// and returns whatever it resolves to.
type addOneWorkflow struct {
	Dep internal.ActivityProxy `swf:"dep"`
}

func (w *addOneWorkflow) Execute(ctx *internal.Context, input []byte) (interface{}, error) {
	var n int
	if err := converter.Default.FromArgs(string(input), &n); err != nil {
		return nil, err
	}

	f := w.Dep.Call(ctx, n)
	var result int
	if err := f.Result(&result); err != nil {
		return nil, err
	}
	return result, nil
}

func testWorkflowTypeWithDep() internal.WorkflowType {
	return internal.WorkflowType{
		ID:     internal.TypeID{Name: "add-one", Version: "1"},
		Config: internal.ExecutionConfig{RateLimit: 10},
		Proxies: []internal.ProxyConfig{
			{DepName: "dep", Target: internal.TypeID{Name: "act", Version: "1"}, InputCodec: converter.Default, ResultCodec: converter.Default},
		},
		Factory: func() internal.Workflow { return &addOneWorkflow{} },
	}
}

func Test_Run_FirstDecision_SchedulesActivityAndDoesNotFinish(t *testing.T) {
	input, err := converter.Default.ToArgs(7)
	require.NoError(t, err)

	started := &internal.WorkflowExecutionStarted{Input: input}
	started.ID = 1

	task := &internal.DecisionTask{
		TaskToken:    "tok-1",
		Domain:       "dom",
		TaskList:     "tl",
		WorkflowID:   "wf-1",
		RunID:        "run-1",
		WorkflowType: internal.TypeID{Name: "add-one", Version: "1"},
		Events:       []internal.Event{started},
	}

	tr := &mocks.Transport{}
	tr.On("RespondDecisionTaskCompleted", mock.Anything, "tok-1", mock.MatchedBy(func(ds []internal.Decision) bool {
		return len(ds) == 1 && ds[0].Kind == internal.DecisionScheduleActivityTask && ds[0].ActivityCallKey == "0"
	}), mock.Anything).Return(nil)

	err = internal.Run(context.Background(), task, testWorkflowTypeWithDep(), tr, nil)
	require.NoError(t, err)
	tr.AssertExpectations(t)
}

func Test_Run_SecondDecision_ResolvesAndFinishes(t *testing.T) {
	input, err := converter.Default.ToArgs(7)
	require.NoError(t, err)

	started := &internal.WorkflowExecutionStarted{Input: input}
	started.ID = 1
	sched := &internal.ActivityScheduled{CallKey: "0"}
	sched.ID = 2
	completed := &internal.ActivityCompleted{ScheduledID: 2, Result: "14"}
	completed.ID = 3

	task := &internal.DecisionTask{
		TaskToken:    "tok-2",
		Domain:       "dom",
		TaskList:     "tl",
		WorkflowID:   "wf-1",
		RunID:        "run-1",
		WorkflowType: internal.TypeID{Name: "add-one", Version: "1"},
		Events:       []internal.Event{started, sched, completed},
	}

	tr := &mocks.Transport{}
	tr.On("RespondDecisionTaskCompleted", mock.Anything, "tok-2", mock.MatchedBy(func(ds []internal.Decision) bool {
		return len(ds) == 1 && ds[0].Kind == internal.DecisionCompleteWorkflowExecution && ds[0].Result == "14"
	}), mock.Anything).Return(nil)

	err = internal.Run(context.Background(), task, testWorkflowTypeWithDep(), tr, nil)
	require.NoError(t, err)
	tr.AssertExpectations(t)
}

func Test_Run_MissingStartedEvent_IsAnError(t *testing.T) {
	task := &internal.DecisionTask{
		TaskToken: "tok-3",
		Events:    []internal.Event{},
	}

	tr := &mocks.Transport{}
	err := internal.Run(context.Background(), task, testWorkflowTypeWithDep(), tr, nil)
	require.Error(t, err)
}
