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

func Test_Worker_Run_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	tr := &mocks.Transport{}
	tr.On("PollForDecisionTask", mock.Anything, "dom", "tl", "worker-1", "").
		Return(&internal.DecisionTaskPage{TaskToken: ""}, nil).
		Run(func(mock.Arguments) { cancel() }).
		Once()

	w := &internal.Worker{Transport: tr, Registry: internal.NewRegistry(nil), Domain: "dom", TaskList: "tl", Identity: "worker-1"}
	err := w.Run(ctx)
	require.NoError(t, err)
	tr.AssertExpectations(t)
}

func Test_Worker_Run_DropsUnregisteredWorkflowType(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := &internal.WorkflowExecutionStarted{}
	started.ID = 1
	page := &internal.DecisionTaskPage{
		TaskToken:    "tok",
		WorkflowID:   "wf-1",
		RunID:        "run-1",
		WorkflowType: internal.TypeID{Name: "unregistered", Version: "1"},
		Events:       []internal.Event{started},
	}

	tr := &mocks.Transport{}
	tr.On("PollForDecisionTask", mock.Anything, "dom", "tl", "worker-1", "").
		Return(page, nil).
		Run(func(mock.Arguments) { cancel() }).
		Once()

	w := &internal.Worker{Transport: tr, Registry: internal.NewRegistry(nil), Domain: "dom", TaskList: "tl", Identity: "worker-1"}
	err := w.Run(ctx)
	require.NoError(t, err)
	tr.AssertExpectations(t)
	tr.AssertNotCalled(t, "RespondDecisionTaskCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_Worker_Run_DispatchesRegisteredWorkflow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	input, err := converter.Default.ToArgs(7)
	require.NoError(t, err)
	started := &internal.WorkflowExecutionStarted{Input: input}
	started.ID = 1

	wt := testWorkflowTypeWithDep()
	page := &internal.DecisionTaskPage{
		TaskToken:    "tok",
		WorkflowID:   "wf-1",
		RunID:        "run-1",
		WorkflowType: wt.ID,
		Events:       []internal.Event{started},
	}

	tr := &mocks.Transport{}
	tr.On("PollForDecisionTask", mock.Anything, "dom", "tl", "worker-1", "").
		Return(page, nil).
		Run(func(mock.Arguments) { cancel() }).
		Once()
	tr.On("RespondDecisionTaskCompleted", mock.Anything, "tok", mock.MatchedBy(func(ds []internal.Decision) bool {
		return len(ds) == 1 && ds[0].Kind == internal.DecisionScheduleActivityTask
	}), mock.Anything).Return(nil)

	registry := internal.NewRegistry(nil)
	registry.Add(wt)

	w := &internal.Worker{Transport: tr, Registry: registry, Domain: "dom", TaskList: "tl", Identity: "worker-1"}
	err = w.Run(ctx)
	require.NoError(t, err)
	tr.AssertExpectations(t)
}
