package internal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/swf-go/decider/internal"
	"github.com/swf-go/decider/mocks"
)

func testWorkflowType(id internal.TypeID) internal.WorkflowType {
	return internal.WorkflowType{
		ID:      id,
		Config:  internal.ExecutionConfig{DefaultTaskList: "tl", RateLimit: 10},
		Factory: func() internal.Workflow { return nil },
	}
}

func Test_Registry_Register_NewType(t *testing.T) {
	tr := &mocks.Transport{}
	tr.On("RegisterWorkflowType", mock.Anything, "dom", mock.Anything, mock.Anything).Return(nil)

	reg := internal.NewRegistry(nil)
	reg.Add(testWorkflowType(internal.TypeID{Name: "wf", Version: "1"}))

	err := reg.Register(context.Background(), "dom", tr)
	require.NoError(t, err)
	tr.AssertExpectations(t)
}

func Test_Registry_Register_AlreadyExists_MatchingDefaults(t *testing.T) {
	tr := &mocks.Transport{}
	tr.On("RegisterWorkflowType", mock.Anything, "dom", mock.Anything, mock.Anything).
		Return(internal.ErrTypeAlreadyExists)
	tr.On("DescribeWorkflowType", mock.Anything, "dom", mock.Anything).
		Return(internal.ExecutionConfig{DefaultTaskList: "tl", RateLimit: 999}, nil)

	reg := internal.NewRegistry(nil)
	reg.Add(testWorkflowType(internal.TypeID{Name: "wf", Version: "1"}))

	err := reg.Register(context.Background(), "dom", tr)
	require.NoError(t, err, "RateLimit is local-only and must not affect the compatibility check")
}

func Test_Registry_Register_AlreadyExists_MismatchedDefaults(t *testing.T) {
	tr := &mocks.Transport{}
	tr.On("RegisterWorkflowType", mock.Anything, "dom", mock.Anything, mock.Anything).
		Return(internal.ErrTypeAlreadyExists)
	tr.On("DescribeWorkflowType", mock.Anything, "dom", mock.Anything).
		Return(internal.ExecutionConfig{DefaultTaskList: "different-tasklist"}, nil)

	reg := internal.NewRegistry(nil)
	reg.Add(testWorkflowType(internal.TypeID{Name: "wf", Version: "1"}))

	err := reg.Register(context.Background(), "dom", tr)
	require.Error(t, err)
	var fault *internal.RegistrationFault
	require.True(t, errors.As(err, &fault))
}

func Test_Registry_Register_TransportError(t *testing.T) {
	tr := &mocks.Transport{}
	tr.On("RegisterWorkflowType", mock.Anything, "dom", mock.Anything, mock.Anything).
		Return(errors.New("network down"))

	reg := internal.NewRegistry(nil)
	reg.Add(testWorkflowType(internal.TypeID{Name: "wf", Version: "1"}))

	err := reg.Register(context.Background(), "dom", tr)
	require.Error(t, err)
	var fault *internal.RegistrationFault
	require.True(t, errors.As(err, &fault))
}

func Test_Registry_Lookup(t *testing.T) {
	reg := internal.NewRegistry(nil)
	id := internal.TypeID{Name: "wf", Version: "1"}
	reg.Add(testWorkflowType(id))

	wt, ok := reg.Lookup(id)
	require.True(t, ok)
	require.Equal(t, id, wt.ID)

	_, ok = reg.Lookup(internal.TypeID{Name: "unknown", Version: "1"})
	require.False(t, ok)
}
