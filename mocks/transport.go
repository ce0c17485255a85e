// Package mocks provides a testify/mock.Mock implementation of
// internal.Transport for exercising the registry, history pager, and worker
// loop without a real AWS SWF endpoint.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swf-go/decider/internal"
)

// Transport is a mock.Mock-backed internal.Transport.
type Transport struct {
	mock.Mock
}

var _ internal.Transport = (*Transport)(nil)

// RegisterWorkflowType implements internal.Transport.
func (m *Transport) RegisterWorkflowType(ctx context.Context, domain string, t internal.TypeID, cfg internal.ExecutionConfig) error {
	args := m.Called(ctx, domain, t, cfg)
	return args.Error(0)
}

// DescribeWorkflowType implements internal.Transport.
func (m *Transport) DescribeWorkflowType(ctx context.Context, domain string, t internal.TypeID) (internal.ExecutionConfig, error) {
	args := m.Called(ctx, domain, t)
	cfg, _ := args.Get(0).(internal.ExecutionConfig)
	return cfg, args.Error(1)
}

// PollForDecisionTask implements internal.Transport.
func (m *Transport) PollForDecisionTask(ctx context.Context, domain, taskList, identity, nextPageToken string) (*internal.DecisionTaskPage, error) {
	args := m.Called(ctx, domain, taskList, identity, nextPageToken)
	page, _ := args.Get(0).(*internal.DecisionTaskPage)
	return page, args.Error(1)
}

// RespondDecisionTaskCompleted implements internal.Transport.
func (m *Transport) RespondDecisionTaskCompleted(ctx context.Context, taskToken string, decisions []internal.Decision, executionContext string) error {
	args := m.Called(ctx, taskToken, decisions, executionContext)
	return args.Error(0)
}

// StartWorkflowExecution implements internal.Transport.
func (m *Transport) StartWorkflowExecution(ctx context.Context, domain string, req internal.StartWorkflowRequest) (string, error) {
	args := m.Called(ctx, domain, req)
	return args.String(0), args.Error(1)
}
