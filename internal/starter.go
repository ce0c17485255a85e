package internal

import (
	"context"
	"fmt"
)

// Starter begins new workflow executions for a single registered
// WorkflowType, applying its execution defaults: an unset task list in the
// request falls back to the type's DefaultTaskList, and the workflow and
// decision durations always come from the type's ExecutionConfig. No child
// policy is sent with the request.
type Starter struct {
	Transport Transport
	Domain    string
	Type      WorkflowType
}

// StartInput is the caller-supplied portion of a new execution: everything
// the Starter does not already know from the registered WorkflowType.
type StartInput struct {
	WorkflowID string
	Args       []interface{}
	TaskList   string
	Tags       []string
}

// Start encodes args with the type's own input codec, applies execution
// defaults, and calls Transport.StartWorkflowExecution (spec §4.9, §6
// start_workflow_execution).
func (s Starter) Start(ctx context.Context, in StartInput) (runID string, err error) {
	if in.WorkflowID == "" {
		return "", fmt.Errorf("starter: workflow id is required")
	}

	codec := s.Type.codec()
	input, err := codec.ToArgs(in.Args...)
	if err != nil {
		return "", &SerializationFault{CallKey: in.WorkflowID, Cause: err}
	}

	cfg := s.Type.Config.normalized()
	taskList := in.TaskList
	if taskList == "" {
		taskList = cfg.DefaultTaskList
	}

	return s.Transport.StartWorkflowExecution(ctx, s.Domain, StartWorkflowRequest{
		WorkflowID:       in.WorkflowID,
		Type:             s.Type.ID,
		TaskList:         taskList,
		WorkflowDuration: secondsOf(cfg.DefaultWorkflowDuration),
		DecisionDuration: secondsOf(cfg.DefaultDecisionDuration),
		Input:            input,
		Tags:             normalizeTags(in.Tags),
	})
}
