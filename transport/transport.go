// Package transport implements internal.Transport against the real AWS
// Simple Workflow Service API, via the AWS SDK for Go v2. It owns wire
// encoding only: pagination retries, history projection, and decision
// batching all live in the internal package (spec §1, §6).
package transport

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/swf"
	"github.com/aws/aws-sdk-go-v2/service/swf/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/swf-go/decider/internal"
)

// Client adapts *swf.Client to internal.Transport.
type Client struct {
	SWF *swf.Client
}

var _ internal.Transport = (*Client)(nil)

// New wraps an already-configured *swf.Client.
func New(c *swf.Client) *Client {
	return &Client{SWF: c}
}

// RegisterWorkflowType implements internal.Transport.
func (c *Client) RegisterWorkflowType(ctx context.Context, domain string, t internal.TypeID, cfg internal.ExecutionConfig) error {
	_, err := c.SWF.RegisterWorkflowType(ctx, &swf.RegisterWorkflowTypeInput{
		Domain:                           aws.String(domain),
		Name:                             aws.String(t.Name),
		Version:                          aws.String(t.Version),
		DefaultTaskList:                     taskListOf(cfg.DefaultTaskList),
		DefaultExecutionStartToCloseTimeout: durationString(cfg.DefaultWorkflowDuration),
		DefaultTaskStartToCloseTimeout:      durationString(cfg.DefaultDecisionDuration),
		DefaultChildPolicy:                  childPolicyOf(cfg.DefaultChildPolicy),
	})
	if err == nil {
		return nil
	}
	var exists *types.TypeAlreadyExistsFault
	if errors.As(err, &exists) {
		return fmt.Errorf("%w: %v", internal.ErrTypeAlreadyExists, err)
	}
	return err
}

// DescribeWorkflowType implements internal.Transport.
func (c *Client) DescribeWorkflowType(ctx context.Context, domain string, t internal.TypeID) (internal.ExecutionConfig, error) {
	out, err := c.SWF.DescribeWorkflowType(ctx, &swf.DescribeWorkflowTypeInput{
		Domain: aws.String(domain),
		WorkflowType: &types.WorkflowType{
			Name:    aws.String(t.Name),
			Version: aws.String(t.Version),
		},
	})
	if err != nil {
		return internal.ExecutionConfig{}, err
	}

	cfg := out.Configuration
	return internal.ExecutionConfig{
		DefaultTaskList:         taskListName(cfg.DefaultTaskList),
		DefaultWorkflowDuration: parseDuration(cfg.DefaultExecutionStartToCloseTimeout),
		DefaultDecisionDuration: parseDuration(cfg.DefaultTaskStartToCloseTimeout),
		DefaultChildPolicy:      internal.ChildPolicy(cfg.DefaultChildPolicy),
	}, nil
}

// PollForDecisionTask implements internal.Transport.
func (c *Client) PollForDecisionTask(ctx context.Context, domain, taskList, identity, nextPageToken string) (*internal.DecisionTaskPage, error) {
	in := &swf.PollForDecisionTaskInput{
		Domain:   aws.String(domain),
		TaskList: taskListOf(taskList),
		Identity: aws.String(identity),
	}
	if nextPageToken != "" {
		in.NextPageToken = aws.String(nextPageToken)
	}

	out, err := c.SWF.PollForDecisionTask(ctx, in)
	if err != nil {
		return nil, err
	}
	if out.TaskToken == nil || *out.TaskToken == "" {
		return &internal.DecisionTaskPage{}, nil
	}

	events := make([]internal.Event, 0, len(out.Events))
	for _, e := range out.Events {
		if ev := decodeEvent(e); ev != nil {
			events = append(events, ev)
		}
	}

	page := &internal.DecisionTaskPage{
		TaskToken:  aws.ToString(out.TaskToken),
		WorkflowID: aws.ToString(out.WorkflowExecution.WorkflowId),
		RunID:      aws.ToString(out.WorkflowExecution.RunId),
		Events:     events,
	}
	if out.WorkflowType != nil {
		page.WorkflowType = internal.TypeID{Name: aws.ToString(out.WorkflowType.Name), Version: aws.ToString(out.WorkflowType.Version)}
	}
	if out.NextPageToken != nil {
		page.NextPageToken = aws.ToString(out.NextPageToken)
	}
	return page, nil
}

// RespondDecisionTaskCompleted implements internal.Transport.
func (c *Client) RespondDecisionTaskCompleted(ctx context.Context, taskToken string, decisions []internal.Decision, executionContext string) error {
	encoded := make([]types.Decision, 0, len(decisions))
	for _, d := range decisions {
		encoded = append(encoded, encodeDecision(d))
	}
	_, err := c.SWF.RespondDecisionTaskCompleted(ctx, &swf.RespondDecisionTaskCompletedInput{
		TaskToken:        aws.String(taskToken),
		Decisions:        encoded,
		ExecutionContext: aws.String(executionContext),
	})
	return err
}

// StartWorkflowExecution implements internal.Transport.
func (c *Client) StartWorkflowExecution(ctx context.Context, domain string, req internal.StartWorkflowRequest) (string, error) {
	out, err := c.SWF.StartWorkflowExecution(ctx, &swf.StartWorkflowExecutionInput{
		Domain:     aws.String(domain),
		WorkflowId: aws.String(req.WorkflowID),
		WorkflowType: &types.WorkflowType{
			Name:    aws.String(req.Type.Name),
			Version: aws.String(req.Type.Version),
		},
		TaskList:                     taskListOf(req.TaskList),
		ExecutionStartToCloseTimeout: secondsString(req.WorkflowDuration),
		TaskStartToCloseTimeout:      secondsString(req.DecisionDuration),
		Input:                        aws.String(req.Input),
		TagList:                      req.Tags,
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.RunId), nil
}

// IsThrottling reports whether err is a retryable throttling/server error
// from the underlying smithy HTTP transport, for callers that want a
// transport-aware isRetryable predicate instead of retrying everything.
func IsThrottling(err error) bool {
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == 429 || respErr.HTTPStatusCode() >= 500
	}
	return false
}

// durationString renders a time.Duration as the whole-seconds string the
// SWF API expects for timeout fields, or nil if d is zero (unset).
func durationString(d time.Duration) *string {
	if d <= 0 {
		return nil
	}
	return aws.String(strconv.FormatInt(int64(d/time.Second), 10))
}

// secondsString renders a whole-seconds count as the SWF timeout string, or
// nil if seconds is zero (unset).
func secondsString(seconds int64) *string {
	if seconds <= 0 {
		return nil
	}
	return aws.String(strconv.FormatInt(seconds, 10))
}

// parseDuration inverts durationString/secondsString for DescribeWorkflowType
// responses.
func parseDuration(s *string) time.Duration {
	if s == nil || *s == "" {
		return 0
	}
	n, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Second
}

func taskListOf(name string) *types.TaskList {
	if name == "" {
		return nil
	}
	return &types.TaskList{Name: aws.String(name)}
}

func taskListName(tl *types.TaskList) string {
	if tl == nil {
		return ""
	}
	return aws.ToString(tl.Name)
}

func childPolicyOf(p internal.ChildPolicy) types.ChildPolicy {
	return types.ChildPolicy(p)
}
