package swf

import (
	"time"

	"github.com/swf-go/decider/converter"
)

// Activity builds the ActivityProxy for a dependency named depName, calling
// the activity type target. Workflow code holds the returned value as a
// struct field and calls its Call method once per logical invocation.
func Activity(depName string, target TypeID, opts ...ProxyOption) ActivityProxy {
	return ActivityProxy{Config: newProxyConfig(depName, target, opts...)}
}

// SubWorkflow builds the WorkflowProxy for a child-workflow dependency named
// depName, calling the workflow type target.
func SubWorkflow(depName string, target TypeID, opts ...ProxyOption) WorkflowProxy {
	return WorkflowProxy{Config: newProxyConfig(depName, target, opts...)}
}

// ProxyOption customizes a ProxyConfig built by Activity or SubWorkflow.
type ProxyOption func(*ProxyConfig)

// WithTaskList overrides the task list a call is scheduled on.
func WithTaskList(taskList string) ProxyOption {
	return func(c *ProxyConfig) { c.TaskList = taskList }
}

// WithRetry sets the per-attempt delay schedule, in whole seconds (default
// is {0,0,0}).
func WithRetry(secondsSchedule ...int64) ProxyOption {
	return func(c *ProxyConfig) {
		c.Retry = make([]time.Duration, len(secondsSchedule))
		for i, s := range secondsSchedule {
			c.Retry[i] = time.Duration(s) * time.Second
		}
	}
}

// WithCodec overrides both the input and result codec for this dependency.
func WithCodec(codec converter.DataConverter) ProxyOption {
	return func(c *ProxyConfig) {
		c.InputCodec = codec
		c.ResultCodec = codec
	}
}

func newProxyConfig(depName string, target TypeID, opts ...ProxyOption) ProxyConfig {
	cfg := ProxyConfig{DepName: depName, Target: target}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
