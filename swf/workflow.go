package swf

import (
	"context"

	"github.com/swf-go/decider/worker"
)

// WorkflowOption customizes an ExecutionConfig built by RegisterWorkflow.
type WorkflowOption func(*ExecutionConfig)

// WithDefaultTaskList sets the default task list new executions use when the
// starter does not supply one.
func WithDefaultTaskList(taskList string) WorkflowOption {
	return func(c *ExecutionConfig) { c.DefaultTaskList = taskList }
}

// WithRateLimit overrides the per-decision schedule-call budget (default 64).
func WithRateLimit(n int) WorkflowOption {
	return func(c *ExecutionConfig) { c.RateLimit = n }
}

// WithChildPolicy sets the default child policy new executions use.
func WithChildPolicy(p ChildPolicy) WorkflowOption {
	return func(c *ExecutionConfig) { c.DefaultChildPolicy = p }
}

// RegisterWorkflow adds name/version to reg, backed by factory and the
// dependencies it declares via proxies built with Activity/SubWorkflow.
func RegisterWorkflow(reg *worker.Registry, name, version string, factory WorkflowFactory, proxies []ProxyConfig, opts ...WorkflowOption) {
	var cfg ExecutionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	reg.RegisterWorkflow(worker.WorkflowDefinition{
		Name:    name,
		Version: version,
		Factory: factory,
		Config:  cfg,
		Proxies: proxies,
	})
}

// StartWorkflow starts a new execution of the registered type identified by
// name/version, through transport, in domain.
func StartWorkflow(ctx context.Context, transport Transport, domain string, wt TypeID, cfg ExecutionConfig, in StartInput) (runID string, err error) {
	s := Starter{Transport: transport, Domain: domain}
	s.Type.ID = wt
	s.Type.Config = cfg
	return s.Start(ctx, in)
}
