// Package worker contains functions to manage the lifecycle of a client-side
// decider/activity worker process.
package worker

import (
	"context"
	"sync"

	"github.com/uber-go/tally"
	"go.uber.org/zap"

	"github.com/swf-go/decider/internal"
)

// Worker represents a running poll/dispatch/submit loop bound to one domain
// and task list (spec §4.8).
type Worker interface {
	// Run blocks until ctx is canceled, then returns nil. It never returns a
	// non-nil error for transport hiccups; those are logged and retried.
	Run(ctx context.Context) error
}

// Options configures a Worker (spec §3, §6).
type Options struct {
	Identity string
	Logger   *zap.Logger
	Scope    tally.Scope
}

// New creates a Worker for domain/taskList, dispatching to the workflow
// types already added to registry.
//
//	transport  - the Transport implementation (see the transport package for
//	             the concrete AWS SWF client)
//	domain     - the domain the worker polls
//	taskList   - the task list name that also identifies this group of
//	             workflow implementations
//	registry   - the workflow types this worker process hosts
//	options    - identity/logger/metrics overrides
func New(transport internal.Transport, domain, taskList string, registry *Registry, options Options) Worker {
	return &internal.Worker{
		Transport: transport,
		Registry:  registry.registry,
		Domain:    domain,
		TaskList:  taskList,
		Identity:  options.Identity,
		Logger:    options.Logger,
		Scope:     options.Scope,
	}
}

// Registry is the public wrapper around the workflow-type registry a caller
// populates with RegisterWorkflow before constructing a Worker, and also
// uses to register those types remotely at startup (spec §4.7).
type Registry struct {
	mu       sync.Mutex
	registry *internal.Registry
}

// NewRegistry returns an empty Registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{registry: internal.NewRegistry(logger)}
}

// DefaultRegistry is the process-wide Registry workflow packages register
// into from an init func, the way database/sql drivers register themselves
// by blank import rather than by runtime package scanning: Go has no
// reflection-based way to "scan a package" that was never linked in, so the
// worker binary's package-to-scan selection is this module's static import
// graph, not a runtime argument.
var DefaultRegistry = NewRegistry(nil)

// WorkflowDefinition is the public shape a caller supplies to RegisterWorkflow.
type WorkflowDefinition struct {
	Name    string
	Version string

	Factory internal.WorkflowFactory
	Config  internal.ExecutionConfig
	Proxies []internal.ProxyConfig
}

// RegisterWorkflow adds a workflow type to the registry. It must be called
// before Register or New.
func (r *Registry) RegisterWorkflow(def WorkflowDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registry.Add(internal.WorkflowType{
		ID:      internal.TypeID{Name: def.Name, Version: def.Version},
		Config:  def.Config,
		Proxies: def.Proxies,
		Factory: def.Factory,
	})
}

// Register verifies (registering if necessary) every added workflow type
// against the remote service (spec §4.7). It returns a *RegistrationFault on
// mismatch; the caller should treat that as fatal before starting any Worker.
func (r *Registry) Register(ctx context.Context, domain string, transport internal.Transport) error {
	return r.registry.Register(ctx, domain, transport)
}
