package internal

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/swf-go/decider/converter"
)

// Workflow is the user-code entry point the runner instantiates and invokes
// fresh for every decision task (spec §4.6). Implementations declare their
// proxy dependencies as exported ActivityProxy/WorkflowProxy fields tagged
// `swf:"<dep_name>"`; the runner injects configured proxies into those
// fields before calling Execute.
//
// Execute returns (result, nil) to finish the workflow, (nil, err) where
// err wraps ErrBlocked to signal "not done yet, flush what was scheduled",
// (nil, *RestartSignal) to continue-as-new, or (nil, err) for any other err
// to fail the execution.
type Workflow interface {
	Execute(ctx *Context, input []byte) (interface{}, error)
}

// WorkflowFactory constructs a fresh Workflow instance for one decision task.
type WorkflowFactory func() Workflow

// RestartSignal is returned (wrapped as the error) by Execute to request
// continue-as-new with a new input (spec §4.4 Restart, §4.6 step 6).
type RestartSignal struct {
	Input interface{}
}

func (*RestartSignal) Error() string { return "workflow requested restart-as-new" }

// WorkflowType bundles everything the registry and runner need for one
// registered (name, version): its execution defaults, its declared proxy
// dependencies, its factory, and the codec used for its own input/result
// (independent of any one proxy's codec).
type WorkflowType struct {
	ID      TypeID
	Config  ExecutionConfig
	Proxies []ProxyConfig
	Factory WorkflowFactory
	Codec   converter.DataConverter
}

func (t WorkflowType) codec() converter.DataConverter {
	if t.Codec != nil {
		return t.Codec
	}
	return converter.Default
}

// Registry maps (name, version) to a registered WorkflowType (spec §4.7).
type Registry struct {
	logger *zap.Logger
	types  map[TypeID]WorkflowType
}

// NewRegistry returns an empty Registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger, types: make(map[TypeID]WorkflowType)}
}

// Add records a workflow type locally. It does not talk to the transport;
// call Register to register/verify it remotely.
func (r *Registry) Add(t WorkflowType) {
	r.types[t.ID] = t
}

// Lookup returns the registered WorkflowType for id, or false if unregistered.
func (r *Registry) Lookup(id TypeID) (WorkflowType, bool) {
	t, ok := r.types[id]
	return t, ok
}

// All returns every locally-added WorkflowType, for Register to iterate.
func (r *Registry) All() []WorkflowType {
	out := make([]WorkflowType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	return out
}

// Register performs the register/describe/compare algorithm of spec §4.7
// for every locally-added workflow type. It stops at the first fault and
// returns it; the caller (worker bootstrap) is expected to treat any
// returned error as fatal.
func (r *Registry) Register(ctx context.Context, domain string, transport Transport) error {
	for _, t := range r.All() {
		cfg := t.Config.normalized()
		err := transport.RegisterWorkflowType(ctx, domain, t.ID, cfg)
		if err == nil {
			r.logger.Info("registered workflow type", zap.String("type", t.ID.String()))
			continue
		}

		if !errors.Is(err, ErrTypeAlreadyExists) {
			return &RegistrationFault{Type: t.ID, Reason: "transport error during registration", Cause: err}
		}

		remote, describeErr := transport.DescribeWorkflowType(ctx, domain, t.ID)
		if describeErr != nil {
			return &RegistrationFault{Type: t.ID, Reason: "transport error describing existing type", Cause: describeErr}
		}

		if !cfg.equalDefaults(remote.normalized()) {
			return &RegistrationFault{Type: t.ID, Reason: "local defaults disagree with remote registration"}
		}

		r.logger.Info("workflow type already registered with matching defaults", zap.String("type", t.ID.String()))
	}
	return nil
}
