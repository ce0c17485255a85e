// Package swf is the public surface user code imports to define workflows
// and activities. The actual decision engine lives in an internal package,
// the way Cadence/Temporal keep their replay engine internal and expose it
// through type aliases from an importable root package: internal/ is only
// importable from within this module, so anything a caller outside this
// module needs to name (Context, Workflow, Future, ProxyConfig, ...) is
// re-exported here by alias rather than by wrapper type, so a value built
// against swf.X is, at the type level, the same value the engine consumes.
package swf

import "github.com/swf-go/decider/internal"

type (
	// TypeID names a registered workflow or activity type: a (name, version)
	// pair. The two namespaces are independent.
	TypeID = internal.TypeID

	// ChildPolicy controls what happens to open child workflows when their
	// parent closes.
	ChildPolicy = internal.ChildPolicy

	// ExecutionConfig is a workflow type's registered execution defaults.
	ExecutionConfig = internal.ExecutionConfig

	// ProxyConfig describes one dependency (activity or child workflow) a
	// workflow declares.
	ProxyConfig = internal.ProxyConfig

	// Context is the per-decision surface a Workflow's Execute method reads
	// and schedules against.
	Context = internal.Context

	// Future is the result handle a proxy call returns.
	Future = internal.Future

	// ActivityProxy represents one declared activity dependency.
	ActivityProxy = internal.ActivityProxy

	// WorkflowProxy represents one declared child-workflow dependency.
	WorkflowProxy = internal.WorkflowProxy

	// Workflow is the user-code entry point the engine instantiates fresh
	// for every decision task.
	Workflow = internal.Workflow

	// WorkflowFactory constructs a fresh Workflow for one decision task.
	WorkflowFactory = internal.WorkflowFactory

	// RestartSignal is returned by a Workflow's Execute method to request
	// continue-as-new with a new input.
	RestartSignal = internal.RestartSignal

	// Starter begins new workflow executions for a single registered type.
	Starter = internal.Starter

	// StartInput is the caller-supplied portion of a new execution.
	StartInput = internal.StartInput

	// Transport is the thin request/response client the engine depends on;
	// see the sibling transport package for the AWS SWF implementation.
	Transport = internal.Transport
)

const (
	// ChildPolicyUnset means the caller did not specify a policy.
	ChildPolicyUnset = internal.ChildPolicyUnset
	// ChildPolicyTerminate terminates children when the parent closes.
	ChildPolicyTerminate = internal.ChildPolicyTerminate
	// ChildPolicyRequestCancel requests cancellation of children.
	ChildPolicyRequestCancel = internal.ChildPolicyRequestCancel
	// ChildPolicyAbandon leaves children running independently.
	ChildPolicyAbandon = internal.ChildPolicyAbandon

	// DefaultRateLimit is used when a workflow type declares no explicit
	// rate limit.
	DefaultRateLimit = internal.DefaultRateLimit
)

// ErrBlocked is the sentinel a Workflow's Execute method returns (wrapped or
// bare) to signal "not done yet" for this decision run.
var ErrBlocked = internal.ErrBlocked
