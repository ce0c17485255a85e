package internal

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// DecisionTask is one fully-paginated decision task (spec §4.2): a task
// token, the workflow it belongs to, and the complete event history the
// pager assembled across pages.
type DecisionTask struct {
	TaskToken    string
	Domain       string
	TaskList     string
	WorkflowID   string
	RunID        string
	WorkflowType TypeID
	Events       []Event
}

// proxyTag is the struct tag the runner reads off a Workflow's fields to
// match declared ProxyConfig entries to ActivityProxy/WorkflowProxy fields.
const proxyTag = "swf"

// Run executes the six-step decision algorithm of spec §4.6 for one
// DecisionTask: project history into decision state, restore the persisted
// context, instantiate a fresh workflow with its proxies injected, invoke
// it, and flush whatever decisions that invocation produced.
//
// Unlike a panic/recover "unwind on block" design, Execute signals
// not-done-yet by returning an error satisfying errors.Is(err, ErrBlocked):
// the sum-typed Future model of proxy.go makes that explicit rather than
// hidden in control flow.
func Run(ctx context.Context, task *DecisionTask, wt WorkflowType, transport Transport, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	state, err := Project(task.Events)
	if err != nil {
		return fmt.Errorf("project history for %s/%s: %w", task.WorkflowID, task.RunID, err)
	}
	if state.Started == nil {
		return &InvariantError{Detail: "history has no WorkflowExecutionStarted event"}
	}

	persisted, tail, err := deconcatContext(state.LastExecutionContext)
	if err != nil {
		logger.Warn("failed to parse persisted context, starting fresh", zap.Error(err), zap.String("workflow_id", task.WorkflowID))
		persisted, tail = persistedState{}, ""
	}

	dctx := NewContext(transport, logger, task.Domain, task.TaskList, state, persisted.CallContext, 0, tail)
	dctx.SetRateLimit(wt.Config.normalized().RateLimit)

	wf := wt.Factory()
	if err := injectProxies(wf, wt.Proxies); err != nil {
		return fmt.Errorf("inject proxies into %s: %w", wt.ID, err)
	}

	result, execErr := wf.Execute(dctx, []byte(state.Started.Input))

	switch {
	case execErr == nil:
		encoded, err := wt.codec().ToValue(result)
		if err != nil {
			dctx.Fail(err.Error())
			break
		}
		dctx.Finish(encoded)

	case errors.Is(execErr, ErrBlocked):
		// Not done yet: leave the accumulated non-terminal decisions as-is.

	default:
		var restart *RestartSignal
		if errors.As(execErr, &restart) {
			encoded, err := wt.codec().ToValue(restart.Input)
			if err != nil {
				dctx.Fail(err.Error())
				break
			}
			dctx.Restart(encoded)
			break
		}
		dctx.Fail(execErr.Error())
	}

	dctx.Flush(ctx, task.TaskToken)
	return nil
}

// injectProxies sets every exported ActivityProxy/WorkflowProxy field on wf
// tagged `swf:"<dep_name>"` to the matching entry of proxies, by DepName.
// Fields with no matching entry, and entries with no matching field, are
// left alone: a workflow may declare more dependencies than one code path
// uses, and a proxy config may be shared by more than one field.
func injectProxies(wf Workflow, proxies []ProxyConfig) error {
	byName := make(map[string]ProxyConfig, len(proxies))
	for _, p := range proxies {
		byName[p.DepName] = p
	}

	v := reflect.ValueOf(wf)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dep, ok := field.Tag.Lookup(proxyTag)
		if !ok {
			continue
		}
		cfg, ok := byName[dep]
		if !ok {
			continue
		}

		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		switch field.Type {
		case reflect.TypeOf(ActivityProxy{}):
			fv.Set(reflect.ValueOf(ActivityProxy{Config: cfg}))
		case reflect.TypeOf(WorkflowProxy{}):
			fv.Set(reflect.ValueOf(WorkflowProxy{Config: cfg}))
		default:
			return fmt.Errorf("field %s tagged swf:%q has unsupported type %s", field.Name, dep, field.Type)
		}
	}
	return nil
}
