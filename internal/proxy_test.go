package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swf-go/decider/converter"
)

func newTestContext(t *testing.T, events []Event) *Context {
	t.Helper()
	s, err := Project(events)
	require.NoError(t, err)
	ctx := NewContext(nil, nil, "test-domain", "test-tasklist", s, nil, 0, "")
	ctx.SetRateLimit(DefaultRateLimit)
	return ctx
}

func Test_ActivityProxy_FirstCall_SchedulesAndBlocks(t *testing.T) {
	ctx := newTestContext(t, []Event{&WorkflowExecutionStarted{}})
	p := ActivityProxy{Config: ProxyConfig{DepName: "dep", Target: TypeID{Name: "act", Version: "1"}, InputCodec: converter.Default, ResultCodec: converter.Default}}

	f := p.Call(ctx, 7)
	assert.False(t, f.IsReady())
	assert.ErrorIs(t, f.Result(nil), ErrBlocked)

	require.Len(t, ctx.decisions, 1)
	assert.Equal(t, DecisionScheduleActivityTask, ctx.decisions[0].Kind)
	assert.Equal(t, "0", ctx.decisions[0].ActivityCallKey)
	assert.Equal(t, `[[7],{}]`, normalizeJSON(ctx.decisions[0].ActivityInput))
}

func Test_ActivityProxy_ResolvesFromHistory(t *testing.T) {
	ctx := newTestContext(t, []Event{
		&WorkflowExecutionStarted{},
		ev(2, &ActivityScheduled{CallKey: "0"}),
		ev(3, &ActivityCompleted{ScheduledID: 2, Result: "14"}),
	})
	p := ActivityProxy{Config: ProxyConfig{DepName: "dep", Target: TypeID{Name: "act", Version: "1"}, InputCodec: converter.Default, ResultCodec: converter.Default}}

	f := p.Call(ctx, 7)
	require.True(t, f.IsReady())
	var out int
	require.NoError(t, f.Result(&out))
	assert.Equal(t, 14, out)
	assert.Empty(t, ctx.decisions, "an already-resolved call must not re-schedule")
}

func Test_ActivityProxy_RetryViaTimer(t *testing.T) {
	cfg := ProxyConfig{
		DepName: "dep", Target: TypeID{Name: "act", Version: "1"},
		Retry:       []time.Duration{0, 5 * time.Second, 10 * time.Second},
		InputCodec:  converter.Default,
		ResultCodec: converter.Default,
	}
	p := ActivityProxy{Config: cfg}

	// First attempt fails.
	ctx := newTestContext(t, []Event{
		&WorkflowExecutionStarted{},
		ev(2, &ActivityScheduled{CallKey: "0"}),
		ev(3, &ActivityFailed{ScheduledID: 2, Reason: "boom"}),
	})
	f := p.Call(ctx, 7)
	assert.False(t, f.IsReady())
	require.Len(t, ctx.decisions, 1)
	assert.Equal(t, DecisionStartTimer, ctx.decisions[0].Kind)
	assert.Equal(t, "0:t", ctx.decisions[0].TimerID)
	assert.Equal(t, "5", ctx.decisions[0].StartToFireTimeout)

	// Persist and restore the attempt counter the way the runner would.
	setCallAttempt(ctx, "0", 1)
	blob, err := ctx.persistedContextBlob()
	require.NoError(t, err)
	persisted, _, err := deconcatContext(blob)
	require.NoError(t, err)

	// Timer fires: a fresh schedule is emitted under the same call key.
	ctx2 := newTestContextWithCallContext(t, []Event{
		&WorkflowExecutionStarted{},
		ev(2, &ActivityScheduled{CallKey: "0"}),
		ev(3, &ActivityFailed{ScheduledID: 2, Reason: "boom"}),
		&TimerStarted{TimerID: "0:t"},
		&TimerFired{TimerID: "0:t"},
	}, persisted.CallContext)
	f2 := p.Call(ctx2, 7)
	assert.False(t, f2.IsReady())
	require.Len(t, ctx2.decisions, 1)
	assert.Equal(t, DecisionScheduleActivityTask, ctx2.decisions[0].Kind)
	assert.Equal(t, "0", ctx2.decisions[0].ActivityCallKey)
}

func Test_ActivityProxy_RetryExhausted_ReturnsError(t *testing.T) {
	cfg := ProxyConfig{
		DepName: "dep", Target: TypeID{Name: "act", Version: "1"},
		Retry:       []time.Duration{0, 0},
		InputCodec:  converter.Default,
		ResultCodec: converter.Default,
	}
	p := ActivityProxy{Config: cfg}

	callCtx := map[string]string{"0": "1"} // already on attempt index 1, the last entry
	ctx := newTestContextWithCallContext(t, []Event{
		&WorkflowExecutionStarted{},
		ev(2, &ActivityScheduled{CallKey: "0"}),
		ev(3, &ActivityFailed{ScheduledID: 2, Reason: "boom"}),
	}, callCtx)

	f := p.Call(ctx, 7)
	require.True(t, f.IsReady())
	var errActivity *ActivityError
	require.True(t, errors.As(f.Err(), &errActivity))
	assert.Equal(t, "boom", errActivity.Reason)
	assert.Empty(t, ctx.decisions)
}

func Test_ScheduleWithRetry_RespectsRateLimitBudget(t *testing.T) {
	ctx := newTestContext(t, []Event{&WorkflowExecutionStarted{}})
	ctx.SetRateLimit(0)
	p := ActivityProxy{Config: ProxyConfig{DepName: "dep", Target: TypeID{Name: "act", Version: "1"}, InputCodec: converter.Default, ResultCodec: converter.Default}}

	f := p.Call(ctx, 1)
	assert.False(t, f.IsReady())
	assert.Empty(t, ctx.decisions, "exhausted rate budget must not emit a schedule decision")
}

func newTestContextWithCallContext(t *testing.T, events []Event, callContext map[string]string) *Context {
	t.Helper()
	s, err := Project(events)
	require.NoError(t, err)
	ctx := NewContext(nil, nil, "test-domain", "test-tasklist", s, callContext, 0, "")
	ctx.SetRateLimit(DefaultRateLimit)
	return ctx
}

// normalizeJSON strips whitespace so tests don't depend on json.Marshal's
// exact byte layout.
func normalizeJSON(s string) string {
	out := make([]byte, 0, len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inString = !inString
		}
		if !inString && (c == ' ' || c == '\n' || c == '\t') {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}
