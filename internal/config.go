package internal

import (
	"errors"
	"time"

	"github.com/swf-go/decider/converter"
)

// ErrTypeAlreadyExists is the sentinel a Transport implementation wraps and
// returns from RegisterWorkflowType when the given type is already
// registered remotely (spec §4.7 step 2).
var ErrTypeAlreadyExists = errors.New("workflow type already registered")

// ExecutionConfig is the per-workflow-type execution configuration (spec §3).
// Durations are strictly positive; zero means "unset, must be supplied by
// the starter".
type ExecutionConfig struct {
	DefaultTaskList         string
	DefaultWorkflowDuration time.Duration
	DefaultDecisionDuration time.Duration
	DefaultChildPolicy      ChildPolicy
	RateLimit               int
}

// DefaultRateLimit is used when a workflow type declares no explicit rate
// limit (spec §3).
const DefaultRateLimit = 64

// normalized returns a copy of c with RateLimit defaulted and ChildPolicy
// upper-cased.
func (c ExecutionConfig) normalized() ExecutionConfig {
	out := c
	if out.RateLimit <= 0 {
		out.RateLimit = DefaultRateLimit
	}
	out.DefaultChildPolicy = normalizeChildPolicy(out.DefaultChildPolicy)
	return out
}

// equalDefaults compares the fields the registry's compatibility check uses
// (spec §4.7 step 2): task list, workflow duration, decision duration, child
// policy. RateLimit is local-only and not compared.
func (c ExecutionConfig) equalDefaults(other ExecutionConfig) bool {
	return c.DefaultTaskList == other.DefaultTaskList &&
		c.DefaultWorkflowDuration == other.DefaultWorkflowDuration &&
		c.DefaultDecisionDuration == other.DefaultDecisionDuration &&
		normalizeChildPolicy(c.DefaultChildPolicy) == normalizeChildPolicy(other.DefaultChildPolicy)
}

func secondsOf(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// ProxyConfig describes one dependency a workflow declares (spec §3). A
// proxy schedules either an activity or a child workflow, depending on how
// the runner binds it.
type ProxyConfig struct {
	DepName string
	Target  TypeID

	TaskList string

	ScheduleToStart time.Duration
	ScheduleToClose time.Duration
	StartToClose    time.Duration
	Heartbeat       time.Duration

	// Retry is the sequence of non-negative delays between attempts,
	// defaulting to {0,0,0} (spec §3).
	Retry []time.Duration

	InputCodec  converter.DataConverter
	ResultCodec converter.DataConverter
}

// DefaultRetrySchedule is used when a ProxyConfig does not specify one.
var DefaultRetrySchedule = []time.Duration{0, 0, 0}

func (c ProxyConfig) retrySchedule() []time.Duration {
	if len(c.Retry) == 0 {
		return DefaultRetrySchedule
	}
	return c.Retry
}

// delayForAttempt returns the retry delay for the given zero-based attempt
// number, clamping to the schedule's last entry once exhausted.
func (c ProxyConfig) delayForAttempt(attempt int) time.Duration {
	sched := c.retrySchedule()
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= len(sched) {
		attempt = len(sched) - 1
	}
	return sched[attempt]
}
