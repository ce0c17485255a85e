// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package backoff implements the small bounded-attempt retrier the history
// pager uses for paginated fetches, and the unbounded poll retry the worker
// loop uses for long-poll transport errors.
package backoff

import (
	"context"
	"time"
)

// done is returned by a Retrier once its policy has no more attempts left.
const done time.Duration = -1

type (
	// Operation is the unit of work Retry wraps.
	Operation func() error

	// IsRetryable excludes certain errors from the retry loop.
	IsRetryable func(error) bool

	// RetryPolicy describes how a Retrier should space out attempts.
	RetryPolicy interface {
		NewRetrier() Retrier
	}

	// Retrier hands out successive backoff durations, or done when exhausted.
	Retrier interface {
		NextBackOff() time.Duration
		Reset()
	}

	// ConstantPolicy retries a fixed number of times with a fixed delay
	// between attempts. The history pager's page-fetch retry (spec: retried
	// up to 7 times) uses this.
	ConstantPolicy struct {
		Delay       time.Duration
		MaxAttempts int
	}

	constantRetrier struct {
		policy  ConstantPolicy
		attempt int
	}

	// UnboundedPolicy never exhausts; used by the worker loop's long-poll
	// retry, which the spec requires to retry indefinitely.
	UnboundedPolicy struct {
		Delay time.Duration
	}

	unboundedRetrier struct {
		policy UnboundedPolicy
	}
)

// NewRetrier returns a fresh Retrier counting from zero attempts.
func (p ConstantPolicy) NewRetrier() Retrier {
	return &constantRetrier{policy: p}
}

func (r *constantRetrier) NextBackOff() time.Duration {
	if r.attempt >= r.policy.MaxAttempts {
		return done
	}
	r.attempt++
	return r.policy.Delay
}

func (r *constantRetrier) Reset() {
	r.attempt = 0
}

// NewRetrier returns a Retrier that always yields a backoff duration.
func (p UnboundedPolicy) NewRetrier() Retrier {
	return &unboundedRetrier{policy: p}
}

func (r *unboundedRetrier) NextBackOff() time.Duration {
	return r.policy.Delay
}

func (r *unboundedRetrier) Reset() {}

// Retry wraps operation with policy, calling isRetryable (if non-nil) to
// decide whether a given failure should be retried at all. It respects ctx
// cancellation between attempts.
func Retry(ctx context.Context, operation Operation, policy RetryPolicy, isRetryable IsRetryable) error {
	var lastErr error

	r := policy.NewRetrier()
	for {
		opErr := operation()
		if opErr == nil {
			return nil
		}
		lastErr = opErr

		next := r.NextBackOff()
		if next == done {
			return lastErr
		}

		if isRetryable != nil && !isRetryable(opErr) {
			return lastErr
		}

		if ctxDone := ctx.Done(); ctxDone != nil {
			timer := time.NewTimer(next)
			select {
			case <-ctxDone:
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
				continue
			}
		}

		time.Sleep(next)
	}
}
