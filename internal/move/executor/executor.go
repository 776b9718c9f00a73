// Package executor runs planned copy operations in parallel.
//
// Concurrency is bounded by a semaphore channel. Each operation reports a
// CopyOutcome on a shared channel, and the batch waits for all outcomes up
// to a drain timeout; on timeout the outcomes gathered so far are returned
// and stragglers are left to finish on their own.
package executor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/objectops/s3move/internal/move/copier"
	"github.com/objectops/s3move/internal/move/planner"
	"github.com/objectops/s3move/movetypes"
)

// DefaultDrainTimeout bounds how long a batch waits for in-flight copies.
const DefaultDrainTimeout = 60 * time.Minute

// DefaultParallelism returns the default worker bound, sized to the host.
func DefaultParallelism() int {
	return runtime.NumCPU() + 1
}

// Executor executes planned copies with concurrency control.
type Executor struct {
	copier *copier.Copier

	// Concurrency control
	parallelism int
	semaphore   chan struct{}

	drainTimeout time.Duration
}

// New creates an executor with the given worker bound. Non-positive values
// fall back to the host default.
func New(c *copier.Copier, parallelism int, drainTimeout time.Duration) *Executor {
	if parallelism <= 0 {
		parallelism = DefaultParallelism()
	}
	if drainTimeout <= 0 {
		drainTimeout = DefaultDrainTimeout
	}

	return &Executor{
		copier:       c,
		parallelism:  parallelism,
		semaphore:    make(chan struct{}, parallelism),
		drainTimeout: drainTimeout,
	}
}

// Execute runs every plan and gathers one outcome per plan. Skip decisions
// are reported without touching the store. The returned bool is true when
// the drain timeout expired before all outcomes arrived, in which case the
// outcome list is partial.
func (e *Executor) Execute(
	ctx context.Context,
	plans []planner.Plan,
	source, dest movetypes.Location,
	override movetypes.StorageClass,
) ([]movetypes.CopyOutcome, bool) {
	if len(plans) == 0 {
		return nil, false
	}

	outcomes := make(chan movetypes.CopyOutcome, len(plans))

	done := make(chan struct{})
	go func() {
		defer close(done)
		e.dispatch(ctx, plans, source, dest, override, outcomes)
	}()

	timer := time.NewTimer(e.drainTimeout)
	defer timer.Stop()

	timedOut := false
	select {
	case <-done:
	case <-timer.C:
		timedOut = true
	}

	// Collect whatever has been reported. The channel is buffered to hold
	// every outcome, so a non-blocking drain sees all completed work.
	var collected []movetypes.CopyOutcome
	for {
		select {
		case outcome := <-outcomes:
			collected = append(collected, outcome)
		default:
			return collected, timedOut
		}
	}
}

// dispatch fans plans out to workers and waits for them to finish.
func (e *Executor) dispatch(
	ctx context.Context,
	plans []planner.Plan,
	source, dest movetypes.Location,
	override movetypes.StorageClass,
	outcomes chan<- movetypes.CopyOutcome,
) {
	var wg sync.WaitGroup

	for _, plan := range plans {
		if plan.Action == planner.ActionSkipExists {
			outcomes <- movetypes.CopyOutcome{
				Key:     plan.Object.Key,
				DestKey: plan.DestKey,
				Status:  movetypes.StatusSkippedExists,
			}
			continue
		}

		// Acquire semaphore
		select {
		case e.semaphore <- struct{}{}:
		case <-ctx.Done():
			outcomes <- movetypes.CopyOutcome{
				Key:         plan.Object.Key,
				DestKey:     plan.DestKey,
				Status:      movetypes.StatusFailed,
				ErrorReason: ctx.Err().Error(),
			}
			continue
		}

		wg.Add(1)
		go func(plan planner.Plan) {
			defer func() {
				<-e.semaphore
				wg.Done()
			}()

			outcomes <- e.runCopy(ctx, plan, source, dest, override)
		}(plan)
	}

	wg.Wait()
}

// runCopy performs one copy and converts the result into an outcome.
func (e *Executor) runCopy(
	ctx context.Context,
	plan planner.Plan,
	source, dest movetypes.Location,
	override movetypes.StorageClass,
) movetypes.CopyOutcome {
	outcome := movetypes.CopyOutcome{
		Key:     plan.Object.Key,
		DestKey: plan.DestKey,
	}

	if err := e.copier.Copy(ctx, plan.Object, source, dest, plan.DestKey, override); err != nil {
		outcome.Status = movetypes.StatusFailed
		outcome.ErrorReason = err.Error()
		return outcome
	}

	outcome.Status = movetypes.StatusCopied
	return outcome
}
