// Package batch coordinates one bulk move: enumerate the source prefix,
// filter candidates, plan destination keys, and execute copies in parallel.
package batch

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/objectops/s3move/internal/move/copier"
	"github.com/objectops/s3move/internal/move/enumerator"
	"github.com/objectops/s3move/internal/move/executor"
	"github.com/objectops/s3move/internal/move/filter"
	"github.com/objectops/s3move/internal/move/planner"
	"github.com/objectops/s3move/internal/s3api"
	"github.com/objectops/s3move/movetypes"
)

// Manager runs batch moves. Each Run is independent; concurrent batches do
// not coordinate with each other.
type Manager struct {
	enumerator *enumerator.Enumerator
	planner    *planner.Planner
	copier     *copier.Copier
	logger     *logrus.Logger
}

// New creates a batch manager backed by the given store client.
func New(client s3api.S3API, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}

	return &Manager{
		enumerator: enumerator.New(client),
		planner:    planner.New(client),
		copier:     copier.New(client),
		logger:     logger,
	}
}

// WithIntervals overrides the copier and enumerator retry intervals.
func (m *Manager) WithIntervals(enumRetry, copyBase, copyPoll time.Duration) *Manager {
	m.enumerator.WithRetryDelay(enumRetry)
	m.copier.WithIntervals(copyBase, copyPoll)
	return m
}

// Run executes one batch move. A non-nil error means the batch could not
// start at all, such as when enumeration fails; per-object copy failures are
// reported inside the result instead.
func (m *Manager) Run(ctx context.Context, req movetypes.MoveRequest, opts movetypes.MoveOptionConfig) (*movetypes.BatchResult, error) {
	start := time.Now()

	sourcePrefix := planner.NormalizePrefix(req.Source.Prefix)

	objects, err := m.enumerator.List(ctx, req.Source.Bucket, sourcePrefix)
	if err != nil {
		return nil, err
	}

	candidates := filter.Select(objects, req.Filter, sourcePrefix)

	m.logger.WithFields(logrus.Fields{
		"source_bucket": req.Source.Bucket,
		"source_prefix": sourcePrefix,
		"dest_bucket":   req.Dest.Bucket,
		"enumerated":    len(objects),
		"candidates":    len(candidates),
	}).Info("starting batch move")

	plans, planFailures := m.plan(ctx, candidates, req, opts)

	exec := executor.New(m.copier, opts.Parallelism, opts.DrainTimeout)
	outcomes, timedOut := exec.Execute(ctx, plans, req.Source, req.Dest, opts.StorageClassOverride)
	outcomes = append(outcomes, planFailures...)

	result := &movetypes.BatchResult{
		Candidates: candidates,
		Outcomes:   make(map[string]movetypes.CopyOutcome, len(outcomes)),
		TimedOut:   timedOut,
		Elapsed:    time.Since(start),
	}
	for _, o := range outcomes {
		result.Outcomes[o.Key] = o
		if o.Status == movetypes.StatusCopied {
			result.MovedKeys = append(result.MovedKeys, o.Key)
		}
	}

	m.report(result)
	return result, nil
}

// plan derives a destination decision for every candidate. Candidates that
// cannot be planned become failed outcomes rather than aborting the batch.
func (m *Manager) plan(
	ctx context.Context,
	candidates []movetypes.ObjectSummary,
	req movetypes.MoveRequest,
	opts movetypes.MoveOptionConfig,
) ([]planner.Plan, []movetypes.CopyOutcome) {
	var plans []planner.Plan
	var failures []movetypes.CopyOutcome

	for _, obj := range candidates {
		plan, err := m.planner.PlanObject(ctx, obj, req.Source, req.Dest, opts.ReplaceToken, opts.ReplacementToken)
		if err != nil {
			failures = append(failures, movetypes.CopyOutcome{
				Key:         obj.Key,
				Status:      movetypes.StatusFailed,
				ErrorReason: err.Error(),
			})
			continue
		}
		plans = append(plans, plan)
	}

	return plans, failures
}

// report logs the batch summary and one line per failed key.
func (m *Manager) report(result *movetypes.BatchResult) {
	m.logger.WithFields(logrus.Fields{
		"candidates": len(result.Candidates),
		"moved":      len(result.MovedKeys),
		"timed_out":  result.TimedOut,
		"elapsed":    result.Elapsed.String(),
		"success":    result.Success(),
	}).Info("batch move finished")

	for key, reason := range result.FailureReasons() {
		m.logger.WithFields(logrus.Fields{
			"key":    key,
			"reason": reason,
		}).Warn("object move failed")
	}
}
