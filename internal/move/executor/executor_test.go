// Package executor provides tests for the executor package.
package executor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectops/s3move/internal/move/copier"
	"github.com/objectops/s3move/internal/move/planner"
	"github.com/objectops/s3move/internal/testutil"
	"github.com/objectops/s3move/movetypes"
)

var (
	src = movetypes.Location{Bucket: "src", Prefix: "in/"}
	dst = movetypes.Location{Bucket: "dst", Prefix: "out/"}
)

func copyPlans(keys ...string) []planner.Plan {
	plans := make([]planner.Plan, 0, len(keys))
	for _, key := range keys {
		plans = append(plans, planner.Plan{
			Object:  movetypes.ObjectSummary{Key: "in/" + key},
			DestKey: "out/" + key,
			Action:  planner.ActionCopy,
		})
	}
	return plans
}

func seedSource(store *testutil.FakeStore, plans []planner.Plan) {
	for _, plan := range plans {
		store.Put("src", plan.Object.Key, testutil.FakeObject{Size: 1})
	}
}

func fastCopier(store *testutil.FakeStore) *copier.Copier {
	return copier.New(store).WithIntervals(time.Millisecond, time.Millisecond)
}

func TestExecuteCopiesEveryPlan(t *testing.T) {
	store := testutil.NewFakeStore()
	plans := copyPlans("a", "b", "c")
	seedSource(store, plans)

	exec := New(fastCopier(store), 2, time.Minute)
	outcomes, timedOut := exec.Execute(context.Background(), plans, src, dst, "")

	assert.False(t, timedOut)
	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.Equal(t, movetypes.StatusCopied, o.Status)
	}
	assert.Equal(t, []string{"out/a", "out/b", "out/c"}, store.Keys("dst"))
}

func TestExecuteReportsSkipsWithoutCopying(t *testing.T) {
	store := testutil.NewFakeStore()
	plans := copyPlans("a")
	plans[0].Action = planner.ActionSkipExists

	exec := New(fastCopier(store), 2, time.Minute)
	outcomes, timedOut := exec.Execute(context.Background(), plans, src, dst, "")

	assert.False(t, timedOut)
	require.Len(t, outcomes, 1)
	assert.Equal(t, movetypes.StatusSkippedExists, outcomes[0].Status)
	assert.Equal(t, 0, store.CopyCalls())
}

func TestExecuteBoundsConcurrency(t *testing.T) {
	const bound = 3

	var inFlight, peak atomic.Int64
	store := testutil.NewFakeStore()
	plans := copyPlans("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	seedSource(store, plans)

	mock := &testutil.MockS3Client{
		CopyObjectFunc: func(ctx context.Context, params *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				max := peak.Load()
				if current <= max || peak.CompareAndSwap(max, current) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			return store.CopyObject(ctx, params)
		},
		HeadObjectFunc: store.HeadObject,
	}

	exec := New(copier.New(mock).WithIntervals(time.Millisecond, time.Millisecond), bound, time.Minute)
	outcomes, timedOut := exec.Execute(context.Background(), plans, src, dst, "")

	assert.False(t, timedOut)
	assert.Len(t, outcomes, len(plans))
	assert.LessOrEqual(t, peak.Load(), int64(bound))
	assert.GreaterOrEqual(t, peak.Load(), int64(1))
}

func TestExecuteReportsPerObjectFailures(t *testing.T) {
	store := testutil.NewFakeStore()
	plans := copyPlans("a", "b", "c")
	seedSource(store, plans)
	store.CopyFailures["out/b"] = -1 // fail forever

	exec := New(fastCopier(store), 2, time.Minute)
	outcomes, timedOut := exec.Execute(context.Background(), plans, src, dst, "")

	assert.False(t, timedOut)
	require.Len(t, outcomes, 3)

	byKey := make(map[string]movetypes.CopyOutcome, len(outcomes))
	for _, o := range outcomes {
		byKey[o.Key] = o
	}
	assert.Equal(t, movetypes.StatusCopied, byKey["in/a"].Status)
	assert.Equal(t, movetypes.StatusCopied, byKey["in/c"].Status)
	assert.Equal(t, movetypes.StatusFailed, byKey["in/b"].Status)
	assert.NotEmpty(t, byKey["in/b"].ErrorReason)
}

func TestExecuteTimesOutWithPartialOutcomes(t *testing.T) {
	store := testutil.NewFakeStore()
	plans := copyPlans("a", "b", "c", "d")
	seedSource(store, plans)

	release := make(chan struct{})
	mock := &testutil.MockS3Client{
		CopyObjectFunc: func(ctx context.Context, params *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
			<-release
			return store.CopyObject(ctx, params)
		},
		HeadObjectFunc: store.HeadObject,
	}
	defer close(release)

	exec := New(copier.New(mock).WithIntervals(time.Millisecond, time.Millisecond), 2, 50*time.Millisecond)
	outcomes, timedOut := exec.Execute(context.Background(), plans, src, dst, "")

	assert.True(t, timedOut)
	assert.Less(t, len(outcomes), len(plans))
}

func TestExecuteEmptyPlanList(t *testing.T) {
	exec := New(fastCopier(testutil.NewFakeStore()), 2, time.Minute)
	outcomes, timedOut := exec.Execute(context.Background(), nil, src, dst, "")

	assert.False(t, timedOut)
	assert.Empty(t, outcomes)
}

func TestDefaultParallelismIsPositive(t *testing.T) {
	assert.Greater(t, DefaultParallelism(), 1)
}
