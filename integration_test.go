//go:build integration
// +build integration

package s3move_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectops/s3move"
	"github.com/objectops/s3move/internal/testutil"
	"github.com/objectops/s3move/movetypes"
)

// TestIntegrationMoveObjects runs a whole batch move against LocalStack.
func TestIntegrationMoveObjects(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	s3Client, cleanup := testutil.SetupLocalStackTest(t)
	defer cleanup()

	srcBucket := testutil.GenerateTestBucketName("move-src")
	dstBucket := testutil.GenerateTestBucketName("move-dst")
	require.NoError(t, testutil.CreateTestBucketInLocalStack(ctx, s3Client, srcBucket))
	require.NoError(t, testutil.CreateTestBucketInLocalStack(ctx, s3Client, dstBucket))
	defer testutil.CleanupTestBucketInLocalStack(ctx, s3Client, srcBucket)
	defer testutil.CleanupTestBucketInLocalStack(ctx, s3Client, dstBucket)

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("landing/batch/file-%02d.csv", i)
		err := testutil.PutTestObjectInLocalStack(ctx, s3Client, srcBucket, key, []byte("col1,col2\n1,2\n"))
		require.NoError(t, err)
	}
	require.NoError(t, testutil.PutTestObjectInLocalStack(ctx, s3Client, srcBucket,
		"landing/batch/file-ignored.tmp", []byte("scratch")))

	client := s3move.NewWithClient(s3Client)

	t.Run("filtered batch move", func(t *testing.T) {
		result, err := client.MoveObjects(ctx, movetypes.MoveRequest{
			Source: movetypes.Location{Bucket: srcBucket, Prefix: "landing/batch"},
			Dest:   movetypes.Location{Bucket: dstBucket, Prefix: "archive/batch"},
			Filter: movetypes.FilterSpec{ExcludedNameFragments: []string{".tmp"}},
		}, s3move.WithMoveParallelism(4))
		require.NoError(t, err)

		assert.True(t, result.Success())
		assert.Len(t, result.MovedKeys, 5)

		for i := 0; i < 5; i++ {
			exists, err := client.Exists(ctx, dstBucket, fmt.Sprintf("archive/batch/file-%02d.csv", i))
			require.NoError(t, err)
			assert.True(t, exists)
		}

		exists, err := client.Exists(ctx, dstBucket, "archive/batch/file-ignored.tmp")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rerun skips existing destinations", func(t *testing.T) {
		result, err := client.MoveObjects(ctx, movetypes.MoveRequest{
			Source: movetypes.Location{Bucket: srcBucket, Prefix: "landing/batch"},
			Dest:   movetypes.Location{Bucket: dstBucket, Prefix: "archive/batch"},
			Filter: movetypes.FilterSpec{ExcludedNameFragments: []string{".tmp"}},
		})
		require.NoError(t, err)

		assert.True(t, result.Success())
		assert.Empty(t, result.MovedKeys)
		for _, outcome := range result.Outcomes {
			assert.Equal(t, movetypes.StatusSkippedExists, outcome.Status)
		}
	})

	t.Run("listing variants", func(t *testing.T) {
		objects, err := client.ListObjects(ctx, srcBucket, "landing/")
		require.NoError(t, err)
		assert.Len(t, objects, 6)

		csvs, err := client.ListObjectsWithSuffix(ctx, srcBucket, "landing/", ".CSV")
		require.NoError(t, err)
		assert.Len(t, csvs, 5)
	})

	t.Run("metadata and delete", func(t *testing.T) {
		meta, err := client.GetMetadata(ctx, dstBucket, "archive/batch/file-00.csv")
		require.NoError(t, err)
		assert.Greater(t, meta.ContentLength, int64(0))

		require.NoError(t, client.Delete(ctx, dstBucket, "archive/batch/file-00.csv"))
		exists, err := client.Exists(ctx, dstBucket, "archive/batch/file-00.csv")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
