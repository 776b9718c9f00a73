package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockS3Client(t *testing.T) {
	t.Run("HeadObject with custom function", func(t *testing.T) {
		mock := &MockS3Client{
			HeadObjectFunc: func(_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
				assert.Equal(t, "test-bucket", *params.Bucket)
				assert.Equal(t, "test-key", *params.Key)
				return &s3.HeadObjectOutput{ETag: StringPtr("test-etag")}, nil
			},
		}

		output, err := mock.HeadObject(context.Background(), &s3.HeadObjectInput{
			Bucket: StringPtr("test-bucket"),
			Key:    StringPtr("test-key"),
		})

		require.NoError(t, err)
		assert.Equal(t, "test-etag", *output.ETag)
	})

	t.Run("defaults succeed when no function is set", func(t *testing.T) {
		mock := &MockS3Client{}

		_, err := mock.ListObjectsV2(context.Background(), &s3.ListObjectsV2Input{})
		require.NoError(t, err)

		_, err = mock.CopyObject(context.Background(), &s3.CopyObjectInput{})
		require.NoError(t, err)

		_, err = mock.DeleteObject(context.Background(), &s3.DeleteObjectInput{})
		require.NoError(t, err)
	})
}

func TestFakeStorePagination(t *testing.T) {
	store := NewFakeStore()
	store.PageSize = 2
	for _, key := range []string{"data/a", "data/b", "data/c", "data/d", "data/e"} {
		store.Put("bucket", key, FakeObject{Size: 1, LastModified: time.Now()})
	}

	var keys []string
	var token *string
	for {
		out, err := store.ListObjectsV2(context.Background(), &s3.ListObjectsV2Input{
			Bucket:            StringPtr("bucket"),
			Prefix:            StringPtr("data/"),
			ContinuationToken: token,
		})
		require.NoError(t, err)
		require.LessOrEqual(t, len(out.Contents), 2)
		for _, obj := range out.Contents {
			keys = append(keys, *obj.Key)
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	assert.Equal(t, []string{"data/a", "data/b", "data/c", "data/d", "data/e"}, keys)
}

func TestFakeStoreHeadMissingObject(t *testing.T) {
	store := NewFakeStore()

	_, err := store.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: StringPtr("bucket"),
		Key:    StringPtr("missing"),
	})

	var apiErr smithy.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NotFound", apiErr.ErrorCode())
}

func TestFakeStoreCopy(t *testing.T) {
	t.Run("copies between buckets", func(t *testing.T) {
		store := NewFakeStore()
		store.Put("src", "data/file.csv", FakeObject{Size: 42, ETag: "etag-1"})

		_, err := store.CopyObject(context.Background(), &s3.CopyObjectInput{
			Bucket:     StringPtr("dst"),
			Key:        StringPtr("moved/file.csv"),
			CopySource: StringPtr("src/data/file.csv"),
		})

		require.NoError(t, err)
		assert.True(t, store.Has("dst", "moved/file.csv"))
		assert.Equal(t, 1, store.CopyCalls())
	})

	t.Run("injected failures exhaust before success", func(t *testing.T) {
		store := NewFakeStore()
		store.Put("src", "data/file.csv", FakeObject{Size: 42})
		store.CopyFailures["moved/file.csv"] = 2

		input := &s3.CopyObjectInput{
			Bucket:     StringPtr("dst"),
			Key:        StringPtr("moved/file.csv"),
			CopySource: StringPtr("src/data/file.csv"),
		}

		for i := 0; i < 2; i++ {
			_, err := store.CopyObject(context.Background(), input)
			require.Error(t, err)
		}
		_, err := store.CopyObject(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, 3, store.CopyCalls())
	})

	t.Run("missing source fails", func(t *testing.T) {
		store := NewFakeStore()

		_, err := store.CopyObject(context.Background(), &s3.CopyObjectInput{
			Bucket:     StringPtr("dst"),
			Key:        StringPtr("moved/file.csv"),
			CopySource: StringPtr("src/data/missing.csv"),
		})

		var apiErr smithy.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "NoSuchKey", apiErr.ErrorCode())
	})
}

func TestFakeStoreDeleteIsIdempotent(t *testing.T) {
	store := NewFakeStore()
	store.Put("bucket", "data/file.csv", FakeObject{Size: 1})

	for i := 0; i < 2; i++ {
		_, err := store.DeleteObject(context.Background(), &s3.DeleteObjectInput{
			Bucket: StringPtr("bucket"),
			Key:    StringPtr("data/file.csv"),
		})
		require.NoError(t, err)
	}
	assert.False(t, store.Has("bucket", "data/file.csv"))
}

func TestGenerateTestKey(t *testing.T) {
	key := GenerateTestKey("batch")
	assert.True(t, strings.HasPrefix(key, "batch/"))
	assert.NotEqual(t, key, GenerateTestKey("batch"))
}

func TestGenerateTestBucketName(t *testing.T) {
	name := GenerateTestBucketName("Move_Test")
	assert.NotEmpty(t, name)
	assert.LessOrEqual(t, len(name), 63)
	assert.Equal(t, name, strings.ToLower(name))
	assert.NotContains(t, name, "_")
}
