// Package enumerator lists every object under a source prefix using
// store-side pagination.
//
// A single call is all-or-nothing: transient store errors are retried in
// place, and a non-transient error fails the call with no partial results.
package enumerator

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cenkalti/backoff/v4"

	s3merrors "github.com/objectops/s3move/errors"
	"github.com/objectops/s3move/internal/move/filter"
	"github.com/objectops/s3move/internal/s3api"
	"github.com/objectops/s3move/movetypes"
)

const (
	// retryDelay is how long to wait before retrying a page after a
	// transient store error.
	retryDelay = 300 * time.Millisecond

	// pageSize is the maximum page size S3 allows.
	pageSize = 1000
)

// Enumerator lists objects under a prefix, paginating until exhaustion.
type Enumerator struct {
	client s3api.S3API

	// retryDelay is overridable so tests don't sleep for real.
	retryDelay time.Duration
}

// New creates an enumerator backed by the given store client.
func New(client s3api.S3API) *Enumerator {
	return &Enumerator{
		client:     client,
		retryDelay: retryDelay,
	}
}

// WithRetryDelay overrides the transient-retry delay.
func (e *Enumerator) WithRetryDelay(d time.Duration) *Enumerator {
	e.retryDelay = d
	return e
}

// List returns every real object whose key starts with prefix. Directory
// marker pseudo-entries (keys ending in "/") are dropped; use
// ListWithFolders to retain them. Ordering across pages is store-defined.
func (e *Enumerator) List(ctx context.Context, bucket, prefix string) ([]movetypes.ObjectSummary, error) {
	return e.list(ctx, bucket, prefix, false)
}

// ListWithFolders is the folders-included variant of List: directory marker
// entries are retained in the result.
func (e *Enumerator) ListWithFolders(ctx context.Context, bucket, prefix string) ([]movetypes.ObjectSummary, error) {
	return e.list(ctx, bucket, prefix, true)
}

// ListWithSuffix returns every object under prefix whose key ends with the
// given suffix, compared case-insensitively.
func (e *Enumerator) ListWithSuffix(ctx context.Context, bucket, prefix, suffix string) ([]movetypes.ObjectSummary, error) {
	objects, err := e.list(ctx, bucket, prefix, false)
	if err != nil {
		return nil, err
	}

	matched := objects[:0]
	for _, obj := range objects {
		if filter.HasSuffixFold(obj.Key, suffix) {
			matched = append(matched, obj)
		}
	}
	return matched, nil
}

func (e *Enumerator) list(ctx context.Context, bucket, prefix string, includeFolders bool) ([]movetypes.ObjectSummary, error) {
	var summaries []movetypes.ObjectSummary
	var continuationToken *string

	for {
		input := &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			MaxKeys:           aws.Int32(pageSize),
			ContinuationToken: continuationToken,
		}

		page, err := e.listPage(ctx, input)
		if err != nil {
			// All-or-nothing: the partial summaries are discarded.
			return nil, s3merrors.NewBucketError("enumerate", bucket, s3merrors.ErrEnumerationFailed).
				WithMessage(err.Error())
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !includeFolders && strings.HasSuffix(key, "/") {
				continue
			}
			summaries = append(summaries, movetypes.ObjectSummary{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				StorageClass: movetypes.StorageClass(obj.StorageClass),
				LastModified: aws.ToTime(obj.LastModified),
				ETag:         aws.ToString(obj.ETag),
			})
		}

		if !aws.ToBool(page.IsTruncated) {
			break
		}
		continuationToken = page.NextContinuationToken
	}

	return summaries, nil
}

// listPage fetches one page, retrying the same page indefinitely on
// transient store errors with a short constant delay. A non-transient error
// stops the retry loop immediately.
func (e *Enumerator) listPage(ctx context.Context, input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	var page *s3.ListObjectsV2Output

	policy := backoff.WithContext(backoff.NewConstantBackOff(e.retryDelay), ctx)
	err := backoff.Retry(func() error {
		out, err := e.client.ListObjectsV2(ctx, input)
		if err != nil {
			if s3merrors.IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		page = out
		return nil
	}, policy)
	if err != nil {
		return nil, err
	}

	return page, nil
}
