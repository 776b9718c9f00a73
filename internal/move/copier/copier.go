// Package copier performs a single server-side object copy with retry.
//
// Copy initiation is attempted up to a fixed number of times with a linearly
// growing delay between attempts. Once the store accepts the copy, the
// destination is polled until the new object is observable.
package copier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cenkalti/backoff/v4"

	s3merrors "github.com/objectops/s3move/errors"
	"github.com/objectops/s3move/internal/s3api"
	"github.com/objectops/s3move/movetypes"
)

const (
	// maxAttempts bounds copy initiation tries per object.
	maxAttempts = 10

	// baseDelay is multiplied by the attempt number between initiation
	// retries, so waits grow 300ms, 600ms, 900ms and so on.
	baseDelay = 300 * time.Millisecond

	// pollInterval is how often the destination is probed for the copied
	// object after initiation succeeds.
	pollInterval = 1 * time.Second
)

// Copier copies single objects between locations in the same store.
type Copier struct {
	client s3api.S3API

	// Intervals are overridable so tests don't sleep for real.
	baseDelay    time.Duration
	pollInterval time.Duration
}

// New creates a copier backed by the given store client.
func New(client s3api.S3API) *Copier {
	return &Copier{
		client:       client,
		baseDelay:    baseDelay,
		pollInterval: pollInterval,
	}
}

// WithIntervals overrides the retry base delay and completion poll interval.
func (c *Copier) WithIntervals(base, poll time.Duration) *Copier {
	c.baseDelay = base
	c.pollInterval = poll
	return c
}

// linearBackOff waits attempt*base between tries and gives up after max
// attempts.
type linearBackOff struct {
	base    time.Duration
	max     int
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	if b.attempt >= b.max {
		return backoff.Stop
	}
	return time.Duration(b.attempt) * b.base
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

// Copy copies obj from source to destKey in dest, carrying the source
// object's storage class unless override is non-empty. It returns once the
// copied object is observable at the destination.
func (c *Copier) Copy(ctx context.Context, obj movetypes.ObjectSummary, source, dest movetypes.Location, destKey string, override movetypes.StorageClass) error {
	storageClass := obj.StorageClass
	if override != "" {
		storageClass = override
	}

	input := &s3.CopyObjectInput{
		Bucket:     aws.String(dest.Bucket),
		Key:        aws.String(destKey),
		CopySource: aws.String(copySource(source.Bucket, obj.Key)),
	}
	if storageClass != "" {
		input.StorageClass = types.StorageClass(storageClass)
	}

	if err := c.initiate(ctx, input); err != nil {
		return s3merrors.NewObjectError("copy", dest.Bucket, destKey, s3merrors.ErrCopyFailed).
			WithMessage(err.Error())
	}

	if err := c.awaitCopied(ctx, dest.Bucket, destKey); err != nil {
		return s3merrors.NewObjectError("copy", dest.Bucket, destKey, err)
	}
	return nil
}

// initiate issues the copy request, retrying any error up to maxAttempts
// times with linearly growing waits.
func (c *Copier) initiate(ctx context.Context, input *s3.CopyObjectInput) error {
	policy := backoff.WithContext(&linearBackOff{base: c.baseDelay, max: maxAttempts}, ctx)
	return backoff.Retry(func() error {
		_, err := c.client.CopyObject(ctx, input)
		return err
	}, policy)
}

// awaitCopied polls the destination until the object is observable or the
// context ends.
func (c *Copier) awaitCopied(ctx context.Context, bucket, key string) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err == nil {
			return nil
		}
		if !isNotFoundYet(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func isNotFoundYet(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "NotFound") ||
		strings.Contains(msg, "NoSuchKey") ||
		strings.Contains(msg, "404")
}

// copySource builds the header form S3 expects for the copy origin.
func copySource(bucket, key string) string {
	return fmt.Sprintf("%s/%s", bucket, key)
}
