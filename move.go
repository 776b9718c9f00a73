// Package s3move provides the batch move operation.
package s3move

import (
	"context"

	"github.com/objectops/s3move/internal/move/batch"
	"github.com/objectops/s3move/internal/move/enumerator"
	"github.com/objectops/s3move/internal/validation"
	"github.com/objectops/s3move/movetypes"

	s3merrors "github.com/objectops/s3move/errors"
)

// MoveObjects copies every object under the source prefix that passes the
// request's filter to the destination, preserving the key structure below
// the prefix. Copies run in parallel up to the configured bound; an object
// already present at its destination key is skipped, so re-running the same
// batch converges without duplicating work.
//
// A non-nil error means the batch could not start, such as invalid input or
// a failed enumeration. Per-object copy failures do not produce an error:
// they are reported in the result's outcomes, and Success() is false.
//
// Example:
//
//	result, err := client.MoveObjects(ctx, movetypes.MoveRequest{
//	    Source: movetypes.Location{Bucket: "ingest", Prefix: "landing/2024"},
//	    Dest:   movetypes.Location{Bucket: "archive", Prefix: "cold/2024"},
//	    Filter: movetypes.FilterSpec{ExcludedNameFragments: []string{".tmp"}},
//	},
//	    s3move.WithMoveParallelism(8),
//	)
//	if err != nil {
//	    return err
//	}
//	if !result.Success() {
//	    for key, reason := range result.FailureReasons() {
//	        fmt.Printf("%s: %s\n", key, reason)
//	    }
//	}
func (c *Client) MoveObjects(
	ctx context.Context,
	req movetypes.MoveRequest,
	opts ...movetypes.MoveOption,
) (*movetypes.BatchResult, error) {
	if err := validateMoveRequest(req); err != nil {
		return nil, err
	}

	config := &movetypes.MoveOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	manager := batch.New(c.s3Client, c.logger)
	return manager.Run(ctx, req, *config)
}

// ListObjects returns every real object under the prefix. Directory marker
// entries (keys ending in "/") are excluded.
func (c *Client) ListObjects(ctx context.Context, bucket, prefix string) ([]movetypes.ObjectSummary, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, s3merrors.NewError("listObjects", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage(err.Error())
	}

	return enumerator.New(c.s3Client).List(ctx, bucket, prefix)
}

// ListObjectsWithFolders returns every entry under the prefix, including
// directory marker entries.
func (c *Client) ListObjectsWithFolders(ctx context.Context, bucket, prefix string) ([]movetypes.ObjectSummary, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, s3merrors.NewError("listObjects", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage(err.Error())
	}

	return enumerator.New(c.s3Client).ListWithFolders(ctx, bucket, prefix)
}

// ListObjectsWithSuffix returns every object under the prefix whose key ends
// with the given suffix, compared case-insensitively.
func (c *Client) ListObjectsWithSuffix(ctx context.Context, bucket, prefix, suffix string) ([]movetypes.ObjectSummary, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, s3merrors.NewError("listObjects", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage(err.Error())
	}

	return enumerator.New(c.s3Client).ListWithSuffix(ctx, bucket, prefix, suffix)
}

// validateMoveRequest rejects malformed batch requests before any store
// call is made.
func validateMoveRequest(req movetypes.MoveRequest) error {
	if err := validation.ValidateBucketName(req.Source.Bucket); err != nil {
		return s3merrors.NewError("moveObjects", s3merrors.ErrInvalidInput).
			WithBucket(req.Source.Bucket).
			WithMessage("invalid source bucket: " + err.Error())
	}
	if err := validation.ValidateBucketName(req.Dest.Bucket); err != nil {
		return s3merrors.NewError("moveObjects", s3merrors.ErrInvalidInput).
			WithBucket(req.Dest.Bucket).
			WithMessage("invalid destination bucket: " + err.Error())
	}
	if err := validation.ValidatePrefix(req.Source.Prefix); err != nil {
		return s3merrors.NewError("moveObjects", s3merrors.ErrInvalidInput).
			WithBucket(req.Source.Bucket).
			WithMessage("invalid source prefix: " + err.Error())
	}
	if err := validation.ValidatePrefix(req.Dest.Prefix); err != nil {
		return s3merrors.NewError("moveObjects", s3merrors.ErrInvalidInput).
			WithBucket(req.Dest.Bucket).
			WithMessage("invalid destination prefix: " + err.Error())
	}
	if min, max := req.Filter.MinSize, req.Filter.MaxSize; min != nil && max != nil && *min > *max {
		return s3merrors.NewError("moveObjects", s3merrors.ErrInvalidInput).
			WithMessage("size filter lower bound exceeds upper bound")
	}
	return nil
}
