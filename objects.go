// Package s3move provides single-object and listing operations.
package s3move

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3merrors "github.com/objectops/s3move/errors"
	"github.com/objectops/s3move/internal/validation"
	"github.com/objectops/s3move/movetypes"
)

// Exists checks if an object exists using a HEAD request.
// Returns true if the object exists, false if it doesn't exist.
// Returns an error for other types of failures (network issues, permissions, etc.).
//
// Example:
//
//	exists, err := client.Exists(ctx, "my-bucket", "data.txt")
//	if err != nil {
//	    return fmt.Errorf("failed to check existence: %w", err)
//	}
func (c *Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if bucket == "" {
		return false, s3merrors.NewError("exists", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return false, s3merrors.NewError("exists", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}

	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	_, err := c.s3Client.HeadObject(ctx, input)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "NotFound") || strings.Contains(errMsg, "NoSuchKey") {
			return false, nil
		}
		return false, s3merrors.NewError("exists", err).WithBucket(bucket).WithKey(key)
	}

	return true, nil
}

// GetMetadata retrieves metadata for an object without downloading the content.
//
// Uses a HEAD request to retrieve content type, size, last modified time,
// ETag, storage class, and any custom metadata.
//
// Example:
//
//	metadata, err := client.GetMetadata(ctx, "my-bucket", "document.pdf")
//	if err != nil {
//	    return fmt.Errorf("failed to get metadata: %w", err)
//	}
//	fmt.Printf("Size: %d bytes\n", metadata.ContentLength)
func (c *Client) GetMetadata(ctx context.Context, bucket, key string) (*movetypes.ObjectMetadata, error) {
	if bucket == "" {
		return nil, s3merrors.NewError("getMetadata", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return nil, s3merrors.NewError("getMetadata", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}

	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	result, err := c.s3Client.HeadObject(ctx, input)
	if err != nil {
		return nil, s3merrors.NewError("getMetadata", err).WithBucket(bucket).WithKey(key)
	}

	metadata := &movetypes.ObjectMetadata{
		ContentType:   aws.ToString(result.ContentType),
		ContentLength: aws.ToInt64(result.ContentLength),
		LastModified:  aws.ToTime(result.LastModified),
		ETag:          aws.ToString(result.ETag),
		StorageClass:  movetypes.StorageClass(result.StorageClass),
	}

	if result.Metadata != nil {
		metadata.Metadata = make(map[string]string, len(result.Metadata))
		for k, v := range result.Metadata {
			metadata.Metadata[k] = v
		}
	}

	return metadata, nil
}

// Delete deletes a single object.
//
// This operation is idempotent - deleting a non-existent object doesn't
// return an error.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	if bucket == "" {
		return s3merrors.NewError("delete", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return s3merrors.NewError("delete", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	_, err := c.s3Client.DeleteObject(ctx, input)
	if err != nil {
		return s3merrors.NewError("delete", err).WithBucket(bucket).WithKey(key)
	}

	return nil
}

// DeleteMany deletes multiple objects in a single batch request.
// S3's DeleteObjects API deletes up to 1000 objects at once; each object
// deletion succeeds or fails independently.
//
// Example:
//
//	result, err := client.DeleteMany(ctx, "my-bucket", []string{"a.txt", "b.txt"})
//	if err != nil {
//	    return fmt.Errorf("batch delete failed: %w", err)
//	}
//	for _, e := range result.Errors {
//	    fmt.Printf("failed to delete %s: %s\n", e.Key, e.Message)
//	}
func (c *Client) DeleteMany(ctx context.Context, bucket string, keys []string) (*movetypes.DeleteResult, error) {
	if bucket == "" {
		return nil, s3merrors.NewError("deleteMany", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name cannot be empty")
	}
	if len(keys) == 0 {
		return nil, s3merrors.NewError("deleteMany", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("keys cannot be empty")
	}

	// S3 allows up to 1000 objects per delete request
	const maxKeysPerRequest = 1000
	if len(keys) > maxKeysPerRequest {
		return nil, s3merrors.NewError("deleteMany", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("too many keys: maximum is 1000 per request")
	}

	startTime := time.Now()

	deleteObjects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			return nil, s3merrors.NewError("deleteMany", s3merrors.ErrInvalidInput).
				WithBucket(bucket).
				WithMessage("empty key in keys slice")
		}
		deleteObjects = append(deleteObjects, types.ObjectIdentifier{
			Key: aws.String(key),
		})
	}

	input := &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Objects: deleteObjects,
		},
	}

	result, err := c.s3Client.DeleteObjects(ctx, input)
	if err != nil {
		return nil, s3merrors.NewError("deleteMany", err).WithBucket(bucket)
	}

	deleteResult := &movetypes.DeleteResult{
		Duration: time.Since(startTime),
	}

	for _, deleted := range result.Deleted {
		deleteResult.Deleted = append(deleteResult.Deleted, aws.ToString(deleted.Key))
	}
	for _, deleteErr := range result.Errors {
		deleteResult.Errors = append(deleteResult.Errors, movetypes.DeleteError{
			Key:     aws.ToString(deleteErr.Key),
			Code:    aws.ToString(deleteErr.Code),
			Message: aws.ToString(deleteErr.Message),
		})
	}

	return deleteResult, nil
}

// List lists one page of objects under a prefix.
// Use opts to specify delimiter, max keys, and pagination options; the
// returned ListResult carries the continuation token for the next page.
func (c *Client) List(
	ctx context.Context,
	bucket, prefix string,
	opts ...movetypes.ListOption,
) (*movetypes.ListResult, error) {
	if bucket == "" {
		return nil, s3merrors.NewError("list", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name cannot be empty")
	}

	config := &movetypes.ListOptionConfig{
		MaxKeys: 1000, // Default max keys
	}
	for _, opt := range opts {
		opt(config)
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(config.MaxKeys),
	}

	if config.Delimiter != "" {
		input.Delimiter = aws.String(config.Delimiter)
	}
	if config.StartAfter != "" {
		input.StartAfter = aws.String(config.StartAfter)
	}
	if config.ContinuationToken != "" {
		input.ContinuationToken = aws.String(config.ContinuationToken)
	}

	result, err := c.s3Client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, s3merrors.NewError("list", err).WithBucket(bucket)
	}

	listResult := &movetypes.ListResult{
		Objects:               make([]movetypes.ObjectSummary, 0, len(result.Contents)),
		IsTruncated:           aws.ToBool(result.IsTruncated),
		NextContinuationToken: aws.ToString(result.NextContinuationToken),
	}

	for _, obj := range result.Contents {
		listResult.Objects = append(listResult.Objects, movetypes.ObjectSummary{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			StorageClass: movetypes.StorageClass(obj.StorageClass),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         aws.ToString(obj.ETag),
		})
	}

	return listResult, nil
}

// ListAll streams every object under a prefix through a channel, handling
// pagination internally. The channel is closed when the listing is exhausted
// or an error occurs.
//
// Always consume the channel completely or cancel the context to avoid
// goroutine leaks.
//
// Example:
//
//	objects := client.ListAll(ctx, "my-bucket", "photos/")
//	for obj := range objects {
//	    fmt.Printf("%s (%d bytes)\n", obj.Key, obj.Size)
//	}
func (c *Client) ListAll(ctx context.Context, bucket, prefix string) <-chan movetypes.ObjectSummary {
	objectChan := make(chan movetypes.ObjectSummary, 100)

	go func() {
		defer close(objectChan)

		var continuationToken *string

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			input := &s3.ListObjectsV2Input{
				Bucket:            aws.String(bucket),
				Prefix:            aws.String(prefix),
				MaxKeys:           aws.Int32(1000),
				ContinuationToken: continuationToken,
			}

			result, err := c.s3Client.ListObjectsV2(ctx, input)
			if err != nil {
				return
			}

			for _, obj := range result.Contents {
				summary := movetypes.ObjectSummary{
					Key:          aws.ToString(obj.Key),
					Size:         aws.ToInt64(obj.Size),
					StorageClass: movetypes.StorageClass(obj.StorageClass),
					LastModified: aws.ToTime(obj.LastModified),
					ETag:         aws.ToString(obj.ETag),
				}

				select {
				case objectChan <- summary:
				case <-ctx.Done():
					return
				}
			}

			if !aws.ToBool(result.IsTruncated) {
				break
			}
			continuationToken = result.NextContinuationToken
		}
	}()

	return objectChan
}

// GetTags retrieves the tag set of an object.
func (c *Client) GetTags(ctx context.Context, bucket, key string) (map[string]string, error) {
	if bucket == "" {
		return nil, s3merrors.NewError("getTags", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return nil, s3merrors.NewError("getTags", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}

	result, err := c.s3Client.GetObjectTagging(ctx, &s3.GetObjectTaggingInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s3merrors.NewError("getTags", err).WithBucket(bucket).WithKey(key)
	}

	tags := make(map[string]string, len(result.TagSet))
	for _, tag := range result.TagSet {
		tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return tags, nil
}

// SetTags replaces the tag set of an object.
func (c *Client) SetTags(ctx context.Context, bucket, key string, tags map[string]string) error {
	if bucket == "" {
		return s3merrors.NewError("setTags", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return s3merrors.NewError("setTags", s3merrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage(err.Error())
	}

	tagSet := make([]types.Tag, 0, len(tags))
	for k, v := range tags {
		tagSet = append(tagSet, types.Tag{
			Key:   aws.String(k),
			Value: aws.String(v),
		})
	}

	_, err := c.s3Client.PutObjectTagging(ctx, &s3.PutObjectTaggingInput{
		Bucket:  aws.String(bucket),
		Key:     aws.String(key),
		Tagging: &types.Tagging{TagSet: tagSet},
	})
	if err != nil {
		return s3merrors.NewError("setTags", err).WithBucket(bucket).WithKey(key)
	}

	return nil
}
