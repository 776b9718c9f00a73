package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/objectops/s3move/internal/s3api"
)

// FakeObject is one stored object in the fake store.
type FakeObject struct {
	Size         int64
	StorageClass string
	LastModified time.Time
	ETag         string
	Tags         map[string]string
}

// FakeStore is an in-memory S3API implementation backing whole-pipeline
// tests. It supports listing with pagination, head, server-side copy, and
// delete, and can inject failures per operation.
type FakeStore struct {
	mu      sync.Mutex
	buckets map[string]map[string]FakeObject

	// PageSize caps list pages; zero means the store honors MaxKeys.
	PageSize int

	// CopyFailures maps a destination key to how many copy attempts should
	// fail before one succeeds. A negative count fails forever.
	CopyFailures map[string]int

	// ListFailures injects that many transient list errors before pages
	// start succeeding.
	ListFailures int

	copyCalls int
	listCalls int
}

// NewFakeStore creates an empty fake store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		buckets:      make(map[string]map[string]FakeObject),
		CopyFailures: make(map[string]int),
	}
}

// Put seeds an object into the store.
func (f *FakeStore) Put(bucket, key string, obj FakeObject) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.buckets[bucket] == nil {
		f.buckets[bucket] = make(map[string]FakeObject)
	}
	f.buckets[bucket][key] = obj
}

// Has reports whether bucket/key holds an object.
func (f *FakeStore) Has(bucket, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.buckets[bucket][key]
	return ok
}

// Keys returns the sorted keys stored in bucket.
func (f *FakeStore) Keys(bucket string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.buckets[bucket]))
	for key := range f.buckets[bucket] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CopyCalls returns how many CopyObject calls the store has seen.
func (f *FakeStore) CopyCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copyCalls
}

// ListObjectsV2 lists a page of objects in lexical key order.
func (f *FakeStore) ListObjectsV2(
	_ context.Context,
	params *s3.ListObjectsV2Input,
	_ ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.ListFailures > 0 {
		f.ListFailures--
		return nil, &smithy.GenericAPIError{Code: "SlowDown", Message: "please retry"}
	}

	bucket := aws.ToString(params.Bucket)
	prefix := aws.ToString(params.Prefix)

	var keys []string
	for key := range f.buckets[bucket] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	start := 0
	if token := aws.ToString(params.ContinuationToken); token != "" {
		start = len(keys)
		for i, key := range keys {
			if key > token {
				start = i
				break
			}
		}
	}

	pageSize := int(aws.ToInt32(params.MaxKeys))
	if f.PageSize > 0 && (pageSize == 0 || f.PageSize < pageSize) {
		pageSize = f.PageSize
	}
	if pageSize <= 0 {
		pageSize = 1000
	}

	end := start + pageSize
	if end > len(keys) {
		end = len(keys)
	}

	out := &s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(end < len(keys)),
	}
	for _, key := range keys[start:end] {
		obj := f.buckets[bucket][key]
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(obj.Size),
			StorageClass: types.ObjectStorageClass(obj.StorageClass),
			LastModified: aws.Time(obj.LastModified),
			ETag:         aws.String(obj.ETag),
		})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end-1])
	}
	return out, nil
}

// HeadObject reports object metadata, or a NotFound error.
func (f *FakeStore) HeadObject(
	_ context.Context,
	params *s3.HeadObjectInput,
	_ ...func(*s3.Options),
) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket := aws.ToString(params.Bucket)
	key := aws.ToString(params.Key)

	obj, ok := f.buckets[bucket][key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "no such object"}
	}

	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(obj.Size),
		LastModified:  aws.Time(obj.LastModified),
		ETag:          aws.String(obj.ETag),
		StorageClass:  types.StorageClass(obj.StorageClass),
	}, nil
}

// CopyObject performs a server-side copy, honoring injected failures.
func (f *FakeStore) CopyObject(
	_ context.Context,
	params *s3.CopyObjectInput,
	_ ...func(*s3.Options),
) (*s3.CopyObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.copyCalls++

	destBucket := aws.ToString(params.Bucket)
	destKey := aws.ToString(params.Key)

	if remaining, ok := f.CopyFailures[destKey]; ok && remaining != 0 {
		if remaining > 0 {
			f.CopyFailures[destKey] = remaining - 1
		}
		return nil, &smithy.GenericAPIError{Code: "InternalError", Message: "injected copy failure"}
	}

	source := aws.ToString(params.CopySource)
	parts := strings.SplitN(source, "/", 2)
	if len(parts) != 2 {
		return nil, &smithy.GenericAPIError{Code: "InvalidRequest", Message: "bad copy source"}
	}

	obj, ok := f.buckets[parts[0]][parts[1]]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "no such source object"}
	}

	if params.StorageClass != "" {
		obj.StorageClass = string(params.StorageClass)
	}
	if f.buckets[destBucket] == nil {
		f.buckets[destBucket] = make(map[string]FakeObject)
	}
	f.buckets[destBucket][destKey] = obj

	return &s3.CopyObjectOutput{
		CopyObjectResult: &types.CopyObjectResult{ETag: aws.String(obj.ETag)},
	}, nil
}

// DeleteObject removes one object. Deleting a missing object succeeds.
func (f *FakeStore) DeleteObject(
	_ context.Context,
	params *s3.DeleteObjectInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.buckets[aws.ToString(params.Bucket)], aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// DeleteObjects removes a batch of objects.
func (f *FakeStore) DeleteObjects(
	_ context.Context,
	params *s3.DeleteObjectsInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket := aws.ToString(params.Bucket)
	out := &s3.DeleteObjectsOutput{}
	for _, ident := range params.Delete.Objects {
		key := aws.ToString(ident.Key)
		delete(f.buckets[bucket], key)
		out.Deleted = append(out.Deleted, types.DeletedObject{Key: aws.String(key)})
	}
	return out, nil
}

// GetObjectTagging returns the stored tag set.
func (f *FakeStore) GetObjectTagging(
	_ context.Context,
	params *s3.GetObjectTaggingInput,
	_ ...func(*s3.Options),
) (*s3.GetObjectTaggingOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.buckets[aws.ToString(params.Bucket)][aws.ToString(params.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "no such object"}
	}

	out := &s3.GetObjectTaggingOutput{}
	for k, v := range obj.Tags {
		out.TagSet = append(out.TagSet, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return out, nil
}

// PutObjectTagging replaces the stored tag set.
func (f *FakeStore) PutObjectTagging(
	_ context.Context,
	params *s3.PutObjectTaggingInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectTaggingOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket := aws.ToString(params.Bucket)
	key := aws.ToString(params.Key)
	obj, ok := f.buckets[bucket][key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "no such object"}
	}

	obj.Tags = make(map[string]string, len(params.Tagging.TagSet))
	for _, tag := range params.Tagging.TagSet {
		obj.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	f.buckets[bucket][key] = obj
	return &s3.PutObjectTaggingOutput{}, nil
}

// Ensure FakeStore implements s3api.S3API interface
var _ s3api.S3API = (*FakeStore)(nil)
