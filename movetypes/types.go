// Package movetypes provides shared type definitions for the s3move module.
package movetypes

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"
)

// StorageClass represents the S3 storage class for objects.
type StorageClass string

// Predefined S3 storage classes
const (
	// StorageClassStandard is the default S3 storage class
	StorageClassStandard StorageClass = "STANDARD"

	// StorageClassReducedRedundancy provides reduced redundancy storage
	StorageClassReducedRedundancy StorageClass = "REDUCED_REDUNDANCY"

	// StorageClassStandardIA provides infrequent access storage
	StorageClassStandardIA StorageClass = "STANDARD_IA"

	// StorageClassOneZoneIA provides one zone infrequent access storage
	StorageClassOneZoneIA StorageClass = "ONEZONE_IA"

	// StorageClassIntelligentTiering provides intelligent tiering storage
	StorageClassIntelligentTiering StorageClass = "INTELLIGENT_TIERING"

	// StorageClassGlacier provides Glacier archival storage
	StorageClassGlacier StorageClass = "GLACIER"

	// StorageClassDeepArchive provides Deep Archive storage
	StorageClassDeepArchive StorageClass = "DEEP_ARCHIVE"

	// StorageClassGlacierIR provides Glacier Instant Retrieval storage
	StorageClassGlacierIR StorageClass = "GLACIER_IR"
)

// ObjectSummary is an immutable snapshot of an object taken at enumeration
// time. It may be stale by the time a copy executes; the engine takes no
// locks against the store.
type ObjectSummary struct {
	// Key is the S3 object key (path)
	Key string

	// Size is the object size in bytes
	Size int64

	// StorageClass is the storage class the object was listed with
	StorageClass StorageClass

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the S3 entity tag for the object
	ETag string
}

// Location identifies a bucket and key prefix in the object store.
type Location struct {
	// Bucket is the S3 bucket name
	Bucket string

	// Prefix is the key prefix within the bucket; may be empty
	Prefix string
}

// FilterSpec selects which enumerated objects become copy candidates.
// A zero FilterSpec accepts every object under the prefix.
type FilterSpec struct {
	// ExcludedNameFragments rejects any object whose key contains one of
	// these fragments as a case-sensitive substring.
	ExcludedNameFragments []string

	// MinSize is the inclusive lower size bound in bytes; nil means unbounded.
	MinSize *int64

	// MaxSize is the inclusive upper size bound in bytes; nil means unbounded.
	MaxSize *int64
}

// MoveRequest describes one batch move invocation.
type MoveRequest struct {
	// Source is where objects are enumerated from
	Source Location

	// Dest is where objects are copied to
	Dest Location

	// Filter selects the candidates
	Filter FilterSpec
}

// CopyStatus is the terminal state of a dispatched candidate.
type CopyStatus string

const (
	// StatusCopied indicates the object was copied to the destination
	StatusCopied CopyStatus = "COPIED"

	// StatusSkippedExists indicates an object already existed at the
	// destination key, so no copy was attempted
	StatusSkippedExists CopyStatus = "SKIPPED_EXISTS"

	// StatusFailed indicates the copy failed after the retry budget,
	// or a precondition was violated
	StatusFailed CopyStatus = "FAILED"
)

// CopyOutcome records the terminal state of one dispatched candidate.
// It is produced exactly once per candidate and is immutable after creation.
type CopyOutcome struct {
	// Key is the source object key
	Key string

	// DestKey is the computed destination key
	DestKey string

	// Status is the terminal state
	Status CopyStatus

	// ErrorReason holds a human-readable failure reason when Status is
	// StatusFailed, and is empty otherwise
	ErrorReason string
}

// BatchResult aggregates the outcome of one batch move. It is owned by the
// invocation that created it and carries no persisted lifecycle.
type BatchResult struct {
	// Candidates are the filtered objects that were dispatched, in
	// enumeration order. Objects rejected by the filter never appear.
	Candidates []ObjectSummary

	// Outcomes maps source key to its terminal outcome. When the batch
	// timed out, candidates still outstanding are absent.
	Outcomes map[string]CopyOutcome

	// MovedKeys are exactly the keys whose outcome is StatusCopied, in
	// completion order.
	MovedKeys []string

	// TimedOut reports whether the batch drain timeout elapsed before all
	// tasks finished.
	TimedOut bool

	// Elapsed is the wall time the batch took
	Elapsed time.Duration
}

// Success reports whether the batch completed with zero failures.
// Skipped candidates do not count as failures.
func (r *BatchResult) Success() bool {
	if r.TimedOut {
		return false
	}
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return false
		}
	}
	return true
}

// FailureReasons returns the per-key reasons for every failed outcome.
func (r *BatchResult) FailureReasons() map[string]string {
	reasons := make(map[string]string)
	for key, o := range r.Outcomes {
		if o.Status == StatusFailed {
			reasons[key] = o.ErrorReason
		}
	}
	return reasons
}

// MoveResponse is the outward contract consumed by a front end. Unlike the
// bare success/moved-keys pair, it carries the per-key failure reasons so
// callers are not left guessing why a batch was unsuccessful.
type MoveResponse struct {
	// Success is true iff no candidate failed and the batch drained in time
	Success bool `json:"success"`

	// MovedKeys lists the keys that were copied
	MovedKeys []string `json:"moved_keys"`

	// FailureReasons maps source key to a human-readable reason, omitted
	// when the batch succeeded
	FailureReasons map[string]string `json:"failure_reasons,omitempty"`
}

// Response converts the batch result into the outward contract.
func (r *BatchResult) Response() MoveResponse {
	resp := MoveResponse{
		Success:   r.Success(),
		MovedKeys: r.MovedKeys,
	}
	if reasons := r.FailureReasons(); len(reasons) > 0 {
		resp.FailureReasons = reasons
	}
	return resp
}

// ObjectMetadata contains detailed metadata about an S3 object.
type ObjectMetadata struct {
	// ContentType is the MIME type of the object
	ContentType string

	// ContentLength is the size of the object in bytes
	ContentLength int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the S3 entity tag for the object
	ETag string

	// StorageClass is the object's storage class
	StorageClass StorageClass

	// Metadata contains user-defined metadata
	Metadata map[string]string
}

// DeleteResult contains the result of a batch delete operation.
type DeleteResult struct {
	// Deleted contains the keys that were successfully deleted
	Deleted []string

	// Errors contains any per-key errors that occurred during deletion
	Errors []DeleteError

	// Duration is how long the operation took
	Duration time.Duration
}

// DeleteError represents an error that occurred during a delete operation.
type DeleteError struct {
	// Key is the S3 object key that failed to delete
	Key string

	// Code is the error code
	Code string

	// Message is the error message
	Message string
}

// ListResult contains one page of a list operation.
type ListResult struct {
	// Objects contains the listed objects
	Objects []ObjectSummary

	// IsTruncated indicates whether more pages remain
	IsTruncated bool

	// NextContinuationToken is the token for the next page
	NextContinuationToken string
}

// Configuration types for functional options

// ClientConfig holds configuration for the s3move client.
type ClientConfig struct {
	Region           string
	Endpoint         string
	MaxRetries       int
	Timeout          time.Duration
	ForcePathStyle   bool
	CustomAWSConfig  *aws.Config
	CustomHTTPClient *http.Client
	Logger           *logrus.Logger
}

// MoveOptionConfig holds configuration for move operations via functional options.
type MoveOptionConfig struct {
	// Parallelism bounds the worker pool; <=0 selects NumCPU+1
	Parallelism int

	// DrainTimeout bounds how long the caller waits for the batch; <=0
	// selects the 60-minute default
	DrainTimeout time.Duration

	// StorageClassOverride replaces the source object's storage class on
	// the copy when non-empty
	StorageClassOverride StorageClass

	// ReplaceToken and ReplacementToken substitute a name fragment in the
	// destination key (both exact-case and lower-case forms). Substitution
	// applies only when ReplaceToken is non-empty.
	ReplaceToken     string
	ReplacementToken string
}

// ListOptionConfig holds configuration for list operations via functional options.
type ListOptionConfig struct {
	Delimiter         string
	MaxKeys           int32
	StartAfter        string
	ContinuationToken string
}

// Option is a functional option for configuring the s3move client.
type (
	Option func(*ClientConfig)
	// MoveOption is a functional option for configuring a batch move.
	MoveOption func(*MoveOptionConfig)
	// ListOption is a functional option for configuring list operations.
	ListOption func(*ListOptionConfig)
)
