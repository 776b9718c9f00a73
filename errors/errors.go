// Package errors provides error types and handling for s3move operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a move-engine error with context about the operation that
// failed. It wraps the underlying AWS SDK error with additional context for
// better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "enumerate", "copy", "move")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3move.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3move.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3move.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3move.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for the move engine's failure taxonomy.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("s3move: invalid input")

	// ErrEnumerationFailed indicates a non-transient listing error; the
	// whole batch aborts before any copy starts
	ErrEnumerationFailed = errors.New("s3move: enumeration failed")

	// ErrPreconditionViolation indicates a source key did not respect the
	// expected source-prefix invariant
	ErrPreconditionViolation = errors.New("s3move: precondition violation")

	// ErrCopyFailed indicates a copy could not be initiated within the
	// retry budget
	ErrCopyFailed = errors.New("s3move: copy failed")

	// ErrDrainTimeout indicates the batch drain timeout elapsed with tasks
	// still outstanding
	ErrDrainTimeout = errors.New("s3move: batch drain timed out")

	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("s3move: object not found")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("s3move: bucket not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("s3move: access denied")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("s3move: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("s3move: invalid object key")
)

// IsEnumerationFailed checks if an error indicates a failed enumeration.
func IsEnumerationFailed(err error) bool {
	return errors.Is(err, ErrEnumerationFailed)
}

// IsPreconditionViolation checks if an error indicates a violated
// source-prefix precondition.
func IsPreconditionViolation(err error) bool {
	return errors.Is(err, ErrPreconditionViolation)
}

// IsCopyFailed checks if an error indicates an exhausted copy retry budget.
func IsCopyFailed(err error) bool {
	return errors.Is(err, ErrCopyFailed)
}

// IsObjectNotFound checks if an error indicates that an object was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
