package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "bucket and key",
			err:  NewObjectError("copy", "bkt", "a/b.txt", base),
			want: "s3move.copy bkt/a/b.txt: boom",
		},
		{
			name: "bucket only",
			err:  NewBucketError("enumerate", "bkt", base),
			want: "s3move.enumerate bucket bkt: boom",
		},
		{
			name: "bare operation",
			err:  NewError("move", base),
			want: "s3move.move: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorBuilders(t *testing.T) {
	err := NewError("plan", ErrPreconditionViolation).
		WithBucket("bkt").
		WithKey("k").
		WithMessage("object key must start with the source prefix")

	assert.Equal(t, "bkt", err.Bucket)
	assert.Equal(t, "k", err.Key)
	assert.True(t, IsPreconditionViolation(err))
}

func TestSentinelHelpers(t *testing.T) {
	assert.True(t, IsEnumerationFailed(NewBucketError("enumerate", "b", ErrEnumerationFailed)))
	assert.True(t, IsCopyFailed(NewObjectError("copy", "b", "k", ErrCopyFailed)))
	assert.True(t, IsInvalidInput(NewError("move", ErrInvalidInput)))
	assert.False(t, IsCopyFailed(NewError("move", ErrInvalidInput)))
	assert.False(t, IsObjectNotFound(nil))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, true},
		{"service unavailable", &smithy.GenericAPIError{Code: "ServiceUnavailable"}, true},
		{"internal error", &smithy.GenericAPIError{Code: "InternalError"}, true},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
		{
			"http 503",
			&smithyhttp.ResponseError{Response: &smithyhttp.Response{
				Response: &http.Response{StatusCode: http.StatusServiceUnavailable},
			}},
			true,
		},
		{
			"http 404",
			&smithyhttp.ResponseError{Response: &smithyhttp.Response{
				Response: &http.Response{StatusCode: http.StatusNotFound},
			}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
