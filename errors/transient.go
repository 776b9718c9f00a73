package errors

import (
	"errors"
	"net/http"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// transientCodes are the S3 error codes treated as retryable service
// conditions. "SlowDown" and "ServiceUnavailable" are what S3 returns for a
// 503 throttle response.
var transientCodes = map[string]struct{}{
	"SlowDown":            {},
	"ServiceUnavailable":  {},
	"InternalError":       {},
	"RequestTimeout":      {},
	"503":                 {},
	"ThrottlingException": {},
}

// IsTransient reports whether a store error is a retryable service condition
// rather than a terminal failure. Enumeration retries these indefinitely;
// anything else aborts the listing.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := transientCodes[apiErr.ErrorCode()]; ok {
			return true
		}
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusInternalServerError:
			return true
		}
	}

	return false
}
