// Package s3move provides functional options for configuring client and
// operation behavior. These follow the functional options pattern for clean,
// composable configuration.
package s3move

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"

	"github.com/objectops/s3move/movetypes"
)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the default AWS region from the credential chain.
func WithRegion(region string) movetypes.Option {
	return func(c *movetypes.ClientConfig) {
		c.Region = region
	}
}

// WithMaxRetries sets the maximum number of retry attempts for failed SDK
// operations. Default is 3 retries. Set to 0 to disable retries.
func WithMaxRetries(maxRetries int) movetypes.Option {
	return func(c *movetypes.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the timeout for individual S3 requests.
// Default is no timeout (0). Values should be positive durations.
func WithTimeout(timeout time.Duration) movetypes.Option {
	return func(c *movetypes.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
// Default is false (uses virtual-hosted style).
func WithForcePathStyle(forcePathStyle bool) movetypes.Option {
	return func(c *movetypes.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
// Use this when you need fine-grained control over AWS SDK configuration.
func WithAWSConfig(config *aws.Config) movetypes.Option {
	return func(c *movetypes.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) movetypes.Option {
	return func(c *movetypes.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithCustomHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts and proxies.
func WithCustomHTTPClient(client *http.Client) movetypes.Option {
	return func(c *movetypes.ClientConfig) {
		c.CustomHTTPClient = client
	}
}

// WithLogger sets the logger that receives batch summaries and per-object
// failure reports. Defaults to a plain logrus logger.
func WithLogger(logger *logrus.Logger) movetypes.Option {
	return func(c *movetypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithMoveParallelism bounds the number of copies in flight for a batch.
// Values <= 0 select the host default of NumCPU+1.
func WithMoveParallelism(parallelism int) movetypes.MoveOption {
	return func(c *movetypes.MoveOptionConfig) {
		c.Parallelism = parallelism
	}
}

// WithDrainTimeout bounds how long a batch waits for in-flight copies before
// returning a partial result. Default is 60 minutes.
func WithDrainTimeout(timeout time.Duration) movetypes.MoveOption {
	return func(c *movetypes.MoveOptionConfig) {
		c.DrainTimeout = timeout
	}
}

// WithStorageClassOverride stores copied objects under the given storage
// class instead of carrying the source object's class.
func WithStorageClassOverride(storageClass movetypes.StorageClass) movetypes.MoveOption {
	return func(c *movetypes.MoveOptionConfig) {
		c.StorageClassOverride = storageClass
	}
}

// WithNameReplacement substitutes token with replacement in each derived
// destination key. The substitution is applied both with the given casing
// and all-lowercased.
func WithNameReplacement(token, replacement string) movetypes.MoveOption {
	return func(c *movetypes.MoveOptionConfig) {
		c.ReplaceToken = token
		c.ReplacementToken = replacement
	}
}

// WithListMaxKeys caps the page size for list operations.
func WithListMaxKeys(maxKeys int32) movetypes.ListOption {
	return func(c *movetypes.ListOptionConfig) {
		if maxKeys > 0 {
			c.MaxKeys = maxKeys
		}
	}
}

// WithListDelimiter sets the delimiter for list operations, grouping keys
// into common prefixes.
func WithListDelimiter(delimiter string) movetypes.ListOption {
	return func(c *movetypes.ListOptionConfig) {
		c.Delimiter = delimiter
	}
}

// WithListStartAfter starts listing after the given key.
func WithListStartAfter(startAfter string) movetypes.ListOption {
	return func(c *movetypes.ListOptionConfig) {
		c.StartAfter = startAfter
	}
}

// WithListContinuationToken resumes listing from a previous page's token.
func WithListContinuationToken(token string) movetypes.ListOption {
	return func(c *movetypes.ListOptionConfig) {
		c.ContinuationToken = token
	}
}
