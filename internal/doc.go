// Package internal contains private implementation details for the s3move module.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - move: the batch move pipeline (enumerator, filter, planner, executor, copier, batch)
//   - s3api: the S3 client interface the pipeline runs against
//   - validation: input validation logic
//   - testutil: mocks, fakes, and LocalStack helpers for tests
package internal
