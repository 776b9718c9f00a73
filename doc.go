// Package s3move provides a high-level Go module for bulk-moving objects
// between S3 locations. It wraps AWS SDK v2 to provide filtered prefix
// enumeration, idempotent destination planning, and bounded-parallel
// server-side copies behind a small client API.
//
// A batch move enumerates every object under a source prefix, narrows the
// set with name and size filters, re-roots each surviving key onto the
// destination prefix, and copies the objects in parallel. Objects already
// present at their destination key are skipped, so re-running an
// interrupted batch converges without duplicating work.
//
// Key features:
//   - Simple, zero-configuration usage with AWS credential chain
//   - Progressive enhancement through functional options
//   - Transparent pagination with transient-error retry during enumeration
//   - Per-object copy retry with linearly growing backoff
//   - Bounded parallelism with a batch drain timeout
//   - Per-key failure reporting in the batch result
//
// Example usage:
//
//	client, err := s3move.New()
//	if err != nil {
//	    return err
//	}
//
//	result, err := client.MoveObjects(ctx, movetypes.MoveRequest{
//	    Source: movetypes.Location{Bucket: "ingest", Prefix: "landing/2024"},
//	    Dest:   movetypes.Location{Bucket: "archive", Prefix: "cold/2024"},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("moved %d objects\n", len(result.MovedKeys))
package s3move
