// Package planner turns filtered source objects into copy decisions.
//
// For each candidate it derives the destination key by re-rooting the key
// from the source prefix onto the destination prefix, optionally rewriting a
// name token, and checks the destination for an existing object so a re-run
// of the same batch skips work already done.
package planner

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3merrors "github.com/objectops/s3move/errors"
	"github.com/objectops/s3move/internal/s3api"
	"github.com/objectops/s3move/movetypes"
)

// Action is the planner's verdict for a single candidate.
type Action int

const (
	// ActionCopy means the object must be copied to the destination.
	ActionCopy Action = iota
	// ActionSkipExists means an object already sits at the destination key.
	ActionSkipExists
)

// Plan is one planned unit of work.
type Plan struct {
	Object  movetypes.ObjectSummary
	DestKey string
	Action  Action
}

// Planner decides per-object copy actions for a batch.
type Planner struct {
	client s3api.S3API
}

// New creates a planner backed by the given store client.
func New(client s3api.S3API) *Planner {
	return &Planner{client: client}
}

// NormalizePrefix guarantees a trailing slash on non-empty prefixes so key
// re-rooting works on whole path segments. Empty stays empty: it addresses
// the bucket root.
func NormalizePrefix(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}

// DestKey re-roots key from sourcePrefix onto destPrefix. Both prefixes are
// expected pre-normalized. If replace is non-empty, occurrences of it in the
// derived key are substituted with replacement, in the given casing and
// again all-lowercased.
func DestKey(key, sourcePrefix, destPrefix, replace, replacement string) (string, error) {
	if !strings.HasPrefix(key, sourcePrefix) {
		return "", s3merrors.NewError("plan", s3merrors.ErrPreconditionViolation).
			WithKey(key).
			WithMessage("object key must start with the source prefix")
	}

	destKey := destPrefix + strings.TrimPrefix(key, sourcePrefix)
	if replace != "" {
		destKey = strings.ReplaceAll(destKey, replace, replacement)
		destKey = strings.ReplaceAll(destKey, strings.ToLower(replace), strings.ToLower(replacement))
	}
	return destKey, nil
}

// PlanObject derives the destination key for one candidate and probes the
// destination bucket for an existing object there.
func (p *Planner) PlanObject(ctx context.Context, obj movetypes.ObjectSummary, source, dest movetypes.Location, replace, replacement string) (Plan, error) {
	destKey, err := DestKey(obj.Key, NormalizePrefix(source.Prefix), NormalizePrefix(dest.Prefix), replace, replacement)
	if err != nil {
		return Plan{}, err
	}

	exists, err := p.existsAt(ctx, dest.Bucket, destKey)
	if err != nil {
		return Plan{}, err
	}

	action := ActionCopy
	if exists {
		action = ActionSkipExists
	}
	return Plan{Object: obj, DestKey: destKey, Action: action}, nil
}

// existsAt reports whether an object sits at bucket/key. Not-found is a
// normal answer, not an error.
func (p *Planner) existsAt(ctx context.Context, bucket, key string) (bool, error) {
	_, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, s3merrors.NewObjectError("plan", bucket, key, err)
	}
	return true, nil
}

// isNotFound matches the SDK's not-found shapes for HeadObject, which
// surface as NotFound rather than NoSuchKey on some endpoints.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "NotFound") ||
		strings.Contains(msg, "NoSuchKey") ||
		strings.Contains(msg, "404")
}
