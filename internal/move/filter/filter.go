// Package filter provides the candidate-selection predicates for batch moves.
//
// All predicates are pure functions over enumeration snapshots; nothing here
// touches the store.
package filter

import (
	"strings"

	"github.com/objectops/s3move/movetypes"
)

// Matches reports whether an enumerated object survives the filter and
// becomes a copy candidate. An object is rejected when its key equals the
// enumeration prefix exactly (the zero-length prefix marker is not a file),
// when its key contains any excluded name fragment, or when its size falls
// outside the inclusive size bounds.
func Matches(obj movetypes.ObjectSummary, spec movetypes.FilterSpec, prefix string) bool {
	return MatchesName(obj, spec.ExcludedNameFragments, prefix) &&
		MatchesSize(obj, spec.MinSize, spec.MaxSize)
}

// MatchesName rejects the prefix marker itself and any key containing one of
// the excluded fragments. Fragment matching is a case-sensitive substring
// test.
func MatchesName(obj movetypes.ObjectSummary, excludedFragments []string, prefix string) bool {
	if obj.Key == prefix {
		return false
	}
	for _, fragment := range excludedFragments {
		if strings.Contains(obj.Key, fragment) {
			return false
		}
	}
	return true
}

// MatchesSize applies the inclusive [min, max] byte-size bounds. A nil bound
// is unbounded on that side.
func MatchesSize(obj movetypes.ObjectSummary, minSize, maxSize *int64) bool {
	if minSize != nil && obj.Size < *minSize {
		return false
	}
	if maxSize != nil && obj.Size > *maxSize {
		return false
	}
	return true
}

// HasSuffixFold reports whether key ends with suffix, ignoring case and
// surrounding whitespace on the suffix. Suffix enumeration uses this; the
// batch filter's fragment exclusion stays case-sensitive.
func HasSuffixFold(key, suffix string) bool {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(key), strings.ToLower(suffix))
}

// Select returns, in enumeration order, the objects that survive the filter.
func Select(objects []movetypes.ObjectSummary, spec movetypes.FilterSpec, prefix string) []movetypes.ObjectSummary {
	candidates := make([]movetypes.ObjectSummary, 0, len(objects))
	for _, obj := range objects {
		if Matches(obj, spec, prefix) {
			candidates = append(candidates, obj)
		}
	}
	return candidates
}
