package yore

import (
	"cmp"
	"math"
	"math/bits"
	"slices"
)

// History is an immutable, time-ordered index of location fixes.
// It is safe for concurrent use by any number of readers. To load new data,
// build a new History and replace the old one; never modify it in place.
type History struct {
	fixes []Fix // ascending by TimestampMS, no duplicate timestamps
}

// NewHistory builds an index from fixes, which may be in any order.
// If several fixes share a timestamp, the one appearing last wins.
func NewHistory(fixes []Fix) *History {
	sorted := slices.Clone(fixes)
	slices.SortStableFunc(sorted, func(a, b Fix) int {
		return cmp.Compare(a.TimestampMS, b.TimestampMS)
	})

	unique := sorted[:0]
	for i, fix := range sorted {
		if i+1 < len(sorted) && sorted[i+1].TimestampMS == fix.TimestampMS {
			continue
		}
		unique = append(unique, fix)
	}

	return &History{fixes: slices.Clip(unique)}
}

// Len returns the number of fixes in the history.
func (h *History) Len() int {
	return len(h.fixes)
}

// Bounds returns the earliest and latest fixes. ok is false if the history is empty.
func (h *History) Bounds() (first, last Fix, ok bool) {
	if len(h.fixes) == 0 {
		return Fix{}, Fix{}, false
	}
	return h.fixes[0], h.fixes[len(h.fixes)-1], true
}

// Contains reports whether timestamp (in seconds) falls within the inclusive
// time range covered by the history. It is a cheap pre-check before asking
// for a suggestion.
func (h *History) Contains(timestamp int64) bool {
	first, last, ok := h.Bounds()
	if !ok {
		return false
	}

	timestampMS := timestamp * 1000
	return timestampMS >= first.TimestampMS && timestampMS <= last.TimestampMS
}

// MostLikelyLocation returns the recorded fix closest in time to timestamp
// (in seconds). When the timestamp is exactly halfway between two fixes the
// earlier one is returned. No fix is returned if the timestamp lies before the
// first or after the last fix.
func (h *History) MostLikelyLocation(timestamp int64) (Fix, bool) {
	m := h.locate(timestamp)

	switch m.kind {
	case matchExact:
		return *m.before, true
	case matchBetween:
		timestampMS := timestamp * 1000
		if timestampMS-m.before.TimestampMS > m.after.TimestampMS-timestampMS {
			return *m.after, true
		}
		return *m.before, true
	default:
		return Fix{}, false
	}
}

// InterpolateLocation returns a fix at timestamp (in seconds), linearly
// interpolated between the fixes on either side of it. An exact match is
// returned unchanged, and no fix is returned outside the recorded range.
//
// Interpolation is linear in degrees and ignores the curvature of the Earth.
// That is inaccurate over large distances, but points that far apart are
// unlikely to belong to the same journey anyway.
func (h *History) InterpolateLocation(timestamp int64) (Fix, bool) {
	m := h.locate(timestamp)

	switch m.kind {
	case matchExact:
		return *m.before, true
	case matchBetween:
		before, after := m.before, m.after
		timestampMS := timestamp * 1000
		timeOffset := timestampMS - before.TimestampMS
		timeSpan := after.TimestampMS - before.TimestampMS

		return Fix{
			TimestampMS: timestampMS,
			LatitudeE7:  before.LatitudeE7 + scale(after.LatitudeE7-before.LatitudeE7, timeOffset, timeSpan),
			LongitudeE7: before.LongitudeE7 + scale(after.LongitudeE7-before.LongitudeE7, timeOffset, timeSpan),
			Accuracy:    interpolateAccuracy(timestampMS, before, after),
		}, true
	default:
		return Fix{}, false
	}
}

type matchKind int

const (
	matchNone    matchKind = iota // empty history
	matchExact                    // before is the fix at the timestamp
	matchFirst                    // before is the first fix, which is later than the timestamp
	matchLast                     // before is the last fix, which is earlier than the timestamp
	matchBetween                  // before < timestamp < after
)

type locationMatch struct {
	kind   matchKind
	before *Fix
	after  *Fix
}

// locate classifies timestamp (in seconds) against the recorded fixes.
func (h *History) locate(timestamp int64) locationMatch {
	if len(h.fixes) == 0 {
		return locationMatch{kind: matchNone}
	}

	timestampMS := timestamp * 1000
	i, found := slices.BinarySearchFunc(h.fixes, timestampMS, func(f Fix, t int64) int {
		return cmp.Compare(f.TimestampMS, t)
	})

	switch {
	case found:
		return locationMatch{kind: matchExact, before: &h.fixes[i]}
	case i == 0:
		return locationMatch{kind: matchFirst, before: &h.fixes[0]}
	case i == len(h.fixes):
		return locationMatch{kind: matchLast, before: &h.fixes[i-1]}
	default:
		return locationMatch{kind: matchBetween, before: &h.fixes[i-1], after: &h.fixes[i]}
	}
}

// interpolateAccuracy scales linearly from the accuracy of the nearer fix
// towards half the distance between the two fixes, which is reached at the
// midpoint. If half the distance is smaller than both accuracies it is ignored
// and the two accuracies are blended instead.
func interpolateAccuracy(timestampMS int64, before, after *Fix) uint16 {
	timeOffset := timestampMS - before.TimestampMS
	timeSpan := after.TimestampMS - before.TimestampMS

	// Whole kilometers first, then meters.
	halfDistance := int64(before.Coordinates().DistanceInKM(after.Coordinates())) * 1000 / 2
	beforeAccuracy := int64(before.Accuracy)
	afterAccuracy := int64(after.Accuracy)

	var accuracy int64
	switch {
	case halfDistance < beforeAccuracy && halfDistance < afterAccuracy:
		accuracy = beforeAccuracy + scale(afterAccuracy-beforeAccuracy, timeOffset, timeSpan)
	case timeOffset <= timeSpan/2:
		accuracy = beforeAccuracy + scale(halfDistance-beforeAccuracy, timeOffset*2, timeSpan)
	default:
		accuracy = halfDistance + scale(afterAccuracy-halfDistance, timeOffset*2-timeSpan, timeSpan)
	}

	return uint16(min(max(accuracy, 0), math.MaxUint16))
}

// scale returns value * numerator / denominator, truncated toward zero.
// The product is computed in 128 bits so it cannot overflow.
// numerator must be in [0, denominator].
func scale(value, numerator, denominator int64) int64 {
	magnitude := uint64(value)
	if value < 0 {
		magnitude = uint64(-value)
	}

	hi, lo := bits.Mul64(magnitude, uint64(numerator))
	quotient, _ := bits.Div64(hi, lo, uint64(denominator))

	if value < 0 {
		return -int64(quotient)
	}
	return int64(quotient)
}
