package layout

import "github.com/tsawler/figura/model"

// Merger collapses a set of rectangles into the minimal set of disjoint
// unions under a proximity-and-alignment equivalence. Two rectangles can
// merge when one, expanded by the proximity tolerance, overlaps the
// other's bounding box AND their vertical centers are within the
// configured gap. The vertical guard makes the relation non-transitive,
// so merging must iterate to a fixed point rather than rely on a single
// connected-components pass over raw overlaps.
type Merger struct {
	config Config
}

// NewMerger creates a merger with default configuration.
func NewMerger() *Merger {
	return NewMergerWithConfig(DefaultConfig())
}

// NewMergerWithConfig creates a merger with the specified configuration.
func NewMergerWithConfig(config Config) *Merger {
	return &Merger{config: config}
}

// Merge repeatedly unions mergeable rectangles until one complete pass
// produces no absorption. Each pass rebuilds the working set from
// scratch: a base rectangle is taken from the set, every remaining
// rectangle mergeable with it is absorbed into the base's union, and the
// grown union re-enters the next pass to be tested against all other
// survivors. Termination is guaranteed because every absorption strictly
// reduces the rectangle count.
//
// The input slice is not modified. Zero rectangles in means zero out;
// a single rectangle passes through unchanged.
func (m *Merger) Merge(rects []model.Rect) []model.Rect {
	if len(rects) < 2 {
		return append([]model.Rect(nil), rects...)
	}

	work := append([]model.Rect(nil), rects...)

	for changed := true; changed; {
		changed = false
		next := make([]model.Rect, 0, len(work))

		for len(work) > 0 {
			base := work[len(work)-1]
			work = work[:len(work)-1]

			// Absorb everything mergeable with the base as it was when
			// taken; the grown union is re-tested on the next pass.
			union := base
			kept := work[:0]
			for _, other := range work {
				if m.mergeable(base, other) {
					union = union.Union(other)
					changed = true
				} else {
					kept = append(kept, other)
				}
			}
			work = kept
			next = append(next, union)
		}

		work = next
	}

	return work
}

// mergeable reports whether b may be absorbed into a.
func (m *Merger) mergeable(a, b model.Rect) bool {
	if !a.Expand(m.config.ProximityTolerance).Overlaps(b) {
		return false
	}

	gap := a.CenterY() - b.CenterY()
	if gap < 0 {
		gap = -gap
	}
	return gap <= m.config.MaxVerticalGap
}
