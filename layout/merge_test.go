package layout

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/tsawler/figura/model"
)

func TestMerger_Merge_Empty(t *testing.T) {
	m := NewMerger()

	got := m.Merge(nil)
	if len(got) != 0 {
		t.Errorf("Merge(nil) returned %d rects, want 0", len(got))
	}

	got = m.Merge([]model.Rect{})
	if len(got) != 0 {
		t.Errorf("Merge(empty) returned %d rects, want 0", len(got))
	}
}

func TestMerger_Merge_Single(t *testing.T) {
	m := NewMerger()
	r := model.Rect{X0: 10, Y0: 10, X1: 50, Y1: 50}

	got := m.Merge([]model.Rect{r})
	if len(got) != 1 || got[0] != r {
		t.Errorf("Merge(single) = %+v, want [%+v]", got, r)
	}
}

func TestMerger_Merge_SmallGap(t *testing.T) {
	a := model.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := model.Rect{X0: 12, Y0: 0, X1: 20, Y1: 10}

	// Gap of 2 is exactly closed by tolerance 2
	cfg := DefaultConfig()
	cfg.ProximityTolerance = 2
	got := NewMergerWithConfig(cfg).Merge([]model.Rect{a, b})
	if len(got) != 1 {
		t.Fatalf("tolerance 2: got %d rects, want 1", len(got))
	}
	want := model.Rect{X0: 0, Y0: 0, X1: 20, Y1: 10}
	if got[0] != want {
		t.Errorf("tolerance 2: merged = %+v, want %+v", got[0], want)
	}

	// Tolerance 1 cannot bridge the gap
	cfg.ProximityTolerance = 1
	got = NewMergerWithConfig(cfg).Merge([]model.Rect{a, b})
	if len(got) != 2 {
		t.Errorf("tolerance 1: got %d rects, want 2 separate", len(got))
	}
}

func TestMerger_Merge_VerticalGapGuard(t *testing.T) {
	// Overlapping x-ranges, touching bounding boxes, but vertical
	// centers 25 apart: must never merge with MaxVerticalGap=20.
	a := model.Rect{X0: 0, Y0: 0, X1: 100, Y1: 10}
	b := model.Rect{X0: 0, Y0: 10, X1: 100, Y1: 50}

	m := NewMerger()
	got := m.Merge([]model.Rect{a, b})
	if len(got) != 2 {
		t.Errorf("got %d rects, want 2 (vertical-gap guard must block the merge)", len(got))
	}
}

func TestMerger_Merge_VerticalGapBoundary(t *testing.T) {
	// Centers exactly MaxVerticalGap apart still merge.
	a := model.Rect{X0: 0, Y0: 0, X1: 100, Y1: 10}   // center y = 5
	b := model.Rect{X0: 0, Y0: 10, X1: 100, Y1: 40}  // center y = 25
	m := NewMerger()

	got := m.Merge([]model.Rect{a, b})
	if len(got) != 1 {
		t.Errorf("got %d rects, want 1 (center distance equal to the gap merges)", len(got))
	}
}

func TestMerger_Merge_Chain(t *testing.T) {
	// Three rects in a horizontal chain; a only reaches b, b reaches c.
	// The fixed point must union all three.
	rects := []model.Rect{
		{X0: 0, Y0: 0, X1: 10, Y1: 10},
		{X0: 11, Y0: 0, X1: 20, Y1: 10},
		{X0: 21, Y0: 0, X1: 30, Y1: 10},
	}

	m := NewMerger()
	got := m.Merge(rects)
	if len(got) != 1 {
		t.Fatalf("got %d rects, want 1", len(got))
	}
	want := model.Rect{X0: 0, Y0: 0, X1: 30, Y1: 10}
	if got[0] != want {
		t.Errorf("merged = %+v, want %+v", got[0], want)
	}
}

func TestMerger_Merge_Idempotent(t *testing.T) {
	rects := []model.Rect{
		{X0: 0, Y0: 0, X1: 10, Y1: 10},
		{X0: 11, Y0: 0, X1: 20, Y1: 10},
		{X0: 200, Y0: 0, X1: 220, Y1: 10},
		{X0: 0, Y0: 300, X1: 10, Y1: 320},
	}

	m := NewMerger()
	once := m.Merge(rects)
	twice := m.Merge(once)

	if !sameRectSet(once, twice) {
		t.Errorf("re-merging changed the result:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMerger_Merge_OrderIndependent(t *testing.T) {
	rects := []model.Rect{
		{X0: 0, Y0: 0, X1: 10, Y1: 10},
		{X0: 12, Y0: 0, X1: 22, Y1: 10},
		{X0: 24, Y0: 2, X1: 40, Y1: 12},
		{X0: 100, Y0: 100, X1: 140, Y1: 130},
		{X0: 138, Y0: 105, X1: 170, Y1: 128},
		{X0: 300, Y0: 700, X1: 310, Y1: 705},
	}

	m := NewMerger()
	want := m.Merge(rects)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]model.Rect(nil), rects...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := m.Merge(shuffled)
		if !sameRectSet(got, want) {
			t.Fatalf("permutation %d changed the merged geometry:\ngot:  %+v\nwant: %+v", i, got, want)
		}
	}
}

func TestMerger_Merge_InputUnmodified(t *testing.T) {
	rects := []model.Rect{
		{X0: 0, Y0: 0, X1: 10, Y1: 10},
		{X0: 5, Y0: 0, X1: 20, Y1: 10},
	}
	snapshot := append([]model.Rect(nil), rects...)

	NewMerger().Merge(rects)

	for i := range rects {
		if rects[i] != snapshot[i] {
			t.Fatalf("Merge modified its input at index %d: %+v", i, rects[i])
		}
	}
}

func TestMerger_Merge_WideBaseDoesNotAbsorbDistantRows(t *testing.T) {
	// A tall rectangle overlaps both rows in x and y, but its center is
	// far from the bottom row's center: the guard keeps the rows apart.
	tall := model.Rect{X0: 0, Y0: 0, X1: 20, Y1: 30}   // center y = 15
	near := model.Rect{X0: 15, Y0: 10, X1: 40, Y1: 35} // center y = 22.5
	far := model.Rect{X0: 10, Y0: 28, X1: 30, Y1: 120} // center y = 74

	m := NewMerger()
	got := m.Merge([]model.Rect{tall, near, far})

	if len(got) != 2 {
		t.Fatalf("got %d rects, want 2", len(got))
	}
	union := tall.Union(near)
	if !sameRectSet(got, []model.Rect{union, far}) {
		t.Errorf("merged = %+v, want [%+v %+v]", got, union, far)
	}
}

// sameRectSet compares two rectangle slices ignoring order.
func sameRectSet(a, b []model.Rect) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]model.Rect(nil), a...)
	bs := append([]model.Rect(nil), b...)
	less := func(s []model.Rect) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].X0 != s[j].X0 {
				return s[i].X0 < s[j].X0
			}
			if s[i].Y0 != s[j].Y0 {
				return s[i].Y0 < s[j].Y0
			}
			if s[i].X1 != s[j].X1 {
				return s[i].X1 < s[j].X1
			}
			return s[i].Y1 < s[j].Y1
		}
	}
	sort.Slice(as, less(as))
	sort.Slice(bs, less(bs))
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
