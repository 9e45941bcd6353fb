package layout

import (
	"github.com/sirupsen/logrus"

	"github.com/tsawler/figura/model"
)

// DropReason identifies which rule rejected a primitive or dropped a
// merged region.
type DropReason string

const (
	// DropDegenerate marks geometry with non-positive width or height.
	DropDegenerate DropReason = "degenerate geometry"

	// DropPageFrame marks a primitive spanning almost the whole page in
	// both dimensions.
	DropPageFrame DropReason = "full-page frame"

	// DropFooterBar marks a wide primitive hugging the page's lower edge.
	DropFooterBar DropReason = "footer bar"

	// DropStrayRule marks a long skinny horizontal sitting well below
	// the figure band's top.
	DropStrayRule DropReason = "stray rule below figure band"

	// DropPagePane marks a merged region covering most of the page in
	// both dimensions.
	DropPagePane DropReason = "large page pane"

	// DropNoise marks a merged region below the area floor.
	DropNoise DropReason = "too small / noise"
)

// ClusterMetrics carries the measurements a drop decision was based on.
type ClusterMetrics struct {
	WidthRatio  float64
	HeightRatio float64
	Area        float64
}

// Trace receives diagnostic events from the pipeline. Events are
// advisory: they never affect analysis results, and implementations must
// not retain the primitives beyond the call. Implementations must be
// safe for concurrent use if pages are analyzed from multiple
// goroutines.
type Trace interface {
	// PrimitiveRejected is called when a pre-merge rule excludes a
	// primitive from merging.
	PrimitiveRejected(p model.Primitive, reason DropReason)

	// ClusterDropped is called when a merged region fails a post-filter
	// rule. The rectangle is the pre-padding union.
	ClusterDropped(r model.Rect, reason DropReason, metrics ClusterMetrics)
}

// NopTrace discards all events. It is the default sink.
type NopTrace struct{}

func (NopTrace) PrimitiveRejected(model.Primitive, DropReason) {}

func (NopTrace) ClusterDropped(model.Rect, DropReason, ClusterMetrics) {}

// NewLogTrace returns a Trace that writes each event to the given logrus
// logger at debug level, with the geometry and metrics as structured
// fields.
func NewLogTrace(log logrus.FieldLogger) Trace {
	return &logTrace{log: log}
}

type logTrace struct {
	log logrus.FieldLogger
}

func (t *logTrace) PrimitiveRejected(p model.Primitive, reason DropReason) {
	t.log.WithFields(logrus.Fields{
		"primitive": p.ID,
		"rect":      p.Rect,
		"reason":    string(reason),
	}).Debug("primitive rejected")
}

func (t *logTrace) ClusterDropped(r model.Rect, reason DropReason, m ClusterMetrics) {
	t.log.WithFields(logrus.Fields{
		"rect":         r,
		"reason":       string(reason),
		"width_ratio":  m.WidthRatio,
		"height_ratio": m.HeightRatio,
		"area":         m.Area,
	}).Debug("cluster dropped")
}
