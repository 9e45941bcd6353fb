package model

// BlockType represents the type of an extracted block
type BlockType int

const (
	BlockText BlockType = iota
	BlockImage
)

func (bt BlockType) String() string {
	if bt == BlockImage {
		return "image"
	}
	return "text"
}

// Color is an RGB color with components in [0, 1], as reported by the
// document extractor for stroke and fill operations.
type Color struct {
	R, G, B float64
}

// Block is a text or image block extracted from a page. Blocks are
// inputs to analysis and pass through it unchanged; they are never
// merged, only reported and visualized alongside clusters.
type Block struct {
	// ID is the extractor-assigned identifier (e.g. "T3", "I1")
	ID string

	// Type tags the block as text or image
	Type BlockType

	// Rect is the block's bounding rectangle in document units
	Rect Rect

	// Text is the joined span text; empty for image blocks
	Text string
}

// Primitive is the bounding box of a single raw vector drawing
// operation, with optional color metadata. Primitives are produced by
// the document extractor and are read-only to the pipeline.
type Primitive struct {
	// ID is the extractor-assigned identifier (e.g. "DRAW_RAW7")
	ID string

	// Rect is the primitive's bounding rectangle in document units
	Rect Rect

	// Stroke is the stroke color, or nil when the drawing carries none
	Stroke *Color

	// Fill is the fill color, or nil when the drawing carries none
	Fill *Color
}

// Cluster is a content region produced by merging one or more
// primitives. Its metrics describe the pre-padding union; only Rect
// carries the padding applied during finalization.
type Cluster struct {
	// ID is a stable sequential identifier assigned in finalization
	// order (e.g. "D0", "D1")
	ID string

	// Rect is the padded bounding rectangle in document units
	Rect Rect

	// WidthRatio is the pre-padding width divided by page width
	WidthRatio float64

	// HeightRatio is the pre-padding height divided by page height
	HeightRatio float64

	// Area is the pre-padding area in square document units
	Area float64

	// CoverRatio is the pre-padding area divided by page area
	CoverRatio float64

	// YMin and YMax are the pre-padding vertical extent
	YMin, YMax float64
}
