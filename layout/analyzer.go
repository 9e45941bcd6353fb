package layout

import (
	"fmt"

	"github.com/tsawler/figura/model"
)

// Config holds the tuning constants for the analysis pipeline. The zero
// value is not useful; start from DefaultConfig and override fields as
// needed. Several thresholds are absolute document-unit values tuned for
// A4-sized exam papers; callers analyzing other page formats can retune
// them here without a code change.
type Config struct {
	// ProximityTolerance is the margin, in document units, by which a
	// rectangle is expanded before testing overlap during merging.
	// Rectangles separated by at most twice this value can merge.
	// Default: 2
	ProximityTolerance float64

	// MaxVerticalGap is the maximum distance, in document units, between
	// two rectangles' vertical centers for them to merge. This stops a
	// single wide or tall rectangle from transitively absorbing
	// unrelated content across the whole page.
	// Default: 20
	MaxVerticalGap float64

	// FrameWidthRatio and FrameHeightRatio define the full-page frame
	// rule: a primitive wider AND taller than these fractions of the
	// page is rejected before merging.
	// Default: 0.9 each
	FrameWidthRatio  float64
	FrameHeightRatio float64

	// FooterMargin is the distance from the page's lower edge, in
	// document units, within which a wide primitive is treated as a
	// footer bar.
	// Default: 50
	FooterMargin float64

	// FooterWidthRatio is the minimum width fraction for the footer bar
	// rule.
	// Default: 0.5
	FooterWidthRatio float64

	// RuleWidthRatio and RuleMaxHeight define a "skinny rule": a
	// primitive wider than RuleWidthRatio of the page and shorter than
	// RuleMaxHeight document units.
	// Defaults: 0.6 and 3
	RuleWidthRatio float64
	RuleMaxHeight  float64

	// BandFraction is the fraction of page height a primitive's bottom
	// edge must pass for the primitive to contribute to the figure band.
	// Default: 0.6
	BandFraction float64

	// BandSlack is how far below the figure band's top edge, in document
	// units, a skinny rule must sit before it is rejected as stray.
	// Default: 60
	BandSlack float64

	// PaneWidthRatio and PaneHeightRatio define the post-merge pane
	// rule: a merged region wider AND taller than these fractions of the
	// page is dropped as a background pane rather than a content figure.
	// Default: 0.7 each
	PaneWidthRatio  float64
	PaneHeightRatio float64

	// MinClusterArea is the area floor, in square document units, below
	// which a merged region is dropped as noise.
	// Default: 1000
	MinClusterArea float64

	// ClusterPadding is the margin, in document units, added to all four
	// sides of each surviving cluster.
	// Default: 5
	ClusterPadding float64
}

// DefaultConfig returns the configuration the pipeline was tuned with.
func DefaultConfig() Config {
	return Config{
		ProximityTolerance: 2,
		MaxVerticalGap:     20,
		FrameWidthRatio:    0.9,
		FrameHeightRatio:   0.9,
		FooterMargin:       50,
		FooterWidthRatio:   0.5,
		RuleWidthRatio:     0.6,
		RuleMaxHeight:      3,
		BandFraction:       0.6,
		BandSlack:          60,
		PaneWidthRatio:     0.7,
		PaneHeightRatio:    0.7,
		MinClusterArea:     1000,
		ClusterPadding:     5,
	}
}

// Result holds the outcome of analyzing one page. Blocks and primitives
// are the caller's inputs passed through unchanged; clusters are the
// only derived entity.
type Result struct {
	// TextBlocks are the input text blocks, unchanged
	TextBlocks []model.Block

	// ImageBlocks are the input image blocks, unchanged
	ImageBlocks []model.Block

	// Primitives are the input drawing primitives, unchanged (kept for
	// raw diagnostics and overlays)
	Primitives []model.Primitive

	// Clusters are the merged, filtered, padded content regions in
	// finalization order
	Clusters []model.Cluster
}

// Analyzer orchestrates primitive filtering, rectangle merging, and
// cluster post-filtering over one page at a time.
type Analyzer struct {
	config   Config
	filter   *PrimitiveFilter
	merger   *Merger
	clusters *ClusterFilter
}

// NewAnalyzer creates an analyzer with the default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with the specified configuration.
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{
		config:   config,
		filter:   NewPrimitiveFilterWithConfig(config),
		merger:   NewMergerWithConfig(config),
		clusters: NewClusterFilterWithConfig(config),
	}
}

// SetTrace installs a diagnostic sink that receives primitive-rejected
// and cluster-dropped events. A nil trace restores the no-op default.
func (a *Analyzer) SetTrace(trace Trace) {
	if trace == nil {
		trace = NopTrace{}
	}
	a.filter.trace = trace
	a.clusters.trace = trace
}

// AnalyzePage runs the full pipeline over one page's extracted content.
// Text blocks, image blocks, and primitives are returned unchanged in
// the result; clusters are derived from the primitives. The page
// geometry must have positive dimensions or AnalyzePage fails with
// model.ErrInvalidGeometry.
func (a *Analyzer) AnalyzePage(textBlocks, imageBlocks []model.Block, primitives []model.Primitive, geom model.PageGeometry) (*Result, error) {
	if err := geom.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	rects := a.filter.Filter(primitives, geom)
	merged := a.merger.Merge(rects)
	clusters := a.clusters.Finalize(merged, geom)

	return &Result{
		TextBlocks:  textBlocks,
		ImageBlocks: imageBlocks,
		Primitives:  primitives,
		Clusters:    clusters,
	}, nil
}
