// Package layout groups the scattered vector-drawing primitives of a
// document page into a small number of content clusters.
//
// This package is the algorithmic core of the module. It reasons purely
// about geometry: it never inspects what a drawing depicts, only where
// its bounding box sits on the page.
//
// # Pipeline
//
// The [Analyzer] sequences three stages over one page:
//
//  1. [PrimitiveFilter] discards primitives that are unlikely to be part
//     of meaningful content (full-page frames, wide footer bars, stray
//     skinny rules below the detected figure band).
//  2. [Merger] repeatedly unions overlapping or near rectangles until a
//     fixed point is reached, guarded by a vertical-alignment limit that
//     stops chain-merging across the whole page.
//  3. [ClusterFilter] drops merged regions that are still too large
//     (page panes) or too small (noise), pads the survivors, and assigns
//     sequential identifiers.
//
// Typical usage:
//
//	analyzer := layout.NewAnalyzer()
//	result, err := analyzer.AnalyzePage(textBlocks, imageBlocks, primitives, geom)
//
// # Configuration
//
// All tuning constants (tolerances, ratio thresholds, the area floor)
// live in [Config]; [DefaultConfig] returns the documented defaults.
//
// # Diagnostics
//
// The pipeline is side-effect-free. Rejection decisions can be observed
// through an injectable [Trace] sink; [NewLogTrace] adapts a logrus
// logger for callers that want dropped-primitive and dropped-cluster
// events in their logs.
//
// # Concurrency
//
// Every stage is a pure function over immutable per-call inputs, so a
// caller may analyze pages from multiple goroutines with one Analyzer as
// long as the configured Trace is itself safe for concurrent use.
package layout
