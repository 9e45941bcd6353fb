// Package model provides the value types shared by the analysis pipeline.
//
// This package defines the page-scoped entities that flow through layout
// analysis: geometry primitives, extracted blocks and drawing primitives,
// and the clusters the pipeline produces. All types are plain values with
// no identity beyond their fields; the pipeline owns them for the duration
// of one page's analysis.
//
// # Geometry
//
//   - [Rect] - axis-aligned rectangle in corner form with union, expansion,
//     and overlap calculations
//   - [Point] - 2D point
//   - [Matrix] - 2D affine transformation matrix
//
// The module-wide coordinate convention is raster order: y increases down
// the page, so Y0 is a rectangle's top edge and Y1 its bottom edge.
//
// # Page Entities
//
//   - [PageGeometry] - page dimensions in document units plus the zoom
//     factor used when placing geometry onto a raster canvas
//   - [Block] - an extracted text or image block, passed through analysis
//     unchanged
//   - [Primitive] - the bounding box of one raw vector drawing operation
//   - [Cluster] - a merged, filtered, padded content region with derived
//     metrics
package model
