// Package render places analysis geometry onto raster images for visual
// debugging.
//
// The [Mapper] is the coordinate bridge: a pure scale transform from
// document units to pixels at a given zoom factor, normalizing the
// vertical axis so the returned top edge is never below the bottom edge.
//
// Three overlay builders mirror the classic debugging views:
//
//   - [RawLayout] - text blocks (red), image blocks (green), and every
//     raw drawing primitive (blue, thin)
//   - [MergedLayout] - the same blocks plus the final clusters (blue,
//     thick)
//   - [CoordinateGrid] - a calibration image with grid lines every
//     GridStep document units, labeled in document coordinates
//
// All builders leave the input raster untouched and return a fresh
// image. [SavePNG] persists any of them.
package render
