// Package fitzdoc extracts page content from PDF files through MuPDF.
//
// A [Document] wraps an open PDF and serves four views of a page:
//
//   - Geometry: the page size in document units plus the zoom factor
//     implied by a requested DPI
//   - Render: the page raster at a requested DPI
//   - Blocks: text and image blocks with their bounding rectangles
//   - Primitives: raw vector drawing operations as bounding rectangles
//
// Blocks come from MuPDF's structured-text HTML rendition and
// primitives from its SVG rendition, so no PDF content-stream parsing
// happens here. MuPDF is not safe for concurrent use on one handle;
// Document serializes all page access behind a mutex, so one Document
// may be shared across goroutines.
package fitzdoc
