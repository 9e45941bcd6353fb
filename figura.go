// Package figura provides a fluent API for detecting vector-drawing
// regions (figures, diagrams, charts) in PDF pages.
//
// Basic usage:
//
//	pages, err := figura.Open("document.pdf").Run()
//	if err != nil {
//	    // handle error
//	}
//	for _, p := range pages {
//	    for _, c := range p.Result.Clusters {
//	        fmt.Println(c.ID, c.Rect)
//	    }
//	}
//
// With options:
//
//	pages, err := figura.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    DPI(300).
//	    Run()
//
// For advanced use cases, the lower-level fitzdoc and layout packages
// are also available.
package figura

import (
	"github.com/tsawler/figura/fitzdoc"
)

// Open opens a PDF file and returns an Analysis for fluent
// configuration. The returned Analysis must be closed when done, either
// explicitly via Close() or implicitly when calling a terminal
// operation like Run().
//
// Example:
//
//	pages, err := figura.Open("document.pdf").Run()
func Open(filename string) *Analysis {
	return &Analysis{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Analysis from an already-opened
// fitzdoc.Document. This is useful when you need more control over the
// document lifecycle, for example when also rendering page rasters from
// the same handle. The caller is responsible for closing the document.
//
// Example:
//
//	doc, err := fitzdoc.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	pages, err := figura.FromDocument(doc).Run()
func FromDocument(doc *fitzdoc.Document) *Analysis {
	return &Analysis{
		doc:       doc,
		ownsDoc:   false,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	pages := figura.Must(figura.Open("document.pdf").Run())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
