package figura

import "github.com/tsawler/figura/layout"

// analyzeOptions holds configuration for a page analysis run.
type analyzeOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Raster resolution used to derive the zoom factor
	dpi float64

	// Detection thresholds
	config layout.Config

	// Optional diagnostics sink
	trace layout.Trace
}

// defaultOptions returns the default analysis options.
func defaultOptions() analyzeOptions {
	return analyzeOptions{
		pages:  nil, // nil means all pages
		dpi:    150,
		config: layout.DefaultConfig(),
		trace:  nil,
	}
}

// clone creates a deep copy of analyzeOptions.
func (o analyzeOptions) clone() analyzeOptions {
	newOpts := analyzeOptions{
		dpi:    o.dpi,
		config: o.config,
		trace:  o.trace,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
