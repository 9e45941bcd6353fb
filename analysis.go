package figura

import (
	"fmt"
	"sort"

	"github.com/tsawler/figura/fitzdoc"
	"github.com/tsawler/figura/layout"
	"github.com/tsawler/figura/model"
)

// PageAnalysis holds the analysis output for a single page.
type PageAnalysis struct {
	// Page is the 1-indexed page number.
	Page int

	// Geometry is the page size in document units plus the zoom factor
	// implied by the configured DPI.
	Geometry model.PageGeometry

	// Result carries the extracted blocks, the raw primitives, and the
	// final drawing clusters.
	Result *layout.Result
}

// Analysis provides a fluent interface for detecting drawing regions in
// PDF pages. Each configuration method returns a new Analysis instance,
// making it safe for concurrent use and allowing method chaining.
type Analysis struct {
	// Source
	filename string

	// Document handle
	doc *fitzdoc.Document

	// Lifecycle
	ownsDoc   bool // true if we opened the document and should close it
	docOpened bool // true if the document has been opened

	// Configuration
	options analyzeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Analysis with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (a *Analysis) clone() *Analysis {
	return &Analysis{
		filename:  a.filename,
		doc:       a.doc,
		ownsDoc:   a.ownsDoc,
		docOpened: a.docOpened,
		options:   a.options.clone(),
		err:       a.err,
	}
}

// ensureDoc opens the document if not already open.
func (a *Analysis) ensureDoc() error {
	if a.docOpened {
		return nil
	}
	if a.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	doc, err := fitzdoc.Open(a.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	a.doc = doc
	a.ownsDoc = true
	a.docOpened = true
	return nil
}

// Close releases resources associated with the Analysis.
// It is safe to call Close multiple times.
func (a *Analysis) Close() error {
	if a.ownsDoc && a.doc != nil {
		err := a.doc.Close()
		a.doc = nil
		a.ownsDoc = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Analysis instance)
// ============================================================================

// Pages specifies which pages to analyze (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	pages, err := figura.Open("doc.pdf").Pages(1, 3, 5).Run()
func (a *Analysis) Pages(pages ...int) *Analysis {
	newA := a.clone()
	newA.options.pages = append(newA.options.pages, pages...)
	return newA
}

// PageRange specifies a range of pages to analyze (1-indexed,
// inclusive).
//
// Example:
//
//	pages, err := figura.Open("doc.pdf").PageRange(5, 10).Run()
func (a *Analysis) PageRange(start, end int) *Analysis {
	newA := a.clone()
	for i := start; i <= end; i++ {
		newA.options.pages = append(newA.options.pages, i)
	}
	return newA
}

// DPI sets the raster resolution the analysis assumes. It only affects
// the zoom factor reported in each page's geometry; the detection
// itself runs in document units.
//
// Example:
//
//	pages, err := figura.Open("doc.pdf").DPI(300).Run()
func (a *Analysis) DPI(dpi float64) *Analysis {
	newA := a.clone()
	newA.options.dpi = dpi
	if dpi <= 0 {
		newA.err = fmt.Errorf("dpi must be positive, got %v", dpi)
	}
	return newA
}

// Config replaces the detection thresholds with a custom configuration.
//
// Example:
//
//	cfg := layout.DefaultConfig()
//	cfg.MaxVerticalGap = 40
//	pages, err := figura.Open("doc.pdf").Config(cfg).Run()
func (a *Analysis) Config(cfg layout.Config) *Analysis {
	newA := a.clone()
	newA.options.config = cfg
	return newA
}

// Trace installs a diagnostics sink that reports every primitive and
// cluster the analysis discards, with the reason.
//
// Example:
//
//	logger := logrus.New()
//	logger.SetLevel(logrus.DebugLevel)
//	pages, err := figura.Open("doc.pdf").
//	    Trace(layout.NewLogTrace(logger)).
//	    Run()
func (a *Analysis) Trace(trace layout.Trace) *Analysis {
	newA := a.clone()
	newA.options.trace = trace
	return newA
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the total number of pages in the document.
// Note: This does NOT close the document, allowing further operations.
//
// Example:
//
//	an := figura.Open("document.pdf")
//	defer an.Close()
//	count, err := an.PageCount()
func (a *Analysis) PageCount() (int, error) {
	if a.err != nil {
		return 0, a.err
	}
	if err := a.ensureDoc(); err != nil {
		return 0, err
	}
	return a.doc.NumPages(), nil
}

// Run analyzes the configured pages and returns one PageAnalysis per
// page, in page order. This is a terminal operation that closes the
// underlying document if the Analysis opened it.
//
// Example:
//
//	pages, err := figura.Open("document.pdf").Pages(1).Run()
//	for _, p := range pages {
//	    fmt.Printf("page %d: %d clusters\n", p.Page, len(p.Result.Clusters))
//	}
func (a *Analysis) Run() ([]PageAnalysis, error) {
	if a.err != nil {
		return nil, a.err
	}

	if err := a.ensureDoc(); err != nil {
		return nil, err
	}
	defer a.Close()

	pageIndices, err := a.resolvePages()
	if err != nil {
		return nil, err
	}

	analyzer := layout.NewAnalyzerWithConfig(a.options.config)
	if a.options.trace != nil {
		analyzer.SetTrace(a.options.trace)
	}

	results := make([]PageAnalysis, 0, len(pageIndices))
	for _, pageNum := range pageIndices {
		pa, err := a.analyzeOne(analyzer, pageNum)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum+1, err)
		}
		results = append(results, pa)
	}

	return results, nil
}

// analyzeOne extracts and analyzes a single 0-indexed page.
func (a *Analysis) analyzeOne(analyzer *layout.Analyzer, pageNum int) (PageAnalysis, error) {
	geom, err := a.doc.Geometry(pageNum, a.options.dpi)
	if err != nil {
		return PageAnalysis{}, err
	}

	texts, images, err := a.doc.Blocks(pageNum)
	if err != nil {
		return PageAnalysis{}, err
	}

	prims, err := a.doc.Primitives(pageNum)
	if err != nil {
		return PageAnalysis{}, err
	}

	res, err := analyzer.AnalyzePage(texts, images, prims, geom)
	if err != nil {
		return PageAnalysis{}, err
	}

	return PageAnalysis{
		Page:     pageNum + 1,
		Geometry: geom,
		Result:   res,
	}, nil
}

// resolvePages converts 1-indexed page numbers to 0-indexed and
// validates them. If no pages were specified, returns all pages.
func (a *Analysis) resolvePages() ([]int, error) {
	pageCount := a.doc.NumPages()

	// If no pages specified, use all pages
	if len(a.options.pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	// Convert 1-indexed to 0-indexed and validate
	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range a.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		zeroIndexed := p - 1
		if !seen[zeroIndexed] {
			seen[zeroIndexed] = true
			pageIndices = append(pageIndices, zeroIndexed)
		}
	}

	sort.Ints(pageIndices)
	return pageIndices, nil
}
