package fitzdoc

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"
	"github.com/google/uuid"

	"github.com/tsawler/figura/model"
)

// ErrPageOutOfRange is returned when a page index falls outside the
// document.
var ErrPageOutOfRange = errors.New("page out of range")

// Document is an open PDF. All page access is serialized internally,
// so a single Document can be shared across goroutines; the usual
// pattern is one goroutine per page calling Render and the analysis
// methods.
type Document struct {
	id   uuid.UUID
	path string

	mu  sync.Mutex
	doc *fitz.Document
}

// Open opens the PDF at path. The caller owns the returned Document
// and must Close it.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("fitzdoc: opening %s: %w", path, err)
	}
	return &Document{
		id:   uuid.New(),
		path: path,
		doc:  doc,
	}, nil
}

// ID returns the identifier assigned to this Document when it was
// opened.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Path returns the file path the Document was opened from.
func (d *Document) Path() string {
	return d.path
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.NumPage()
}

// Geometry returns the page dimensions in document units together with
// the zoom factor a raster rendered at the given DPI will have.
func (d *Document) Geometry(page int, dpi float64) (model.PageGeometry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkPage(page); err != nil {
		return model.PageGeometry{}, err
	}

	bound, err := d.doc.Bound(page)
	if err != nil {
		return model.PageGeometry{}, fmt.Errorf("fitzdoc: page %d bounds: %w", page, err)
	}

	geom := model.NewPageGeometry(float64(bound.Dx()), float64(bound.Dy()), dpi)
	if err := geom.Validate(); err != nil {
		return model.PageGeometry{}, fmt.Errorf("fitzdoc: page %d: %w", page, err)
	}
	return geom, nil
}

// Render rasterizes a page at the given DPI.
func (d *Document) Render(page int, dpi float64) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkPage(page); err != nil {
		return nil, err
	}

	img, err := d.doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("fitzdoc: rendering page %d: %w", page, err)
	}
	return img, nil
}

// Blocks extracts the text and image blocks of a page from MuPDF's
// structured-text HTML rendition. Text block extents past the left and
// top edge are estimated from the font metrics the rendition carries.
func (d *Document) Blocks(page int) (texts, images []model.Block, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkPage(page); err != nil {
		return nil, nil, err
	}

	markup, err := d.doc.HTML(page, true)
	if err != nil {
		return nil, nil, fmt.Errorf("fitzdoc: page %d html: %w", page, err)
	}

	texts, images, err = parseBlocks(markup)
	if err != nil {
		return nil, nil, fmt.Errorf("fitzdoc: page %d blocks: %w", page, err)
	}
	return texts, images, nil
}

// Primitives extracts the vector drawing primitives of a page from
// MuPDF's SVG rendition, one bounding rectangle per visible drawing
// element.
func (d *Document) Primitives(page int) ([]model.Primitive, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkPage(page); err != nil {
		return nil, err
	}

	markup, err := d.doc.SVG(page)
	if err != nil {
		return nil, fmt.Errorf("fitzdoc: page %d svg: %w", page, err)
	}

	prims, err := parsePrimitives(markup)
	if err != nil {
		return nil, fmt.Errorf("fitzdoc: page %d primitives: %w", page, err)
	}
	return prims, nil
}

// Close releases the underlying MuPDF handle. The Document must not be
// used afterward.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Close()
}

// checkPage validates a page index; callers hold d.mu.
func (d *Document) checkPage(page int) error {
	if page < 0 || page >= d.doc.NumPage() {
		return fmt.Errorf("fitzdoc: page %d of %d: %w", page, d.doc.NumPage(), ErrPageOutOfRange)
	}
	return nil
}
