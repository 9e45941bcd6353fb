package model

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry reports a page geometry that cannot support ratio
// calculations. It is a caller precondition violation, not a recoverable
// analysis condition.
var ErrInvalidGeometry = errors.New("invalid page geometry")

// PageGeometry describes a single page for one analysis run: width and
// height in document units, and the zoom factor (pixels per document
// unit) used when handing geometry to a renderer. It is immutable for
// the duration of a run.
type PageGeometry struct {
	Width  float64 // Page width in document units
	Height float64 // Page height in document units
	Zoom   float64 // Pixels per document unit
}

// NewPageGeometry creates a page geometry with the given dimensions and
// a zoom factor derived from a target DPI (document units are assumed to
// be points, 72 per inch).
func NewPageGeometry(width, height, dpi float64) PageGeometry {
	return PageGeometry{
		Width:  width,
		Height: height,
		Zoom:   dpi / 72.0,
	}
}

// Area returns the page area in square document units.
func (g PageGeometry) Area() float64 {
	return g.Width * g.Height
}

// Validate returns ErrInvalidGeometry if the page has non-positive
// width or height.
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %gx%g document units", ErrInvalidGeometry, g.Width, g.Height)
	}
	return nil
}
