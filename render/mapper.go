package render

import "github.com/tsawler/figura/model"

// Mapper converts document-space geometry to raster pixel space by
// scaling every coordinate by the zoom factor (pixels per document
// unit). It is pure arithmetic with no failure modes; a non-positive
// zoom is a caller error and is not handled here.
type Mapper struct {
	Zoom float64
}

// NewMapper creates a mapper for the given zoom factor.
func NewMapper(zoom float64) Mapper {
	return Mapper{Zoom: zoom}
}

// Rect maps a document-space rectangle to pixel space. The vertical
// edges are normalized so that the returned top coordinate is never
// greater than the bottom coordinate, guarding against sources whose y
// axis points the other way.
func (m Mapper) Rect(r model.Rect) model.Rect {
	scale := model.Scale(m.Zoom, m.Zoom)
	p0 := scale.Transform(model.Point{X: r.X0, Y: r.Y0})
	p1 := scale.Transform(model.Point{X: r.X1, Y: r.Y1})

	top, bottom := p0.Y, p1.Y
	if top > bottom {
		top, bottom = bottom, top
	}
	return model.Rect{X0: p0.X, Y0: top, X1: p1.X, Y1: bottom}
}

// Length maps a scalar document-space distance to pixels.
func (m Mapper) Length(v float64) float64 {
	return v * m.Zoom
}
