package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/figura/layout"
	"github.com/tsawler/figura/model"
)

// OverlayConfig controls overlay drawing.
type OverlayConfig struct {
	// ShowLabels draws each entity's identifier in a small white box at
	// its top-left corner.
	// Default: true
	ShowLabels bool

	// GridStep is the spacing of coordinate grid lines in document
	// units.
	// Default: 50
	GridStep float64

	// TextColor outlines text blocks. Default: red
	TextColor color.RGBA

	// ImageColor outlines image blocks. Default: green
	ImageColor color.RGBA

	// DrawingColor outlines raw primitives and clusters. Default: blue
	DrawingColor color.RGBA

	// GridColor draws the calibration grid lines. Default: pale blue
	GridColor color.RGBA

	// LabelColor draws grid line labels. Default: black
	LabelColor color.RGBA
}

// DefaultOverlayConfig returns the overlay defaults.
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{
		ShowLabels:   true,
		GridStep:     50,
		TextColor:    color.RGBA{R: 255, A: 255},
		ImageColor:   color.RGBA{G: 128, A: 255},
		DrawingColor: color.RGBA{B: 255, A: 255},
		GridColor:    color.RGBA{R: 180, G: 180, B: 255, A: 255},
		LabelColor:   color.RGBA{A: 255},
	}
}

// RawLayout draws text blocks, image blocks, and every raw drawing
// primitive over a copy of the page raster. Primitives are drawn with a
// thin outline so dense drawings stay readable.
func RawLayout(page image.Image, res *layout.Result, zoom float64, cfg OverlayConfig) *image.NRGBA {
	img := imaging.Clone(page)
	m := NewMapper(zoom)

	drawBlocks(img, m, res, cfg)

	for _, p := range res.Primitives {
		box := m.Rect(p.Rect)
		strokeRect(img, box, cfg.DrawingColor, 1)
		if cfg.ShowLabels {
			drawLabel(img, box.X0, box.Y0, p.ID, cfg.DrawingColor)
		}
	}

	return img
}

// MergedLayout draws text blocks, image blocks, and the final clusters
// over a copy of the page raster. Clusters get a thick outline.
func MergedLayout(page image.Image, res *layout.Result, zoom float64, cfg OverlayConfig) *image.NRGBA {
	img := imaging.Clone(page)
	m := NewMapper(zoom)

	drawBlocks(img, m, res, cfg)

	for _, c := range res.Clusters {
		box := m.Rect(c.Rect)
		strokeRect(img, box, cfg.DrawingColor, 3)
		if cfg.ShowLabels {
			drawLabel(img, box.X0, box.Y0, c.ID, cfg.DrawingColor)
		}
	}

	return img
}

// CoordinateGrid draws a calibration grid over a copy of the page
// raster: a line every GridStep document units on both axes, each
// labeled with its document coordinate. Useful for verifying that the
// zoom transform and the raster actually agree.
func CoordinateGrid(page image.Image, geom model.PageGeometry, cfg OverlayConfig) *image.NRGBA {
	img := imaging.Clone(page)
	m := NewMapper(geom.Zoom)
	bounds := img.Bounds()

	for x := 0.0; x <= geom.Width; x += cfg.GridStep {
		px := int(m.Length(x))
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			setPixel(img, px, y, cfg.GridColor)
		}
		drawText(img, px+2, 2, fmt.Sprintf("x=%d", int(x)), cfg.LabelColor)
	}

	for y := 0.0; y <= geom.Height; y += cfg.GridStep {
		py := int(m.Length(y))
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			setPixel(img, x, py, cfg.GridColor)
		}
		drawText(img, 2, py+2, fmt.Sprintf("y=%d", int(y)), cfg.LabelColor)
	}

	return img
}

// SavePNG writes an image to disk; the format follows the file
// extension, so a .png path produces a PNG.
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("render: saving %s: %w", path, err)
	}
	return nil
}

// drawBlocks outlines text blocks in the text color and image blocks in
// the image color, with optional ID labels.
func drawBlocks(img *image.NRGBA, m Mapper, res *layout.Result, cfg OverlayConfig) {
	for _, b := range res.TextBlocks {
		box := m.Rect(b.Rect)
		strokeRect(img, box, cfg.TextColor, 2)
		if cfg.ShowLabels {
			drawLabel(img, box.X0, box.Y0, b.ID, cfg.TextColor)
		}
	}
	for _, b := range res.ImageBlocks {
		box := m.Rect(b.Rect)
		strokeRect(img, box, cfg.ImageColor, 2)
		if cfg.ShowLabels {
			drawLabel(img, box.X0, box.Y0, b.ID, cfg.ImageColor)
		}
	}
}

// strokeRect outlines a pixel-space rectangle with the given stroke
// width, growing inward from the edge.
func strokeRect(img *image.NRGBA, r model.Rect, col color.RGBA, width int) {
	x0, y0 := int(r.X0), int(r.Y0)
	x1, y1 := int(r.X1), int(r.Y1)

	for t := 0; t < width; t++ {
		for x := x0; x <= x1; x++ {
			setPixel(img, x, y0+t, col)
			setPixel(img, x, y1-t, col)
		}
		for y := y0; y <= y1; y++ {
			setPixel(img, x0+t, y, col)
			setPixel(img, x1-t, y, col)
		}
	}
}

// drawLabel draws text in a white backing box so identifiers stay
// legible over page content.
func drawLabel(img *image.NRGBA, x, y float64, text string, col color.RGBA) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil() + 6
	h := face.Metrics().Height.Ceil() + 3

	box := model.Rect{X0: x, Y0: y, X1: x + float64(w), Y1: y + float64(h)}
	fillRect(img, box, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	strokeRect(img, box, col, 1)
	drawText(img, int(x)+3, int(y)+2, text, col)
}

// drawText renders a string with its top-left corner at (x, y).
func drawText(img *image.NRGBA, x, y int, text string, col color.RGBA) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// fillRect fills a pixel-space rectangle.
func fillRect(img *image.NRGBA, r model.Rect, col color.RGBA) {
	rect := image.Rect(int(r.X0), int(r.Y0), int(r.X1)+1, int(r.Y1)+1)
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// setPixel writes one pixel, ignoring coordinates outside the canvas.
func setPixel(img *image.NRGBA, x, y int, col color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetNRGBA(x, y, color.NRGBA{R: col.R, G: col.G, B: col.B, A: col.A})
	}
}
