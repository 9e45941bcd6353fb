package layout

import "github.com/tsawler/figura/model"

// Band is the vertical interval where primary page content plausibly
// sits. It is derived once per run from the primitives themselves and
// used only while filtering.
type Band struct {
	Top    float64
	Bottom float64
}

// PrimitiveFilter decides, primitive by primitive, whether a shape is
// plausibly part of meaningful content before it is allowed to
// participate in merging.
type PrimitiveFilter struct {
	config Config
	trace  Trace
}

// NewPrimitiveFilter creates a primitive filter with default configuration.
func NewPrimitiveFilter() *PrimitiveFilter {
	return NewPrimitiveFilterWithConfig(DefaultConfig())
}

// NewPrimitiveFilterWithConfig creates a primitive filter with the
// specified configuration.
func NewPrimitiveFilterWithConfig(config Config) *PrimitiveFilter {
	return &PrimitiveFilter{
		config: config,
		trace:  NopTrace{},
	}
}

// FigureBand derives the vertical interval where the page's main content
// plausibly sits. Primitives whose bottom edge passes BandFraction of
// the page height contribute; the band spans from the topmost top edge
// to the bottommost bottom edge of that set. With no contributing
// primitives the band defaults to the full page height.
func (f *PrimitiveFilter) FigureBand(primitives []model.Primitive, geom model.PageGeometry) Band {
	limit := geom.Height * f.config.BandFraction

	var top, bottom float64
	found := false

	for _, p := range primitives {
		if p.Rect.Y1 <= limit {
			continue
		}
		if !found {
			top, bottom = p.Rect.Y0, p.Rect.Y1
			found = true
			continue
		}
		if p.Rect.Y0 < top {
			top = p.Rect.Y0
		}
		if p.Rect.Y1 > bottom {
			bottom = p.Rect.Y1
		}
	}

	if !found {
		return Band{Top: 0, Bottom: geom.Height}
	}
	return Band{Top: top, Bottom: bottom}
}

// Filter applies the rejection rules in order and returns the raw
// rectangles of the surviving primitives. Color metadata is dropped;
// only geometry matters downstream. The result may be empty; there are
// no error conditions.
func (f *PrimitiveFilter) Filter(primitives []model.Primitive, geom model.PageGeometry) []model.Rect {
	band := f.FigureBand(primitives, geom)

	var kept []model.Rect
	for _, p := range primitives {
		if reason, drop := f.reject(p.Rect, geom, band); drop {
			f.trace.PrimitiveRejected(p, reason)
			continue
		}
		kept = append(kept, p.Rect)
	}
	return kept
}

// reject tests one primitive rectangle against the rejection rules, in
// order, and reports the first matching rule.
func (f *PrimitiveFilter) reject(r model.Rect, geom model.PageGeometry, band Band) (DropReason, bool) {
	w := r.Width()
	h := r.Height()

	if w <= 0 || h <= 0 {
		return DropDegenerate, true
	}

	wRatio := w / geom.Width
	hRatio := h / geom.Height

	// Rule: almost-whole-page frames carry no content of their own.
	if wRatio > f.config.FrameWidthRatio && hRatio > f.config.FrameHeightRatio {
		return DropPageFrame, true
	}

	// Rule: very wide bars hugging the page's lower edge are footer
	// furniture (barcode area and the like).
	if geom.Height-r.Y1 < f.config.FooterMargin && wRatio > f.config.FooterWidthRatio {
		return DropFooterBar, true
	}

	// Rule: long skinny horizontals are only stray when they sit well
	// below the top of the figure band.
	if wRatio > f.config.RuleWidthRatio && h < f.config.RuleMaxHeight &&
		r.Y0-band.Top > f.config.BandSlack {
		return DropStrayRule, true
	}

	return "", false
}
