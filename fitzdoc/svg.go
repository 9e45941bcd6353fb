package fitzdoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/figura/model"
)

// parsePrimitives walks MuPDF's SVG rendition of a page and emits one
// primitive per visible drawing element, carrying its bounding
// rectangle and stroke and fill colors. Glyphs live under defs and are
// referenced with use elements, so skipping those subtrees leaves only
// the actual vector drawings.
func parsePrimitives(markup string) ([]model.Primitive, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))

	var prims []model.Primitive

	// Transform stack; the top is the composed transform of every open
	// group.
	stack := []model.Matrix{model.Identity()}
	skipDepth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skipDepth > 0 {
				skipDepth++
				continue
			}
			switch t.Name.Local {
			case "defs", "symbol", "clipPath", "mask", "text", "use":
				skipDepth = 1
				continue
			}

			current := composeTransform(xmlAttr(t, "transform"), stack[len(stack)-1])
			stack = append(stack, current)

			points, ok := elementPoints(t)
			if !ok {
				continue
			}

			stroke := parseColor(xmlAttr(t, "stroke"))
			fill := parseColor(xmlAttr(t, "fill"))
			if stroke == nil && fill == nil {
				continue
			}

			rect, ok := boundingRect(points, current)
			if !ok {
				continue
			}
			if stroke != nil {
				if w, ok := ptValue(xmlAttr(t, "stroke-width")); ok && w > 0 {
					rect = rect.Expand(w / 2)
				}
			}

			prims = append(prims, model.Primitive{
				ID:     fmt.Sprintf("DRAW_RAW%d", len(prims)),
				Rect:   rect,
				Stroke: stroke,
				Fill:   fill,
			})

		case xml.EndElement:
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return prims, nil
}

// elementPoints returns the untransformed outline points of a drawing
// element, or false for elements that draw nothing.
func elementPoints(t xml.StartElement) ([]model.Point, bool) {
	switch t.Name.Local {
	case "path":
		pts := pathPoints(xmlAttr(t, "d"))
		return pts, len(pts) > 0
	case "rect":
		x, _ := ptValue(xmlAttr(t, "x"))
		y, _ := ptValue(xmlAttr(t, "y"))
		w, okW := ptValue(xmlAttr(t, "width"))
		h, okH := ptValue(xmlAttr(t, "height"))
		if !okW || !okH {
			return nil, false
		}
		return []model.Point{{X: x, Y: y}, {X: x + w, Y: y + h}}, true
	case "line":
		x1, ok1 := ptValue(xmlAttr(t, "x1"))
		y1, ok2 := ptValue(xmlAttr(t, "y1"))
		x2, ok3 := ptValue(xmlAttr(t, "x2"))
		y2, ok4 := ptValue(xmlAttr(t, "y2"))
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, false
		}
		return []model.Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, true
	case "polyline", "polygon":
		pts := listPoints(xmlAttr(t, "points"))
		return pts, len(pts) > 0
	case "circle":
		cx, _ := ptValue(xmlAttr(t, "cx"))
		cy, _ := ptValue(xmlAttr(t, "cy"))
		r, ok := ptValue(xmlAttr(t, "r"))
		if !ok {
			return nil, false
		}
		return []model.Point{{X: cx - r, Y: cy - r}, {X: cx + r, Y: cy + r}}, true
	case "ellipse":
		cx, _ := ptValue(xmlAttr(t, "cx"))
		cy, _ := ptValue(xmlAttr(t, "cy"))
		rx, okX := ptValue(xmlAttr(t, "rx"))
		ry, okY := ptValue(xmlAttr(t, "ry"))
		if !okX || !okY {
			return nil, false
		}
		return []model.Point{{X: cx - rx, Y: cy - ry}, {X: cx + rx, Y: cy + ry}}, true
	default:
		return nil, false
	}
}

// boundingRect transforms every point and returns the enclosing
// rectangle.
func boundingRect(points []model.Point, m model.Matrix) (model.Rect, bool) {
	if len(points) == 0 {
		return model.Rect{}, false
	}

	first := m.Transform(points[0])
	rect := model.Rect{X0: first.X, Y0: first.Y, X1: first.X, Y1: first.Y}
	for _, p := range points[1:] {
		tp := m.Transform(p)
		rect.X0 = math.Min(rect.X0, tp.X)
		rect.Y0 = math.Min(rect.Y0, tp.Y)
		rect.X1 = math.Max(rect.X1, tp.X)
		rect.Y1 = math.Max(rect.Y1, tp.Y)
	}
	return rect, true
}

// composeTransform parses an SVG transform list and composes it under
// the parent transform. Later entries in the list apply first, so the
// list folds right-to-left onto the parent.
func composeTransform(list string, parent model.Matrix) model.Matrix {
	local := model.Identity()

	rest := list
	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest, ')')
		if end < open {
			break
		}
		name := strings.TrimSpace(rest[:open])
		args := parseNumbers(rest[open+1 : end])
		rest = rest[end+1:]

		op, ok := transformOp(name, args)
		if !ok {
			continue
		}
		local = op.Multiply(local)
	}

	return local.Multiply(parent)
}

// transformOp builds the matrix for one SVG transform function.
func transformOp(name string, args []float64) (model.Matrix, bool) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return model.Matrix{}, false
		}
		return model.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}, true
	case "translate":
		switch len(args) {
		case 1:
			return model.Translate(args[0], 0), true
		case 2:
			return model.Translate(args[0], args[1]), true
		}
		return model.Matrix{}, false
	case "scale":
		switch len(args) {
		case 1:
			return model.Scale(args[0], args[0]), true
		case 2:
			return model.Scale(args[0], args[1]), true
		}
		return model.Matrix{}, false
	case "rotate":
		switch len(args) {
		case 1:
			return model.Rotate(args[0] * math.Pi / 180), true
		case 3:
			// Rotation about a point: translate there, rotate, translate
			// back, applied in that order.
			m := model.Translate(-args[1], -args[2])
			m = m.Multiply(model.Rotate(args[0] * math.Pi / 180))
			m = m.Multiply(model.Translate(args[1], args[2]))
			return m, true
		}
		return model.Matrix{}, false
	default:
		return model.Matrix{}, false
	}
}

// pathPoints walks SVG path data command by command and collects every
// absolute position it touches, including curve control points, so the
// bounding box always contains the drawn geometry.
func pathPoints(d string) []model.Point {
	var points []model.Point
	var cur, start model.Point

	i := 0
	cmd := byte(0)
	for i < len(d) {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			cmd = c
			i++
			if cmd == 'Z' || cmd == 'z' {
				cur = start
			}
			continue
		}

		args, next := scanNumbers(d, i, argCount(cmd))
		if next == i {
			// Malformed data; stop rather than loop forever.
			return points
		}
		i = next

		rel := cmd >= 'a' && cmd <= 'z'
		switch cmd {
		case 'M', 'm':
			cur = applyPoint(cur, args[0], args[1], rel)
			start = cur
			points = append(points, cur)
			// Subsequent coordinate pairs are implicit line-tos.
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			cur = applyPoint(cur, args[0], args[1], rel)
			points = append(points, cur)
		case 'H', 'h':
			if rel {
				cur.X += args[0]
			} else {
				cur.X = args[0]
			}
			points = append(points, cur)
		case 'V', 'v':
			if rel {
				cur.Y += args[0]
			} else {
				cur.Y = args[0]
			}
			points = append(points, cur)
		case 'C', 'c':
			points = append(points,
				applyPoint(cur, args[0], args[1], rel),
				applyPoint(cur, args[2], args[3], rel))
			cur = applyPoint(cur, args[4], args[5], rel)
			points = append(points, cur)
		case 'S', 's', 'Q', 'q':
			points = append(points, applyPoint(cur, args[0], args[1], rel))
			cur = applyPoint(cur, args[2], args[3], rel)
			points = append(points, cur)
		case 'T', 't':
			cur = applyPoint(cur, args[0], args[1], rel)
			points = append(points, cur)
		case 'A', 'a':
			cur = applyPoint(cur, args[5], args[6], rel)
			points = append(points, cur)
		default:
			return points
		}
	}

	return points
}

// argCount returns the number of numeric arguments one repetition of a
// path command consumes.
func argCount(cmd byte) int {
	switch cmd {
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'H', 'h', 'V', 'v':
		return 1
	case 'C', 'c':
		return 6
	case 'S', 's', 'Q', 'q':
		return 4
	case 'A', 'a':
		return 7
	default:
		return 0
	}
}

// applyPoint resolves a coordinate pair against the current position
// for relative commands.
func applyPoint(cur model.Point, x, y float64, rel bool) model.Point {
	if rel {
		return model.Point{X: cur.X + x, Y: cur.Y + y}
	}
	return model.Point{X: x, Y: y}
}

// scanNumbers reads count numbers from d starting at i, returning the
// values and the index after the last one. On malformed input it
// returns the original index.
func scanNumbers(d string, i, count int) ([7]float64, int) {
	var out [7]float64
	if count == 0 {
		return out, i
	}

	pos := i
	for n := 0; n < count; n++ {
		for pos < len(d) && (d[pos] == ' ' || d[pos] == ',' || d[pos] == '\t' || d[pos] == '\n' || d[pos] == '\r') {
			pos++
		}
		startNum := pos
		if pos < len(d) && (d[pos] == '-' || d[pos] == '+') {
			pos++
		}
		for pos < len(d) && (d[pos] >= '0' && d[pos] <= '9' || d[pos] == '.') {
			pos++
		}
		if pos < len(d) && (d[pos] == 'e' || d[pos] == 'E') {
			pos++
			if pos < len(d) && (d[pos] == '-' || d[pos] == '+') {
				pos++
			}
			for pos < len(d) && d[pos] >= '0' && d[pos] <= '9' {
				pos++
			}
		}
		if startNum == pos {
			return out, i
		}
		v, err := strconv.ParseFloat(d[startNum:pos], 64)
		if err != nil {
			return out, i
		}
		out[n] = v
	}
	return out, pos
}

// listPoints parses a polyline or polygon points attribute.
func listPoints(s string) []model.Point {
	nums := parseNumbers(s)
	points := make([]model.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		points = append(points, model.Point{X: nums[i], Y: nums[i+1]})
	}
	return points
}

// parseNumbers splits a whitespace- or comma-separated number list.
func parseNumbers(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		nums = append(nums, v)
	}
	return nums
}

// parseColor parses an SVG color attribute into RGB components in the
// 0 to 1 range. Absent colors and "none" yield nil.
func parseColor(s string) *model.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return nil
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		nums := parseNumbers(s[4 : len(s)-1])
		if len(nums) != 3 {
			return nil
		}
		return &model.Color{R: nums[0] / 255, G: nums[1] / 255, B: nums[2] / 255}
	}

	if !strings.HasPrefix(s, "#") {
		// Named colors MuPDF actually emits.
		switch s {
		case "black":
			return &model.Color{}
		case "white":
			return &model.Color{R: 1, G: 1, B: 1}
		}
		return nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil
	}
	return &model.Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// xmlAttr returns the value of the named attribute on an element, or
// "".
func xmlAttr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
