package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle in corner form. (X0, Y0) is
// the top-left corner and (X1, Y1) the bottom-right corner, with y
// increasing down the page. Callers constructing a Rect from arbitrary
// coordinates should use NewRect or Normalized to establish the
// X0 <= X1, Y0 <= Y1 invariant.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect creates a normalized rectangle from two corner points.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}.Normalized()
}

// Normalized returns the rectangle with corners reordered so that
// X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalized() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{
		X: (r.X0 + r.X1) / 2,
		Y: (r.Y0 + r.Y1) / 2,
	}
}

// CenterY returns the vertical center coordinate.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Expand grows the rectangle outward by a margin on all four sides.
// A negative margin shrinks it.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X0: r.X0 - margin,
		Y0: r.Y0 - margin,
		X1: r.X1 + margin,
		Y1: r.Y1 + margin,
	}
}

// Overlaps reports whether the two rectangles' closed intervals overlap
// on both axes. Touching edges count as overlap.
func (r Rect) Overlaps(other Rect) bool {
	return !(r.X1 < other.X0 || other.X1 < r.X0 ||
		r.Y1 < other.Y0 || other.Y1 < r.Y0)
}

// IsDegenerate reports whether the rectangle has non-positive width or
// height.
func (r Rect) IsDegenerate() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Matrix represents a 2D affine transformation matrix in the order
// [a b c d e f], transforming (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply composes two matrices: transforming by m.Multiply(other) is
// equivalent to transforming by m first, then by other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}
