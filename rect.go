package xspline

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// NewRectFromPoints returns the smallest rectangle containing both points.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// Abs returns a new rectangle with the same extents, but with X0 <= X1 and
// Y0 <= Y1.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Diagonal returns the length of the rectangle's diagonal.
func (r Rect) Diagonal() float64 {
	return math.Hypot(r.Width(), r.Height())
}

// UnionPoint returns the smallest rectangle containing r and pt.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}.Abs()
}

// boundingBoxOf returns the smallest rectangle enclosing all points, or the
// zero rectangle if there are none.
func boundingBoxOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := NewRectFromPoints(pts[0], pts[0])
	for _, pt := range pts[1:] {
		r = r.UnionPoint(pt)
	}
	return r
}
