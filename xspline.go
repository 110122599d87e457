package xspline

import (
	"fmt"
	"math"
)

// DefaultAccuracy is the default value for methods that take an accuracy
// argument, in the same units as the control points' coordinates.
const DefaultAccuracy = 0.2

// ControlPoint is a control point of an [XSpline].
type ControlPoint struct {
	Pos Point
	// Weight is a shape parameter. Zero gives a B-spline-like curve, positive
	// values pull the curve toward the line connecting the neighboring control
	// points, and negative values pull it toward and eventually through the
	// point. Weights below -1 make the curve interpolate the point, and large
	// negative weights make it loop around the point.
	Weight float64
}

// XSpline is an open, uniform X-Spline.
//
// The curve is made of [XSpline.NumSegments] segments, each shaped by four
// consecutive control points. The global parameter t ranges over
// [0, NumSegments()], segment k owning [k, k+1]. The curve starts at the first
// control point and ends at the last one.
//
// Control points are addressed by their position in the sequence. Inserting
// or erasing a control point shifts the indices of all points after it;
// [XSpline.Generation] can be used to detect such changes.
//
// The zero value is an empty spline, ready to use. An XSpline must not be
// mutated concurrently.
type XSpline struct {
	pts []ControlPoint
	gen uint64
}

// NumControlPoints returns the number of control points.
func (xs *XSpline) NumControlPoints() int {
	return len(xs.pts)
}

// NumSegments returns the number of segments, which is three less than the
// number of control points, or zero.
func (xs *XSpline) NumSegments() int {
	return max(0, len(xs.pts)-3)
}

// Generation returns a counter that changes whenever control points are
// inserted, erased or swapped with another spline, that is, whenever
// previously obtained indices may have become stale. Moving a point or
// changing its weight does not change the generation.
func (xs *XSpline) Generation() uint64 {
	return xs.gen
}

// AppendControlPoint adds a control point to the end of the curve.
func (xs *XSpline) AppendControlPoint(pos Point, weight float64) {
	xs.pts = append(xs.pts, ControlPoint{Pos: pos, Weight: weight})
	xs.gen++
}

// InsertControlPoint inserts a control point before the one at idx. idx may
// equal NumControlPoints, in which case this is the same as
// AppendControlPoint.
func (xs *XSpline) InsertControlPoint(idx int, pos Point, weight float64) {
	if idx < 0 || idx > len(xs.pts) {
		panic(fmt.Sprintf("xspline: insertion index %d out of range [0:%d]", idx, len(xs.pts)))
	}
	xs.pts = append(xs.pts, ControlPoint{})
	copy(xs.pts[idx+1:], xs.pts[idx:])
	xs.pts[idx] = ControlPoint{Pos: pos, Weight: weight}
	xs.gen++
}

// EraseControlPoint removes the control point at idx.
func (xs *XSpline) EraseControlPoint(idx int) {
	xs.checkIndex(idx)
	copy(xs.pts[idx:], xs.pts[idx+1:])
	xs.pts[len(xs.pts)-1] = ControlPoint{}
	xs.pts = xs.pts[:len(xs.pts)-1]
	xs.gen++
}

func (xs *XSpline) ControlPointPosition(idx int) Point {
	xs.checkIndex(idx)
	return xs.pts[idx].Pos
}

func (xs *XSpline) ControlPointWeight(idx int) float64 {
	xs.checkIndex(idx)
	return xs.pts[idx].Weight
}

// ControlPoints returns a copy of the control points.
func (xs *XSpline) ControlPoints() []ControlPoint {
	out := make([]ControlPoint, len(xs.pts))
	copy(out, xs.pts)
	return out
}

func (xs *XSpline) MoveControlPoint(idx int, pos Point) {
	xs.checkIndex(idx)
	xs.pts[idx].Pos = pos
}

func (xs *XSpline) SetControlPointWeight(idx int, weight float64) {
	xs.checkIndex(idx)
	xs.pts[idx].Weight = weight
}

// Swap exchanges the control points of two splines.
func (xs *XSpline) Swap(other *XSpline) {
	xs.pts, other.pts = other.pts, xs.pts
	xs.gen++
	other.gen++
}

// ControlBox returns the smallest rectangle containing all control points.
// For weights >= -1 the curve lies inside the convex hull of the control
// points and thus inside this box; smaller weights may overshoot it.
func (xs *XSpline) ControlBox() Rect {
	pts := make([]Point, len(xs.pts))
	for i, cp := range xs.pts {
		pts[i] = cp.Pos
	}
	return boundingBoxOf(pts)
}

func (xs *XSpline) checkIndex(idx int) {
	if idx < 0 || idx >= len(xs.pts) {
		panic(fmt.Sprintf("xspline: control point index %d out of range [0:%d]", idx, len(xs.pts)))
	}
}

// Eval evaluates the curve at the global parameter t, which must lie in
// [0, NumSegments()]. It panics if the curve has fewer than four control
// points.
func (xs *XSpline) Eval(t float64) Point {
	seg, u := xs.locate(t)
	return xs.evalSegment(seg, u)
}

// EvalSegment evaluates segment at the local parameter t ∈ [0, 1]. This is
// equivalent to Eval(segment + t).
func (xs *XSpline) EvalSegment(segment int, t float64) Point {
	n := xs.NumSegments()
	if n == 0 {
		panic(fmt.Sprintf("xspline: evaluating a curve with %d control points, need at least 4", len(xs.pts)))
	}
	if segment < 0 || segment >= n {
		panic(fmt.Sprintf("xspline: segment %d out of range [0:%d]", segment, n))
	}
	if !(t >= 0 && t <= 1) {
		panic(fmt.Sprintf("xspline: segment parameter %g out of range [0, 1]", t))
	}
	return xs.evalSegment(segment, t)
}

func (xs *XSpline) evalSegment(segment int, t float64) Point {
	first, coeffs := xs.segmentBasis(segment, t)
	var x, y float64
	for i, c := range coeffs {
		pos := xs.pts[first+i].Pos
		x += c * pos.X
		y += c * pos.Y
	}
	return Point{X: x, Y: y}
}

// locate maps a global parameter to a segment and a local parameter.
func (xs *XSpline) locate(t float64) (int, float64) {
	n := xs.NumSegments()
	if n == 0 {
		panic(fmt.Sprintf("xspline: evaluating a curve with %d control points, need at least 4", len(xs.pts)))
	}
	if !(t >= 0 && t <= float64(n)) {
		panic(fmt.Sprintf("xspline: parameter %g out of range [0, %d]", t, n))
	}
	seg := min(int(math.Floor(t)), n-1)
	return seg, t - float64(seg)
}

// basis returns the index of the first control point influencing the curve
// at global parameter t, and the coefficients of that point and the three
// following it. The curve's value at t is the coefficient-weighted sum of
// those points' positions.
func (xs *XSpline) basis(t float64) (int, [4]float64) {
	seg, u := xs.locate(t)
	return xs.segmentBasis(seg, u)
}

// segmentBasis is like basis, but for a segment and local parameter.
func (xs *XSpline) segmentBasis(segment int, t float64) (int, [4]float64) {
	n := xs.NumSegments()
	if t == 1 && segment < n-1 {
		// Evaluate shared boundaries from the following segment so that both
		// sides agree exactly.
		segment++
		t = 0
	}

	var sh [4]shape
	for i := range sh {
		sh[i] = shapeOf(xs.pts[segment+i].Weight)
	}
	coeffs := segmentBlend(sh, t)

	// Anchor the open ends to the first and last control points. The
	// correction terms vanish together with their first two derivatives at
	// the other end of the segment.
	if segment == 0 {
		start := segmentBlend(sh, 0)
		f := (1 - t) * (1 - t) * (1 - t)
		start[0] -= 1
		for i := range coeffs {
			coeffs[i] -= f * start[i]
		}
	}
	if segment == n-1 {
		end := segmentBlend(sh, 1)
		f := t * t * t
		end[3] -= 1
		for i := range coeffs {
			coeffs[i] -= f * end[i]
		}
	}
	return segment, coeffs
}
