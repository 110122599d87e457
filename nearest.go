package xspline

import (
	"fmt"
	"math"
)

// maxNearestIterations bounds the golden-section refinement.
const maxNearestIterations = 100

// PointClosestTo returns the point on the curve closest to to, and its global
// parameter.
//
// The curve is first flattened with the given accuracy to find the region of
// the closest point, which is then refined on the curve itself. Features of
// the curve smaller than accuracy, such as tight loops, may be missed. The
// result is only as exact as the flattening: when the curve passes close to
// to more than once, the returned point may be farther from to than the true
// closest point, by up to accuracy. The returned point always lies on the
// curve: Eval(t) returns it exactly.
//
// PointClosestTo panics if the curve has fewer than four control points.
func (xs *XSpline) PointClosestTo(to Point, accuracy float64) (Point, float64) {
	if xs.NumSegments() == 0 {
		panic(fmt.Sprintf("xspline: evaluating a curve with %d control points, need at least 4", len(xs.pts)))
	}
	accuracy = sanitizeAccuracy(accuracy)
	v := xs.closestOnPolyline(xs.flatten(accuracy), to, accuracy)
	return v.pt, v.t
}

// closestOnPolyline refines the closest point to to, starting from verts, a
// flattening of the curve with the given accuracy.
func (xs *XSpline) closestOnPolyline(verts []vertex, to Point, accuracy float64) vertex {
	var bestEdge option[int]
	var bestEdgeDist float64
	for i := range len(verts) - 1 {
		d, _ := Line{verts[i].pt, verts[i+1].pt}.Nearest(to)
		if !bestEdge.isSet || d < bestEdgeDist {
			bestEdge.set(i)
			bestEdgeDist = d
		}
	}
	i := bestEdge.unwrap()

	var best option[vertex]
	var bestDist float64
	consider := func(v vertex) {
		if d := v.pt.DistanceSquared(to); !best.isSet || d < bestDist {
			best.set(v)
			bestDist = d
		}
	}

	// The closest point can lie on either edge adjacent to the closest edge's
	// vertices, so search the span of up to three edges.
	lo := max(i-1, 0)
	hi := min(i+2, len(verts)-1)
	for _, v := range verts[lo : hi+1] {
		consider(v)
	}

	maxT := float64(xs.NumSegments())
	eval := func(t float64) vertex {
		t = min(max(t, 0), maxT)
		v := vertex{t, xs.Eval(t)}
		consider(v)
		return v
	}
	sqStop := accuracy * 1e-4
	sqStop *= sqStop

	invPhi := (math.Sqrt(5) - 1) / 2
	a, b := verts[lo].t, verts[hi].t
	c := eval(b - invPhi*(b-a))
	d := eval(a + invPhi*(b-a))
	for range maxNearestIterations {
		if c.pt.DistanceSquared(d.pt) <= sqStop || d.t-c.t <= 0 {
			break
		}
		if c.pt.DistanceSquared(to) < d.pt.DistanceSquared(to) {
			b = d.t
			d = c
			c = eval(b - invPhi*(b-a))
		} else {
			a = c.t
			c = d
			d = eval(a + invPhi*(b-a))
		}
	}

	return best.unwrap()
}
