package xspline

import "math"

// The blending functions follow "X-Splines: A Spline Model Designed for the
// End-User" by Blanc and Schlick. Each segment is evaluated over the knots
// t₀ = -1, t₁ = 0, t₂ = 1, t₃ = 2, with the segment itself spanning [t₁, t₂].

// blendKind is the family of blending functions a control point uses.
type blendKind uint8

const (
	// blendApproximating is the B-spline-like shape (s = 1). Positive weights
	// scale the point's influence down, moving the curve toward its
	// neighbors.
	blendApproximating blendKind = iota
	// blendTightening shrinks the approximating shape parameter toward 0,
	// which makes the curve pass through the point.
	blendTightening
	// blendInterpolating passes through the point, with a roundness that
	// grows with the weight's magnitude until the curve loops.
	blendInterpolating
)

func (k blendKind) String() string {
	switch k {
	case blendApproximating:
		return "approximating"
	case blendTightening:
		return "tightening"
	case blendInterpolating:
		return "interpolating"
	default:
		return "unknown"
	}
}

// shape holds the X-Spline parameters derived from a control point's weight.
type shape struct {
	kind blendKind
	// s is the approximating shape parameter in [0, 1].
	s float64
	// q is the interpolating shape parameter, >= 0.
	q float64
	// c scales the point's blending function.
	c float64
}

// shapeOf maps a weight to its blending parameters. The mapping is
// continuous: at weight 0 both the approximating and tightening variants
// yield s = 1, and at weight -1 both tightening and interpolating variants
// yield s = 0, q = 0.
func shapeOf(weight float64) shape {
	switch {
	case weight >= 0:
		return shape{kind: blendApproximating, s: 1, c: 1 / (1 + weight)}
	case weight >= -1:
		return shape{kind: blendTightening, s: 1 + weight, c: 1}
	default:
		return shape{kind: blendInterpolating, q: -(1 + weight) / 2, c: 1}
	}
}

// gBlend is Blanc and Schlick's g function. With q = 0 it reduces to the
// approximating f function.
func gBlend(q, p, u float64) float64 {
	return u * (q + u*(2*q+u*(10-12*q-p+u*(2*p+14*q-15+u*(6-5*q-p)))))
}

// hBlend is Blanc and Schlick's h function. It vanishes for q = 0.
func hBlend(q, u float64) float64 {
	return u * (q + u*(2*q+u*u*(-2*q-u*q)))
}

// segmentBlend computes the four normalized blending coefficients of a
// segment at local parameter t. sh holds the shapes of the segment's four
// neighborhood points. Only the shapes of the two inner points determine the
// knot offsets, while every point's own scale factor applies to its
// coefficient.
func segmentBlend(sh [4]shape, t float64) [4]float64 {
	const (
		t0 = -1.0
		t1 = 0.0
		t2 = 1.0
		t3 = 2.0
	)
	s1, s2 := sh[1].s, sh[2].s
	q1, q2 := sh[1].q, sh[2].q

	t0p := t1 + s1
	t1p := t2 + s2
	t2m := t1 - s1
	t3m := t2 - s2

	p0 := 2 * (t0 - t0p) * (t0 - t0p)
	p1 := 2 * (t1 - t1p) * (t1 - t1p)
	p2 := 2 * (t2 - t2m) * (t2 - t2m)
	p3 := 2 * (t3 - t3m) * (t3 - t3m)

	var a [4]float64
	if u := (t - t0p) / (t0 - t0p); t <= t0p {
		a[0] = gBlend(q1, p0, u)
	} else {
		a[0] = hBlend(q1, u)
	}
	a[1] = gBlend(q2, p1, (t-t1p)/(t1-t1p))
	a[2] = gBlend(q1, p2, (t-t2m)/(t2-t2m))
	if u := (t - t3m) / (t3 - t3m); t >= t3m {
		a[3] = gBlend(q2, p3, u)
	} else {
		a[3] = hBlend(q2, u)
	}

	var sum float64
	for i := range a {
		a[i] *= sh[i].c
		sum += a[i]
	}
	if sum == 0 || math.IsNaN(sum) {
		// Unreachable for finite weights; fall back to the chord between the
		// inner points rather than producing NaNs.
		return [4]float64{0, 1 - t, t, 0}
	}
	for i := range a {
		a[i] /= sum
	}
	return a
}
