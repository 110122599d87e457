package xspline

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestPointClosestTo(t *testing.T) {
	xs := wavySpline()
	const gridSize = 20000
	n := float64(xs.NumSegments())
	targets := []Point{
		Pt(100, 100),
		Pt(150, 0),
		Pt(-20, 5),
		Pt(320, 30),
		Pt(60, 20),
		Pt(250, 50),
	}
	for _, to := range targets {
		pt, tt := xs.PointClosestTo(to, DefaultAccuracy)
		if got := xs.Eval(tt); got != pt {
			t.Errorf("PointClosestTo(%v) = %v at t=%g, but Eval(%g) = %v", to, pt, tt, tt, got)
		}
		d := pt.Distance(to)
		for i := range gridSize + 1 {
			gt := n * float64(i) / gridSize
			if gd := xs.Eval(gt).Distance(to); gd < d-1e-6 {
				t.Errorf("PointClosestTo(%v) = %v at distance %g, but t=%g is at distance %g", to, pt, d, gt, gd)
				break
			}
		}
	}
}

func TestPointClosestToRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	const gridSize = 4000
	for i := range 30 {
		var xs XSpline
		for range 4 + rng.IntN(5) {
			xs.AppendControlPoint(Pt(300*rng.Float64(), 300*rng.Float64()), -8+12*rng.Float64())
		}
		n := float64(xs.NumSegments())
		for range 10 {
			to := Pt(-50+400*rng.Float64(), -50+400*rng.Float64())
			pt, _ := xs.PointClosestTo(to, DefaultAccuracy)
			d := pt.Distance(to)
			best := math.Inf(1)
			for j := range gridSize + 1 {
				best = min(best, xs.Eval(n*float64(j)/gridSize).Distance(to))
			}
			if d > best+DefaultAccuracy {
				t.Errorf("curve %d: PointClosestTo(%v) = %v at distance %g, but the curve comes within %g", i, to, pt, d, best)
			}
		}
	}
}

func TestPointClosestToEndpoints(t *testing.T) {
	xs := wavySpline()
	pt, tt := xs.PointClosestTo(Pt(-20, 5), DefaultAccuracy)
	if tt != 0 {
		t.Errorf("got t=%g, want 0", tt)
	}
	diff(t, Pt(0, 0), pt, approx(1e-9))

	pt, tt = xs.PointClosestTo(Pt(320, 30), DefaultAccuracy)
	if tt != float64(xs.NumSegments()) {
		t.Errorf("got t=%g, want %d", tt, xs.NumSegments())
	}
	diff(t, Pt(300, 40), pt, approx(1e-9))
}

func TestPointClosestToOnCurve(t *testing.T) {
	xs := wavySpline()
	xs.SetControlPointWeight(4, -2)
	for _, tt := range []float64{0.3, 1.7, 2.5, 3.9} {
		on := xs.Eval(tt)
		pt, _ := xs.PointClosestTo(on, DefaultAccuracy)
		if d := pt.Distance(on); d > 1e-3 {
			t.Errorf("point %v on the curve resolved to %v, %g away", on, pt, d)
		}
	}
}

func TestPointClosestToStraight(t *testing.T) {
	xs := newSpline(0, Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0))
	pt, _ := xs.PointClosestTo(Pt(1.5, 2), 0)
	if math.Abs(pt.X-1.5) > 1e-6 || pt.Y != 0 {
		t.Errorf("got %v, want (1.5, 0)", pt)
	}
}

func TestPointClosestToPreconditions(t *testing.T) {
	xs := newSpline(0, Pt(0, 0), Pt(1, 0), Pt(2, 0))
	mustPanic(t, "PointClosestTo with 3 control points", func() { xs.PointClosestTo(Pt(0, 0), DefaultAccuracy) })
}
