package xspline_test

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"honnef.co/go/xspline"
)

func ExampleXSpline() {
	var xs xspline.XSpline
	xs.AppendControlPoint(xspline.Pt(0, 0), 0)
	xs.AppendControlPoint(xspline.Pt(40, 80), 0)
	// Make the curve pass through this point.
	xs.AppendControlPoint(xspline.Pt(90, -30), -1)
	xs.AppendControlPoint(xspline.Pt(140, 60), 0)
	xs.AppendControlPoint(xspline.Pt(200, 10), 0)

	fmt.Println("segments:", xs.NumSegments())
	for _, t := range []float64{0, 1, 2} {
		pt := xs.Eval(t)
		fmt.Printf("t=%g: (%.1f, %.1f)\n", t, pt.X, pt.Y)
	}
	// Output:
	// segments: 2
	// t=0: (0.0, 0.0)
	// t=1: (90.0, -30.0)
	// t=2: (200.0, 10.0)
}

func ExampleXSpline_ToPolyline() {
	var xs xspline.XSpline
	for i := range 4 {
		xs.AppendControlPoint(xspline.Pt(float64(i), 0), 0)
	}
	// A straight curve needs no intermediate points.
	for _, pt := range xs.ToPolyline(xspline.DefaultAccuracy) {
		fmt.Printf("(%.2f, %.2f)\n", pt.X, pt.Y)
	}
	// Output:
	// (0.00, 0.00)
	// (3.00, 0.00)
}

func ExampleXSpline_PointClosestTo() {
	var xs xspline.XSpline
	for i := range 4 {
		xs.AppendControlPoint(xspline.Pt(float64(i), 0), 0)
	}
	pt, t := xs.PointClosestTo(xspline.Pt(1.5, 2), 1e-6)
	fmt.Printf("(%.2f, %.2f) at t=%.2f\n", pt.X, pt.Y, t)
	// Output:
	// (1.50, 0.00) at t=0.50
}

func ExampleXSpline_Fit() {
	var target xspline.XSpline
	for _, pt := range []xspline.Point{xspline.Pt(0, 0), xspline.Pt(40, 80), xspline.Pt(90, -30), xspline.Pt(140, 60), xspline.Pt(200, 10)} {
		target.AppendControlPoint(pt, 0)
	}
	n := float64(target.NumSegments())
	samples := make([]xspline.Point, 30)
	for i := range samples {
		samples[i] = target.Eval(n * float64(i) / float64(len(samples)-1))
	}

	// Start from a rough guess, keeping the first point where it is.
	var xs xspline.XSpline
	for _, pt := range []xspline.Point{xspline.Pt(0, 0), xspline.Pt(30, 60), xspline.Pt(100, -10), xspline.Pt(150, 40), xspline.Pt(190, 20)} {
		xs.AppendControlPoint(pt, 0)
	}
	fixed := bitset.New(5).Set(0)
	res := xs.Fit(samples, fixed)

	fmt.Println("converged:", res.Converged)
	for _, cp := range xs.ControlPoints() {
		fmt.Printf("(%.3f, %.3f)\n", cp.Pos.X, cp.Pos.Y)
	}
	// Output:
	// converged: true
	// (0.000, 0.000)
	// (40.000, 80.000)
	// (90.000, -30.000)
	// (140.000, 60.000)
	// (200.000, 10.000)
}
