package xspline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats with an absolute tolerance.
func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

// mustPanic fails the test if fn doesn't panic.
func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Errorf("%s didn't panic", name)
		}
	}()
	fn()
}

// newSpline builds a spline from positions, all with the given weight.
func newSpline(weight float64, pts ...Point) *XSpline {
	var xs XSpline
	for _, pt := range pts {
		xs.AppendControlPoint(pt, weight)
	}
	return &xs
}

// wavySpline returns a curve whose segments are all visibly bent.
func wavySpline() *XSpline {
	return newSpline(0,
		Pt(0, 0),
		Pt(40, 80),
		Pt(90, -30),
		Pt(140, 60),
		Pt(200, 10),
		Pt(230, 90),
		Pt(300, 40),
	)
}
