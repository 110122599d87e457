package xspline

import "testing"

func TestRectUnionPoint(t *testing.T) {
	r := NewRectFromPoints(Pt(10, 10), Pt(0, 0))
	diff(t, r, Rect{0, 0, 10, 10})
	r = r.UnionPoint(Pt(-5, 20))
	diff(t, r, Rect{-5, 0, 10, 20})
}

func TestBoundingBoxOf(t *testing.T) {
	diff(t, boundingBoxOf(nil), Rect{})
	got := boundingBoxOf([]Point{Pt(3, 4), Pt(-1, 2), Pt(0, 9)})
	diff(t, got, Rect{-1, 2, 3, 9})
	if d := (Rect{0, 0, 3, 4}).Diagonal(); d != 5 {
		t.Errorf("got diagonal %g, want 5", d)
	}
}
