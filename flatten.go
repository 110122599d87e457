package xspline

import (
	"log/slog"
	"math"
)

const (
	// minAccuracy is the floor applied to non-positive accuracies.
	minAccuracy = 1e-9
	// minFlattenStep is the smallest parameter interval that gets subdivided.
	minFlattenStep = 1.0 / (1 << 30)
)

// vertex is a point on the curve together with its global parameter.
type vertex struct {
	t  float64
	pt Point
}

// ToPolyline approximates the curve with a polyline.
//
// No point of the curve deviates by more than accuracy from the line
// through the two polyline points that enclose it. The deviation is
// estimated from samples, so features much narrower than the spacing of
// those samples, such as a cusp, can still be cut short.
//
// The points are ordered by increasing parameter and include the curve's
// start and end points. The result is empty if the curve has fewer than four
// control points.
//
// Non-positive accuracies are replaced by a tiny positive one.
func (xs *XSpline) ToPolyline(accuracy float64) []Point {
	verts := xs.flatten(accuracy)
	if len(verts) == 0 {
		return nil
	}
	out := make([]Point, len(verts))
	for i, v := range verts {
		out[i] = v.pt
	}
	return out
}

func sanitizeAccuracy(accuracy float64) float64 {
	if !(accuracy >= minAccuracy) {
		// Also catches NaN.
		return minAccuracy
	}
	return accuracy
}

// flatten implements ToPolyline, additionally reporting the parameter of each
// point.
func (xs *XSpline) flatten(accuracy float64) []vertex {
	n := xs.NumSegments()
	if n == 0 {
		return nil
	}
	accuracy = sanitizeAccuracy(accuracy)

	type interval struct {
		a, b vertex
	}

	out := []vertex{{0, xs.evalSegment(0, 0)}}
	var stack []interval
	var truncated int
	for seg := range n {
		t0 := float64(seg)
		t1 := float64(seg + 1)
		stack = append(stack[:0], interval{
			vertex{t0, xs.evalSegment(seg, 0)},
			vertex{t1, xs.evalSegment(seg, 1)},
		})
		for len(stack) > 0 {
			iv := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			dt := iv.b.t - iv.a.t
			if dt <= minFlattenStep {
				truncated++
				out = append(out, iv.b)
				continue
			}
			if !xs.chordExceeds(seg, t0, iv.a, iv.b, accuracy) {
				out = append(out, iv.b)
				continue
			}
			midT := iv.a.t + 0.5*dt
			mid := vertex{midT, xs.evalSegment(seg, midT-t0)}
			// Push the right half first so the left half is emitted first.
			stack = append(stack, interval{mid, iv.b}, interval{iv.a, mid})
		}
	}
	if truncated > 0 {
		Logger().Debug("xspline: flattening reached the minimum step",
			slog.Int("intervals", truncated),
			slog.Float64("accuracy", accuracy))
	}
	return out
}

// flattenProbes is the number of intervals a span is divided into when
// measuring its deviation from the chord.
const flattenProbes = 8

// chordExceeds reports whether the curve between a and b may stray from the
// chord a–b by more than accuracy.
//
// The deviation is sampled at evenly spaced probes. Between probes it can
// exceed the sampled maximum by about h²/8·|d″|. That term is estimated from
// second differences of the samples and doubled to cover the error of the
// estimate.
func (xs *XSpline) chordExceeds(seg int, t0 float64, a, b vertex, accuracy float64) bool {
	chord := Line{a.pt, b.pt}
	var dev [flattenProbes + 1]float64
	var peak float64
	for i := 1; i < flattenProbes; i++ {
		t := a.t + float64(i)/flattenProbes*(b.t-a.t)
		dev[i] = chord.SignedDistance(xs.evalSegment(seg, t-t0))
		peak = max(peak, math.Abs(dev[i]))
	}
	if peak > accuracy {
		return true
	}
	var bend float64
	for i := 1; i < flattenProbes; i++ {
		bend = max(bend, math.Abs(dev[i-1]-2*dev[i]+dev[i+1]))
	}
	return peak+bend/4 > accuracy
}
