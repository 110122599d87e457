// Package xspline implements open, uniform X-Splines: smooth curves defined
// by an ordered sequence of weighted control points. It was designed for
// interactive editing of curves, such as adjusting a page margin or a text
// baseline, but is general enough for other uses.
//
// # Curves and control points
//
// An [XSpline] with n ≥ 4 control points consists of n−3 segments. Each
// segment is shaped by four consecutive control points, and the curve starts
// at the first control point and ends at the last one. The curve is
// evaluated with a global parameter t ∈ [0, n−3], with segment k spanning
// [k, k+1] (see [XSpline.Eval] and [XSpline.EvalSegment]).
//
// Every control point carries a weight that controls the curve's shape near
// the point:
//
//   - A weight of 0 gives a smooth, B-spline-like curve that approximates the
//     point.
//   - Positive weights reduce the point's influence, pulling the curve
//     toward the straight line connecting its neighbors.
//   - Weights between −1 and 0 pull the curve toward the point, until at −1
//     it passes through the point.
//   - Weights below −1 keep the curve passing through the point while
//     rounding it out; strongly negative weights make the curve loop around
//     the point.
//
// Control points are addressed by index. Indices are positional: inserting
// or erasing a point shifts the indices of the points after it.
// [XSpline.Generation] changes whenever that happens.
//
// # Features
//
//   - Flattening curves to polylines with bounded error (see [XSpline.ToPolyline])
//   - Finding the point on a curve closest to a given point (see [XSpline.PointClosestTo])
//   - Least-squares fitting of a curve to sample points, with optional fixed
//     control points (see [XSpline.Fit])
//
// # Errors
//
// Invalid indices, parameters outside of the curve's domain and evaluating
// curves with fewer than four control points are programming errors and
// cause panics. Numerically degenerate input, such as coincident control
// points or collinear samples, is handled gracefully.
//
// # Logging
//
// The package doesn't log by default. Use [SetLogger] to observe fitting
// progress and other diagnostics.
//
// # Literature
//
//   - [X-Splines: A Spline Model Designed for the End-User] by Blanc and Schlick
//   - [Methods for Non-Linear Least Squares Problems] by Madsen, Nielsen and Tingleff
//
// [X-Splines: A Spline Model Designed for the End-User]: https://dl.acm.org/doi/10.1145/218380.218488
// [Methods for Non-Linear Least Squares Problems]: https://www2.imm.dtu.dk/pubdb/pubs/3215-full.html
package xspline
