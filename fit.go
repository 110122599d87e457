package xspline

import (
	"fmt"
	"log/slog"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/mat"
)

// Correspondence selects how samples are matched with curve parameters
// during fitting.
type Correspondence int

const (
	// UniformSpacing assigns sample i of m the parameter
	// NumSegments()·i/(m−1). The samples are expected to be ordered along the
	// curve and roughly evenly spaced in parameter.
	UniformSpacing Correspondence = iota
	// NearestPoint assigns each sample the parameter of the closest point on
	// the current curve, re-projecting at every iteration.
	NearestPoint
)

func (c Correspondence) String() string {
	switch c {
	case UniformSpacing:
		return "UniformSpacing"
	case NearestPoint:
		return "NearestPoint"
	default:
		return fmt.Sprintf("Correspondence(%d)", int(c))
	}
}

// FitOptions specifies optional settings for [XSpline.FitWithOptions]. Zero
// values select the defaults.
type FitOptions struct {
	// The maximum number of Levenberg–Marquardt iterations. Defaults to 50.
	MaxIterations int
	// Fitting stops once an iteration improves the residual by less than this
	// fraction. Defaults to 1e-12.
	Tolerance float64
	// How samples are matched with curve parameters. Defaults to
	// UniformSpacing.
	Correspondence Correspondence
	// The accuracy used to project samples onto the curve when
	// Correspondence is NearestPoint. Defaults to DefaultAccuracy.
	Accuracy float64
	// The initial damping factor. Defaults to 1e-3.
	Lambda float64
}

func (opts FitOptions) withDefaults() FitOptions {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 50
	}
	if !(opts.Tolerance > 0) {
		opts.Tolerance = 1e-12
	}
	if !(opts.Accuracy > 0) {
		opts.Accuracy = DefaultAccuracy
	}
	if !(opts.Lambda > 0) {
		opts.Lambda = 1e-3
	}
	return opts
}

// FitResult describes the outcome of a fit. Residuals are sums of squared
// distances between samples and their corresponding curve points.
type FitResult struct {
	Iterations      int
	InitialResidual float64
	Residual        float64
	// Converged reports whether fitting stopped because the residual stopped
	// improving, as opposed to running out of iterations or hitting a
	// singular system.
	Converged bool
}

const (
	// maxLambda is the damping at which a fit gives up on finding a
	// descending step.
	maxLambda = 1e16
	// maxCondition is the largest condition number accepted for the damped
	// normal equations.
	maxCondition = 1e14
)

// Fit is like [XSpline.FitWithOptions] with default options.
func (xs *XSpline) Fit(samples []Point, fixed *bitset.BitSet) FitResult {
	return xs.FitWithOptions(samples, fixed, FitOptions{})
}

// FitWithOptions moves the control points so that the curve passes as close
// as possible to samples, in the least-squares sense.
//
// Control points whose bit is set in fixed are held in place; a nil fixed
// leaves all points free. Bits past the last control point are ignored.
// Weights are never changed.
//
// Fitting is best-effort. If the problem is degenerate, for example because
// there are fewer samples than free control points, the control points are
// left at the best estimate found. Callers that care about the quality of
// the fit should inspect the returned residual.
//
// FitWithOptions panics if the curve has fewer than four control points.
func (xs *XSpline) FitWithOptions(samples []Point, fixed *bitset.BitSet, opts FitOptions) FitResult {
	if xs.NumSegments() == 0 {
		panic(fmt.Sprintf("xspline: fitting a curve with %d control points, need at least 4", len(xs.pts)))
	}
	opts = opts.withDefaults()
	log := Logger()

	f := newFitter(xs, samples, fixed)
	f.assign(opts)
	cost := f.cost(xs.pts)
	res := FitResult{InitialResidual: cost, Residual: cost}
	if len(samples) == 0 || len(f.free) == 0 {
		res.Converged = true
		return res
	}

	extent := boundingBoxOf(samples).Diagonal()
	extent = max(extent, xs.ControlBox().Diagonal())
	negligible := float64(len(samples)) * (1e-12 * extent) * (1e-12 * extent)

	lambda := opts.Lambda
	for res.Iterations < opts.MaxIterations {
		if cost <= negligible {
			res.Converged = true
			break
		}
		res.Iterations++

		trial, trialCost, ok := f.step(cost, &lambda)
		if !ok {
			log.Warn("xspline: fit stopped on a singular system",
				slog.Int("iteration", res.Iterations),
				slog.Float64("residual", cost))
			break
		}
		improvement := (cost - trialCost) / cost
		copy(xs.pts, trial)
		cost = trialCost
		log.Debug("xspline: fit iteration",
			slog.Int("iteration", res.Iterations),
			slog.Float64("residual", cost),
			slog.Float64("lambda", lambda))

		if opts.Correspondence == NearestPoint {
			f.assign(opts)
			cost = f.cost(xs.pts)
		}
		if improvement < opts.Tolerance {
			res.Converged = true
			break
		}
	}
	res.Residual = cost
	return res
}

// basisRow is the row of the basis matrix belonging to one sample.
type basisRow struct {
	first  int
	coeffs [4]float64
}

type fitter struct {
	xs      *XSpline
	samples []Point
	// free lists the indices of the control points being optimized.
	free []int
	// column maps control point indices to columns of the system, or -1 for
	// fixed points.
	column []int
	rows   []basisRow
}

func newFitter(xs *XSpline, samples []Point, fixed *bitset.BitSet) *fitter {
	f := &fitter{
		xs:      xs,
		samples: samples,
		column:  make([]int, len(xs.pts)),
		rows:    make([]basisRow, len(samples)),
	}
	for i := range xs.pts {
		if fixed != nil && fixed.Test(uint(i)) {
			f.column[i] = -1
			continue
		}
		f.column[i] = len(f.free)
		f.free = append(f.free, i)
	}
	return f
}

// assign matches samples with curve parameters and records their basis rows.
func (f *fitter) assign(opts FitOptions) {
	xs := f.xs
	n := float64(xs.NumSegments())
	switch opts.Correspondence {
	case NearestPoint:
		accuracy := sanitizeAccuracy(opts.Accuracy)
		verts := xs.flatten(accuracy)
		for i, s := range f.samples {
			v := xs.closestOnPolyline(verts, s, accuracy)
			f.rows[i].first, f.rows[i].coeffs = xs.basis(v.t)
		}
	default:
		m := len(f.samples)
		for i := range f.samples {
			var t float64
			if m > 1 {
				t = min(n*float64(i)/float64(m-1), n)
			}
			f.rows[i].first, f.rows[i].coeffs = xs.basis(t)
		}
	}
}

func (f *fitter) residual(pts []ControlPoint, i int) Vec2 {
	row := &f.rows[i]
	var x, y float64
	for j, c := range row.coeffs {
		pos := pts[row.first+j].Pos
		x += c * pos.X
		y += c * pos.Y
	}
	return Vec(x-f.samples[i].X, y-f.samples[i].Y)
}

func (f *fitter) cost(pts []ControlPoint) float64 {
	var sum float64
	for i := range f.samples {
		sum += f.residual(pts, i).Hypot2()
	}
	return sum
}

// step performs one Levenberg–Marquardt step. It returns the new control
// points and their cost, or false if no damping produced a descending step.
// lambda is updated in place.
func (f *fitter) step(cost float64, lambda *float64) ([]ControlPoint, float64, bool) {
	nf := len(f.free)
	jtj := mat.NewSymDense(nf, nil)
	gx := mat.NewVecDense(nf, nil)
	gy := mat.NewVecDense(nf, nil)
	for i, row := range f.rows {
		r := f.residual(f.xs.pts, i)
		for a, ca := range row.coeffs {
			colA := f.column[row.first+a]
			if colA < 0 || ca == 0 {
				continue
			}
			gx.SetVec(colA, gx.AtVec(colA)-ca*r.X)
			gy.SetVec(colA, gy.AtVec(colA)-ca*r.Y)
			for b, cb := range row.coeffs {
				colB := f.column[row.first+b]
				if colB < colA || cb == 0 {
					continue
				}
				jtj.SetSym(colA, colB, jtj.At(colA, colB)+ca*cb)
			}
		}
	}

	var maxDiag float64
	for j := range nf {
		maxDiag = max(maxDiag, jtj.At(j, j))
	}
	floor := 1e-12 * maxDiag
	if floor == 0 {
		floor = 1
	}

	damped := mat.NewSymDense(nf, nil)
	dx := mat.NewVecDense(nf, nil)
	dy := mat.NewVecDense(nf, nil)
	trial := make([]ControlPoint, len(f.xs.pts))
	for ; *lambda <= maxLambda; *lambda *= 10 {
		damped.CopySym(jtj)
		for j := range nf {
			d := jtj.At(j, j)
			damped.SetSym(j, j, d+*lambda*max(d, floor))
		}
		var chol mat.Cholesky
		if !chol.Factorize(damped) || chol.Cond() > maxCondition {
			continue
		}
		if err := chol.SolveVecTo(dx, gx); err != nil {
			continue
		}
		if err := chol.SolveVecTo(dy, gy); err != nil {
			continue
		}

		copy(trial, f.xs.pts)
		for j, idx := range f.free {
			trial[idx].Pos = trial[idx].Pos.Translate(Vec(dx.AtVec(j), dy.AtVec(j)))
		}
		if trialCost := f.cost(trial); trialCost < cost {
			*lambda = max(*lambda/10, 1e-12)
			return trial, trialCost, true
		}
	}
	return nil, 0, false
}
