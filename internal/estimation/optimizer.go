package estimation

import "math"

// Nelder-Mead simplex coefficients, fixed per the standard downhill
// simplex algorithm: reflect, expand, contract, shrink.
const (
	reflectCoef = 1.0
	expandCoef  = 2.0
	contractCoef = 0.5
	shrinkCoef  = 0.5
)

// DefaultFTol and DefaultXTol are the joint convergence tolerances: the
// simplex is considered converged once the spread of objective values
// across its vertices is below ftol AND the maximum coordinate distance
// from the best vertex is below xtol.
const (
	DefaultFTol     = 1e-6
	DefaultXTol     = 1e-6
	DefaultMaxIter  = 2000
	DefaultRestarts = 3
)

// Objective is a scalar function of a parameter vector to minimize.
type Objective func(x []float64) float64

// OptimizeResult carries the outcome of a single Nelder-Mead run.
type OptimizeResult struct {
	X          []float64
	Value      float64
	Iterations int
	Converged  bool
}

// simplexVertex pairs a point with its objective value.
type simplexVertex struct {
	x []float64
	f float64
}

// NelderMead minimizes objective starting from x0 using the standard
// downhill simplex method. The initial simplex places vertex 0 at x0;
// vertex i>0 perturbs coordinate i by max(0.05*|x0[i]|, 0.00025).
func NelderMead(objective Objective, x0 []float64, ftol, xtol float64, maxIter int) OptimizeResult {
	n := len(x0)
	if n == 0 {
		return OptimizeResult{X: []float64{}, Value: objective(x0), Iterations: 0, Converged: true}
	}

	simplex := make([]simplexVertex, n+1)
	simplex[0] = simplexVertex{x: append([]float64(nil), x0...), f: objective(x0)}
	for i := 0; i < n; i++ {
		x := append([]float64(nil), x0...)
		step := 0.05 * math.Abs(x0[i])
		if step < 0.00025 {
			step = 0.00025
		}
		x[i] += step
		simplex[i+1] = simplexVertex{x: x, f: objective(x)}
	}

	iter := 0
	for ; iter < maxIter; iter++ {
		sortSimplex(simplex)

		if hasConverged(simplex, ftol, xtol) {
			return OptimizeResult{X: simplex[0].x, Value: simplex[0].f, Iterations: iter, Converged: true}
		}

		worst := simplex[n]
		centroid := computeCentroid(simplex[:n])

		// Reflect.
		reflected := reflectPoint(centroid, worst.x, reflectCoef)
		fReflected := objective(reflected)

		switch {
		case fReflected < simplex[0].f:
			// Expand.
			expanded := reflectPoint(centroid, worst.x, reflectCoef*expandCoef)
			fExpanded := objective(expanded)
			if fExpanded < fReflected {
				simplex[n] = simplexVertex{x: expanded, f: fExpanded}
			} else {
				simplex[n] = simplexVertex{x: reflected, f: fReflected}
			}
		case fReflected < simplex[n-1].f:
			simplex[n] = simplexVertex{x: reflected, f: fReflected}
		default:
			// Contract.
			var contracted []float64
			var fContracted float64
			if fReflected < worst.f {
				contracted = reflectPoint(centroid, worst.x, -contractCoef)
				fContracted = objective(contracted)
				if fContracted <= fReflected {
					simplex[n] = simplexVertex{x: contracted, f: fContracted}
					continue
				}
			} else {
				contracted = reflectPoint(centroid, worst.x, contractCoef)
				fContracted = objective(contracted)
				if fContracted < worst.f {
					simplex[n] = simplexVertex{x: contracted, f: fContracted}
					continue
				}
			}
			// Shrink toward the best vertex.
			best := simplex[0].x
			for i := 1; i <= n; i++ {
				for j := range simplex[i].x {
					simplex[i].x[j] = best[j] + shrinkCoef*(simplex[i].x[j]-best[j])
				}
				simplex[i].f = objective(simplex[i].x)
			}
		}
	}

	sortSimplex(simplex)
	return OptimizeResult{X: simplex[0].x, Value: simplex[0].f, Iterations: iter, Converged: false}
}

// reflectPoint computes centroid + coef*(centroid - worst).
func reflectPoint(centroid, worst []float64, coef float64) []float64 {
	out := make([]float64, len(centroid))
	for i := range out {
		out[i] = centroid[i] + coef*(centroid[i]-worst[i])
	}
	return out
}

func computeCentroid(vertices []simplexVertex) []float64 {
	n := len(vertices[0].x)
	centroid := make([]float64, n)
	for _, v := range vertices {
		for i, xi := range v.x {
			centroid[i] += xi
		}
	}
	for i := range centroid {
		centroid[i] /= float64(len(vertices))
	}
	return centroid
}

func sortSimplex(simplex []simplexVertex) {
	// Small n (order of a handful of ARIMA-GARCH parameters): insertion
	// sort is simpler than pulling in sort.Slice's closures per call.
	for i := 1; i < len(simplex); i++ {
		v := simplex[i]
		j := i - 1
		for j >= 0 && simplex[j].f > v.f {
			simplex[j+1] = simplex[j]
			j--
		}
		simplex[j+1] = v
	}
}

func hasConverged(simplex []simplexVertex, ftol, xtol float64) bool {
	fMin, fMax := simplex[0].f, simplex[0].f
	for _, v := range simplex {
		if v.f < fMin {
			fMin = v.f
		}
		if v.f > fMax {
			fMax = v.f
		}
	}
	if fMax-fMin >= ftol {
		return false
	}

	best := simplex[0].x
	var maxDist float64
	for _, v := range simplex[1:] {
		for i := range v.x {
			d := math.Abs(v.x[i] - best[i])
			if d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist < xtol
}
