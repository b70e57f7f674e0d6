package estimation

import (
	"math"
	"math/rand"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/garch"
)

// ConstraintPenalty is the large finite value substituted for the
// objective whenever a candidate parameter vector violates a constraint
// or drives the filters into a numerical failure. It is the sole
// mechanism by which infeasible regions are excluded from an otherwise
// unconstrained Nelder-Mead search.
const ConstraintPenalty = 1e10

// PenaltyObjective wraps a Likelihood into an unconstrained Objective:
// GARCH positivity/stationarity violations and filter failures (non-finite
// residuals, non-positive variances) are all mapped to ConstraintPenalty
// rather than propagated.
func PenaltyObjective(spec models.ArimaGarchSpec, likelihood *Likelihood, data []float64) Objective {
	return func(x []float64) float64 {
		arimaParams, garchParams := Unpack(spec, x)
		if !garchParams.IsPositive() || !garchParams.IsStationary() {
			return ConstraintPenalty
		}
		nll, err := likelihood.NegativeLogLikelihood(data, arimaParams, garchParams)
		if err != nil || math.IsNaN(nll) || math.IsInf(nll, 0) {
			return ConstraintPenalty
		}
		return nll
	}
}

// FitResult carries the outcome of a fit: the winning parameters, the
// negative log-likelihood at that point, whether the winning run
// converged, the Nelder-Mead iterations summed over every run, and the
// outcome of every restart that contributed to the search.
type FitResult struct {
	Arima      arima.Parameters
	Garch      garch.Parameters
	NLL        float64
	Converged  bool
	Iterations int
	Restarts   []OptimizeResult
}

// OptimizeWithRestarts runs a Nelder-Mead search from x0, then performs
// `restarts` additional runs, each starting from a Gaussian perturbation
// of the previous best with standard deviation 0.15*max(|x_i|, 0.01). It
// returns every run's result; Fit picks the winner. The perturbation RNG is
// seeded explicitly: the same (seed, x0, objective) triple always
// produces the same sequence of restart points.
func OptimizeWithRestarts(objective Objective, x0 []float64, seed int64, ftol, xtol float64, maxIter, restarts int) []OptimizeResult {
	rng := rand.New(rand.NewSource(seed))

	results := make([]OptimizeResult, 0, restarts+1)
	current := NelderMead(objective, x0, ftol, xtol, maxIter)
	results = append(results, current)

	best := current
	for r := 0; r < restarts; r++ {
		perturbed := perturb(rng, best.X)
		result := NelderMead(objective, perturbed, ftol, xtol, maxIter)
		results = append(results, result)
		if result.Value < best.Value {
			best = result
		}
	}
	return results
}

// perturb draws x + N(0, (0.15*max(|x_i|,0.01))^2) independently per coordinate.
func perturb(rng *rand.Rand, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		scale := 0.15 * math.Max(math.Abs(xi), 0.01)
		out[i] = xi + rng.NormFloat64()*scale
	}
	return out
}

// BestResult returns the restart with the lowest objective value. Ties
// (identical objective values) resolve to the earliest run, keeping
// restart selection deterministic.
func BestResult(results []OptimizeResult) OptimizeResult {
	best := results[0]
	for _, r := range results[1:] {
		if r.Value < best.Value {
			best = r
		}
	}
	return best
}

// Fit runs the full estimation pipeline for spec against data: it builds
// the penalty-wrapped likelihood objective, seeds it from x0, and
// performs the restart schedule, returning the best converged parameters.
// When no run converged, the lowest-objective run is returned with
// Converged false.
func Fit(spec models.ArimaGarchSpec, data []float64, x0 []float64, seed int64) FitResult {
	likelihood := NewLikelihood(spec)
	objective := PenaltyObjective(spec, likelihood, data)

	results := OptimizeWithRestarts(objective, x0, seed, DefaultFTol, DefaultXTol, DefaultMaxIter, DefaultRestarts)
	iterations := 0
	var converged []OptimizeResult
	for _, r := range results {
		iterations += r.Iterations
		if r.Converged {
			converged = append(converged, r)
		}
	}
	best := BestResult(results)
	if len(converged) > 0 {
		best = BestResult(converged)
	}

	arimaParams, garchParams := Unpack(spec, best.X)
	return FitResult{
		Arima:      arimaParams,
		Garch:      garchParams,
		NLL:        best.Value,
		Converged:  best.Converged,
		Iterations: iterations,
		Restarts:   results,
	}
}
