// Package estimation fits ArimaGarchSpec models to data by maximum
// likelihood: the Gaussian negative log-likelihood composing the ARIMA
// mean filter and GARCH variance filter, a derivative-free Nelder-Mead
// optimizer with penalty-based constraint handling, and ACF/PACF-seeded
// parameter initialization.
package estimation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/garch"
)

// Likelihood evaluates the Gaussian negative log-likelihood of an
// ArimaGarchSpec against a fixed data series.
type Likelihood struct {
	spec        models.ArimaGarchSpec
	arimaFilter *arima.Filter
	garchFilter *garch.Filter
}

// NewLikelihood constructs a likelihood evaluator for spec.
func NewLikelihood(spec models.ArimaGarchSpec) *Likelihood {
	return &Likelihood{
		spec:        spec,
		arimaFilter: arima.NewFilter(spec.Arima.P, spec.Arima.D, spec.Arima.Q),
		garchFilter: garch.NewFilter(spec.Garch.P, spec.Garch.Q),
	}
}

// NegativeLogLikelihood computes NLL = sum(0.5 * (log(h_t) + eps_t^2 / h_t))
// over the ARIMA residuals of data under arimaParams, filtered through the
// GARCH conditional variance recursion under garchParams. It returns an
// error (rather than +Inf) when the filters themselves fail; callers doing
// constrained optimization should treat constraint violations as a
// separate penalty rather than routing through this error path.
func (l *Likelihood) NegativeLogLikelihood(data []float64, arimaParams arima.Parameters, garchParams garch.Parameters) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("likelihood: data must be non-empty")
	}

	residuals, err := l.arimaFilter.ComputeResiduals(data, arimaParams)
	if err != nil {
		return 0, fmt.Errorf("likelihood: %w", err)
	}

	h0 := garch.InitialVariance(residuals, garchParams)
	variances, err := l.garchFilter.ComputeConditionalVariances(residuals, garchParams, h0)
	if err != nil {
		return 0, fmt.Errorf("likelihood: %w", err)
	}

	sqResiduals := make([]float64, len(residuals))
	for i, eps := range residuals {
		sqResiduals[i] = eps * eps
	}

	logVariances := make([]float64, len(variances))
	for i, h := range variances {
		if h <= 0 {
			return 0, fmt.Errorf("likelihood: conditional variance must be positive, got %g at t=%d", h, i)
		}
		logVariances[i] = math.Log(h)
	}

	ratios := make([]float64, len(residuals))
	for i := range ratios {
		ratios[i] = sqResiduals[i] / variances[i]
	}

	nll := 0.5 * (floats.Sum(logVariances) + floats.Sum(ratios))
	if math.IsNaN(nll) || math.IsInf(nll, 0) {
		return 0, fmt.Errorf("likelihood: non-finite negative log-likelihood")
	}
	return nll, nil
}
