// Package forecasting iterates a fitted ARIMA-GARCH model's conditional
// mean and variance recursions forward beyond the end of the data it was
// fitted on, producing a multi-step-ahead forecast without needing
// future observations: future residuals have expectation zero, and
// future squared residuals are replaced by their expected value, the
// variance forecast itself.
package forecasting

import (
	"fmt"
	"math"

	"arimagarch/internal/models/composite"
)

// minVariance guards the variance forecast against numerical drift
// toward zero or negative values.
const minVariance = 1e-10

// Result holds a multi-step-ahead forecast: one mean and one variance
// per horizon step, 1-indexed by position (index 0 is step 1).
type Result struct {
	MeanForecasts     []float64
	VarianceForecasts []float64
}

// Forecaster iterates a fitted model's windowed state forward to produce
// forecasts beyond the data the model was last updated with. It reads
// the model's current state but never mutates it: each Forecast call
// works against its own copy of the observation/residual/variance
// windows.
type Forecaster struct {
	model *composite.Model
}

// New constructs a forecaster over a fitted model.
func New(model *composite.Model) *Forecaster {
	return &Forecaster{model: model}
}

// Forecast produces mean and variance forecasts for the next `horizon`
// steps, advancing the conditional-mean and conditional-variance
// recursions forward from the model's current windowed state.
func (f *Forecaster) Forecast(horizon int) (Result, error) {
	if horizon <= 0 {
		return Result{}, fmt.Errorf("forecasting: horizon must be positive, got %d", horizon)
	}

	spec := f.model.Spec()
	params := f.model.Params()

	obsHistory := append([]float64(nil), f.model.LastMeanState().ObservationWindow()...)
	resHistory := append([]float64(nil), f.model.LastMeanState().ResidualWindow()...)
	varHistory := append([]float64(nil), f.model.LastVarState().VarianceWindow()...)
	sqResHistory := append([]float64(nil), f.model.LastVarState().SquaredResidualWindow()...)

	result := Result{
		MeanForecasts:     make([]float64, horizon),
		VarianceForecasts: make([]float64, horizon),
	}

	p, q := spec.Arima.P, spec.Arima.Q
	gp, gq := spec.Garch.P, spec.Garch.Q

	for h := 0; h < horizon; h++ {
		meanForecast := forecastMeanOneStep(params.Arima.Intercept, params.Arima.AR, params.Arima.MA, obsHistory, resHistory, p, q)
		result.MeanForecasts[h] = meanForecast

		varForecast := forecastVarianceOneStep(params.Garch.Omega, params.Garch.Alpha, params.Garch.Beta, varHistory, sqResHistory, gp, gq)
		result.VarianceForecasts[h] = varForecast

		if p > 0 {
			copy(obsHistory, obsHistory[1:])
			obsHistory[p-1] = meanForecast
		}
		if q > 0 {
			copy(resHistory, resHistory[1:])
			resHistory[q-1] = 0
		}
		if gp > 0 {
			copy(varHistory, varHistory[1:])
			varHistory[gp-1] = varForecast
		}
		if gq > 0 {
			copy(sqResHistory, sqResHistory[1:])
			sqResHistory[gq-1] = varForecast
		}
	}

	return result, nil
}

func forecastMeanOneStep(intercept float64, ar, ma, obsHistory, resHistory []float64, p, q int) float64 {
	mean := intercept
	for i := 0; i < p; i++ {
		mean += ar[i] * obsHistory[p-1-i]
	}
	for i := 0; i < q; i++ {
		mean += ma[i] * resHistory[q-1-i]
	}
	return mean
}

func forecastVarianceOneStep(omega float64, alpha, beta, varHistory, sqResHistory []float64, p, q int) float64 {
	variance := omega
	for i := 0; i < q; i++ {
		variance += alpha[i] * sqResHistory[q-1-i]
	}
	for i := 0; i < p; i++ {
		variance += beta[i] * varHistory[p-1-i]
	}
	if variance < minVariance || math.IsNaN(variance) {
		variance = minVariance
	}
	return variance
}
