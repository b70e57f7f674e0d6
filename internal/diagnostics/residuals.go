package diagnostics

import (
	"fmt"
	"math"

	"arimagarch/internal/models"
	"arimagarch/internal/models/composite"
)

// ResidualSeries holds the three series a fitted ARIMA-GARCH model
// produces when filtering observations: raw residuals (innovations),
// conditional variances, and standardized residuals. For a correctly
// specified model the standardized residuals should be approximately
// i.i.d. N(0,1), which is what the Ljung-Box and Jarque-Bera tests in
// this package check.
type ResidualSeries struct {
	Eps    []float64 // raw residuals, eps_t = y_t - mu_t
	H      []float64 // conditional variances
	StdEps []float64 // standardized residuals, eps_t / sqrt(h_t)
}

// ComputeResiduals filters data through a fresh model built from spec and
// params, one observation at a time, collecting the resulting residual
// series. It fails fast on a non-positive conditional variance or any
// non-finite intermediate value.
func ComputeResiduals(spec models.ArimaGarchSpec, params composite.Parameters, data []float64) (ResidualSeries, error) {
	if len(data) == 0 {
		return ResidualSeries{}, fmt.Errorf("diagnostics: data size must be greater than 0")
	}

	model, err := composite.New(spec, params)
	if err != nil {
		return ResidualSeries{}, err
	}

	result := ResidualSeries{
		Eps:    make([]float64, len(data)),
		H:      make([]float64, len(data)),
		StdEps: make([]float64, len(data)),
	}

	for t, yt := range data {
		output := model.Update(yt)
		epsT := yt - output.Mean
		hT := output.Variance

		if hT <= 0 {
			return ResidualSeries{}, fmt.Errorf("diagnostics: invalid conditional variance h_t <= 0 at t=%d", t)
		}
		stdEpsT := epsT / math.Sqrt(hT)

		if !isFinite(epsT) || !isFinite(hT) || !isFinite(stdEpsT) {
			return ResidualSeries{}, fmt.Errorf("diagnostics: non-finite value detected in residual computation at t=%d", t)
		}

		result.Eps[t] = epsT
		result.H[t] = hT
		result.StdEps[t] = stdEpsT
	}

	return result, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
