package selection

import (
	"fmt"

	"arimagarch/internal/estimation"
	"arimagarch/internal/models"
	"arimagarch/internal/models/composite"
)

// CVConfig configures rolling-origin (walk-forward) cross-validation: an
// initial training window is grown one observation at a time, and each
// step's 1-step-ahead forecast error contributes to the MSE score.
type CVConfig struct {
	MinTrainSize int
	Seed         int64
}

// CVResult is the outcome of a cross-validation run: the mean squared
// 1-step-ahead forecast error and how many forecast windows it was
// computed over.
type CVResult struct {
	MSE      float64
	NWindows int
}

// CrossValidationScore evaluates spec against data using rolling-origin
// cross-validation: for each window, it fits spec to the training
// prefix, forecasts one step ahead, and compares against the actual
// next observation. Returns ok=false if any window's fit fails, since a
// partial CV score would misrepresent the model's out-of-sample
// performance.
func CrossValidationScore(data []float64, spec models.ArimaGarchSpec, config CVConfig) (CVResult, bool, error) {
	n := len(data)
	if config.MinTrainSize <= 0 || config.MinTrainSize >= n {
		return CVResult{}, false, fmt.Errorf("selection: min_train_size (%d) must be positive and less than the sample size (%d)", config.MinTrainSize, n)
	}

	var sumSquaredError float64
	windows := 0

	for trainEnd := config.MinTrainSize; trainEnd < n; trainEnd++ {
		train := data[:trainEnd]
		actual := data[trainEnd]

		arimaX0, garchX0, err := estimation.InitializeArimaGarchParameters(train, spec)
		if err != nil {
			return CVResult{}, false, nil
		}
		x0 := estimation.Pack(arimaX0, garchX0)

		fit := estimation.Fit(spec, train, x0, config.Seed)
		if !isFiniteScore(fit.NLL) || fit.NLL >= estimation.ConstraintPenalty {
			return CVResult{}, false, nil
		}

		params := composite.Parameters{Arima: fit.Arima, Garch: fit.Garch}
		model, err := composite.New(spec, params)
		if err != nil {
			return CVResult{}, false, nil
		}
		for _, yt := range train {
			model.Update(yt)
		}

		forecastMean := oneStepMeanForecast(model)
		err2 := actual - forecastMean
		sumSquaredError += err2 * err2
		windows++
	}

	if windows == 0 {
		return CVResult{}, false, nil
	}

	return CVResult{MSE: sumSquaredError / float64(windows), NWindows: windows}, true, nil
}

// oneStepMeanForecast reads a fitted model's current state to produce a
// single 1-step-ahead conditional mean forecast, without mutating state.
func oneStepMeanForecast(model *composite.Model) float64 {
	spec := model.Spec()
	params := model.Params()
	obs := model.LastMeanState().ObservationWindow()
	res := model.LastMeanState().ResidualWindow()

	mean := params.Arima.Intercept
	for i := 0; i < spec.Arima.P; i++ {
		mean += params.Arima.AR[i] * obs[spec.Arima.P-1-i]
	}
	for j := 0; j < spec.Arima.Q; j++ {
		mean += params.Arima.MA[j] * res[spec.Arima.Q-1-j]
	}
	return mean
}
