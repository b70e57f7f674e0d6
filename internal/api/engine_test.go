package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/composite"
	"arimagarch/internal/models/garch"
	"arimagarch/internal/selection"
	"arimagarch/internal/simulation"
)

func engineTestData() []float64 {
	data := make([]float64, 60)
	x := 0.0
	for i := range data {
		x = 0.3*x + float64(i%7-3)*0.05
		data[i] = x
	}
	return data
}

func TestEngine_Fit_RejectsTooFewObservations(t *testing.T) {
	engine := NewEngine()
	spec := models.ArimaGarchSpec{Arima: models.ArimaSpec{P: 1}, Garch: models.GarchSpec{P: 1, Q: 1}}
	_, err := engine.Fit([]float64{1, 2, 3}, spec, FitOptions{})
	assert.Error(t, err)
}

func TestEngine_Fit_RejectsInvalidSpec(t *testing.T) {
	engine := NewEngine()
	spec := models.ArimaGarchSpec{Arima: models.ArimaSpec{P: -1}, Garch: models.GarchSpec{P: 1, Q: 1}}
	_, err := engine.Fit(engineTestData(), spec, FitOptions{})
	assert.Error(t, err)
}

func TestEngine_Fit_ReturnsUsableModelAndSummary(t *testing.T) {
	engine := NewEngine()
	spec := models.ArimaGarchSpec{Arima: models.ArimaSpec{P: 1}, Garch: models.GarchSpec{P: 1, Q: 1}}
	result, err := engine.Fit(engineTestData(), spec, FitOptions{Seed: 1})
	require.NoError(t, err)
	assert.NotNil(t, result.Model)
	assert.True(t, result.Summary.Converged)
	assert.Nil(t, result.Summary.Diagnostics)
}

func TestEngine_Fit_ComputesDiagnosticsWhenRequested(t *testing.T) {
	engine := NewEngine()
	spec := models.ArimaGarchSpec{Arima: models.ArimaSpec{P: 1}, Garch: models.GarchSpec{P: 1, Q: 1}}
	result, err := engine.Fit(engineTestData(), spec, FitOptions{Seed: 1, ComputeDiagnostics: true})
	require.NoError(t, err)
	assert.NotNil(t, result.Summary.Diagnostics)
}

func TestEngine_AutoSelect_RejectsTooFewObservations(t *testing.T) {
	engine := NewEngine()
	candidates := []models.ArimaGarchSpec{{Garch: models.GarchSpec{P: 1, Q: 1}}}
	_, err := engine.AutoSelect([]float64{1, 2}, candidates, SelectOptions{Criterion: selection.CriterionBIC})
	assert.Error(t, err)
}

func TestEngine_AutoSelect_PicksAFeasibleCandidate(t *testing.T) {
	engine := NewEngine()
	candidates := []models.ArimaGarchSpec{
		{Arima: models.ArimaSpec{P: 0}, Garch: models.GarchSpec{P: 1, Q: 1}},
		{Arima: models.ArimaSpec{P: 1}, Garch: models.GarchSpec{P: 1, Q: 1}},
	}
	result, err := engine.AutoSelect(engineTestData(), candidates, SelectOptions{Criterion: selection.CriterionBIC, Seed: 2})
	require.NoError(t, err)
	assert.NotNil(t, result.Model)
	assert.GreaterOrEqual(t, result.CandidatesEvaluated, 1)
}

func TestEngine_Forecast_ProducesRequestedHorizon(t *testing.T) {
	spec := models.ArimaGarchSpec{Arima: models.ArimaSpec{P: 1}, Garch: models.GarchSpec{P: 1, Q: 1}}
	params := composite.Parameters{
		Arima: arima.Parameters{Intercept: 0.1, AR: []float64{0.2}},
		Garch: garch.Parameters{Omega: 0.01, Alpha: []float64{0.1}, Beta: []float64{0.8}},
	}
	model, err := composite.New(spec, params)
	require.NoError(t, err)
	model.Update(0.15)

	engine := NewEngine()
	result, err := engine.Forecast(model, 4)
	require.NoError(t, err)
	assert.Len(t, result.MeanForecasts, 4)
}

func TestEngine_Simulate_RejectsInvalidParameters(t *testing.T) {
	engine := NewEngine()
	spec := models.ArimaGarchSpec{Arima: models.ArimaSpec{P: 0}, Garch: models.GarchSpec{P: 1, Q: 1}}
	params := composite.Parameters{Garch: garch.Parameters{Omega: -1, Alpha: []float64{0.1}, Beta: []float64{0.8}}}
	_, err := engine.Simulate(spec, params, 10, 1, simulation.Normal, 0)
	assert.Error(t, err)
}

func TestEngine_Simulate_ProducesRequestedLength(t *testing.T) {
	engine := NewEngine()
	spec := models.ArimaGarchSpec{Arima: models.ArimaSpec{P: 0}, Garch: models.GarchSpec{P: 1, Q: 1}}
	params := composite.Parameters{Garch: garch.Parameters{Omega: 0.02, Alpha: []float64{0.1}, Beta: []float64{0.8}}}
	result, err := engine.Simulate(spec, params, 15, 1, simulation.Normal, 0)
	require.NoError(t, err)
	assert.Len(t, result.Returns, 15)
}
