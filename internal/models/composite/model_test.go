package composite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/garch"
)

func testSpec() models.ArimaGarchSpec {
	return models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 1, D: 0, Q: 0},
		Garch: models.GarchSpec{P: 1, Q: 1},
	}
}

func testParams() Parameters {
	return Parameters{
		Arima: arima.Parameters{Intercept: 0.1, AR: []float64{0.3}, MA: []float64{}},
		Garch: garch.Parameters{Omega: 0.05, Alpha: []float64{0.1}, Beta: []float64{0.8}},
	}
}

func TestNew_RejectsDimensionMismatch(t *testing.T) {
	spec := testSpec()
	params := testParams()
	params.Arima.AR = []float64{0.3, 0.2}
	_, err := New(spec, params)
	assert.Error(t, err)
}

func TestNew_RejectsNonPositiveGarchParameters(t *testing.T) {
	spec := testSpec()
	params := testParams()
	params.Garch.Omega = -1
	_, err := New(spec, params)
	assert.Error(t, err)
}

func TestNew_SeedsUnconditionalVarianceWhenStationary(t *testing.T) {
	spec := testSpec()
	params := testParams()
	model, err := New(spec, params)
	require.NoError(t, err)

	expected := params.Garch.Omega / (1 - 0.1 - 0.8)
	assert.InDelta(t, expected, model.LastVarState().VarianceWindow()[0], 1e-9)
}

func TestUpdate_AdvancesWindowsAndReportsOutput(t *testing.T) {
	spec := testSpec()
	params := testParams()
	model, err := New(spec, params)
	require.NoError(t, err)

	out1 := model.Update(1.0)
	assert.InDelta(t, params.Arima.Intercept, out1.Mean, 1e-12)
	assert.Greater(t, out1.Variance, 0.0)

	out2 := model.Update(2.0)
	expectedMean := params.Arima.Intercept + params.Arima.AR[0]*1.0
	assert.InDelta(t, expectedMean, out2.Mean, 1e-12)
	assert.Equal(t, []float64{2.0}, model.LastMeanState().ObservationWindow())
}

func TestSpecAndParamsAccessors(t *testing.T) {
	spec := testSpec()
	params := testParams()
	model, err := New(spec, params)
	require.NoError(t, err)

	assert.Equal(t, spec, model.Spec())
	assert.Equal(t, params, model.Params())
}
