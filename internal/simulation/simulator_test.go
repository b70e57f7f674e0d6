package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/composite"
	"arimagarch/internal/models/garch"
)

func simulatorTestSpecParams() (models.ArimaGarchSpec, composite.Parameters) {
	spec := models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 1, D: 0, Q: 0},
		Garch: models.GarchSpec{P: 1, Q: 1},
	}
	params := composite.Parameters{
		Arima: arima.Parameters{Intercept: 0.1, AR: []float64{0.3}},
		Garch: garch.Parameters{Omega: 0.02, Alpha: []float64{0.1}, Beta: []float64{0.8}},
	}
	return spec, params
}

func TestNew_RejectsInvalidGarchParameters(t *testing.T) {
	spec, params := simulatorTestSpecParams()
	params.Garch.Omega = -1
	_, err := New(spec, params)
	assert.Error(t, err)
}

func TestSimulate_RejectsNonPositiveLength(t *testing.T) {
	spec, params := simulatorTestSpecParams()
	sim, err := New(spec, params)
	require.NoError(t, err)
	_, err = sim.Simulate(0, 1, Normal, 0)
	assert.Error(t, err)
}

func TestSimulate_RejectsStudentTWithoutValidDF(t *testing.T) {
	spec, params := simulatorTestSpecParams()
	sim, err := New(spec, params)
	require.NoError(t, err)
	_, err = sim.Simulate(10, 1, StudentT, 2)
	assert.Error(t, err)
}

func TestSimulate_SameSeedIsReproducible(t *testing.T) {
	spec, params := simulatorTestSpecParams()
	sim, err := New(spec, params)
	require.NoError(t, err)

	r1, err := sim.Simulate(20, 99, Normal, 0)
	require.NoError(t, err)
	r2, err := sim.Simulate(20, 99, Normal, 0)
	require.NoError(t, err)

	assert.Equal(t, r1.Returns, r2.Returns)
	assert.Equal(t, r1.Volatilities, r2.Volatilities)
}

func TestSimulate_VolatilitiesAreNonNegative(t *testing.T) {
	spec, params := simulatorTestSpecParams()
	sim, err := New(spec, params)
	require.NoError(t, err)

	result, err := sim.Simulate(50, 5, Normal, 0)
	require.NoError(t, err)
	for _, vol := range result.Volatilities {
		assert.GreaterOrEqual(t, vol, 0.0)
	}
}

func TestSimulatePaths_RejectsNonPositivePathCount(t *testing.T) {
	spec, params := simulatorTestSpecParams()
	sim, err := New(spec, params)
	require.NoError(t, err)
	_, err = sim.SimulatePaths(10, 0, 1, Normal, 0)
	assert.Error(t, err)
}

func TestSimulatePaths_EachPathHasDistinctSeed(t *testing.T) {
	spec, params := simulatorTestSpecParams()
	sim, err := New(spec, params)
	require.NoError(t, err)

	results, err := sim.SimulatePaths(10, 3, 1, Normal, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NotEqual(t, results[0].Returns, results[1].Returns)
}
