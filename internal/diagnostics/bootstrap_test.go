package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLjungBoxTestBootstrap_RejectsNonPositiveBootstrapCount(t *testing.T) {
	_, err := LjungBoxTestBootstrap(whiteNoiseSeries(), 5, 0, 0, 1)
	assert.Error(t, err)
}

func TestLjungBoxTestBootstrap_PValueWithinUnitInterval(t *testing.T) {
	result, err := LjungBoxTestBootstrap(whiteNoiseSeries(), 5, 0, 200, 42)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.PValue, 0.0)
	assert.LessOrEqual(t, result.PValue, 1.0)
	assert.Equal(t, 5, result.DOF)
}

func TestLjungBoxTestBootstrap_DeterministicGivenSeed(t *testing.T) {
	data := whiteNoiseSeries()
	r1, err := LjungBoxTestBootstrap(data, 5, 0, 100, 7)
	require.NoError(t, err)
	r2, err := LjungBoxTestBootstrap(data, 5, 0, 100, 7)
	require.NoError(t, err)
	assert.Equal(t, r1.PValue, r2.PValue)
}

func TestADFTestBootstrap_RejectsShortSeries(t *testing.T) {
	_, err := ADFTestBootstrap([]float64{1, 2, 3}, 1, Constant, 100, 1)
	assert.Error(t, err)
}

func TestADFTestBootstrap_RejectsNonPositiveBootstrapCount(t *testing.T) {
	_, err := ADFTestBootstrap(stationarySeries(30), 1, Constant, 0, 1)
	assert.Error(t, err)
}

func TestADFTestBootstrap_CriticalValuesOrdered(t *testing.T) {
	result, err := ADFTestBootstrap(stationarySeries(60), 1, Constant, 200, 11)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.CriticalValues[0], result.CriticalValues[1])
	assert.LessOrEqual(t, result.CriticalValues[1], result.CriticalValues[2])
}
