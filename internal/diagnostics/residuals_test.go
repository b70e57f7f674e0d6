package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/composite"
	"arimagarch/internal/models/garch"
)

func diagnosticsTestSpec() models.ArimaGarchSpec {
	return models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 1, D: 0, Q: 0},
		Garch: models.GarchSpec{P: 1, Q: 1},
	}
}

func diagnosticsTestParams() composite.Parameters {
	return composite.Parameters{
		Arima: arima.Parameters{Intercept: 0, AR: []float64{0.2}},
		Garch: garch.Parameters{Omega: 0.01, Alpha: []float64{0.1}, Beta: []float64{0.8}},
	}
}

func TestComputeResiduals_RejectsEmptyData(t *testing.T) {
	_, err := ComputeResiduals(diagnosticsTestSpec(), diagnosticsTestParams(), nil)
	assert.Error(t, err)
}

func TestComputeResiduals_ProducesFiniteStandardizedResiduals(t *testing.T) {
	data := []float64{0.1, -0.2, 0.15, -0.05, 0.3, -0.1, 0.05, 0.2, -0.15, 0.1}
	result, err := ComputeResiduals(diagnosticsTestSpec(), diagnosticsTestParams(), data)
	require.NoError(t, err)
	require.Len(t, result.Eps, len(data))
	for i := range result.H {
		assert.Greater(t, result.H[i], 0.0)
		assert.True(t, isFinite(result.StdEps[i]))
	}
}

func TestComputeResiduals_RejectsInvalidParameters(t *testing.T) {
	params := diagnosticsTestParams()
	params.Garch.Omega = -1
	_, err := ComputeResiduals(diagnosticsTestSpec(), params, []float64{0.1, 0.2, 0.3})
	assert.Error(t, err)
}
