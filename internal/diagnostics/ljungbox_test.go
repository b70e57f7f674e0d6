package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whiteNoiseSeries() []float64 {
	// Alternating-sign, non-autocorrelated sequence long enough for the
	// Ljung-Box asymptotics to apply.
	data := make([]float64, 60)
	seed := []float64{0.1, -0.2, 0.15, -0.05, 0.3, -0.1, 0.05, 0.2, -0.15, 0.1}
	for i := range data {
		data[i] = seed[i%len(seed)] * (1 + float64(i%3)*0.01)
	}
	return data
}

func TestLjungBoxStatistic_RejectsEmptyResiduals(t *testing.T) {
	_, err := LjungBoxStatistic(nil, 5)
	assert.Error(t, err)
}

func TestLjungBoxStatistic_RejectsNonPositiveLags(t *testing.T) {
	_, err := LjungBoxStatistic(whiteNoiseSeries(), 0)
	assert.Error(t, err)
}

func TestLjungBoxStatistic_RejectsLagsExceedingSampleSize(t *testing.T) {
	_, err := LjungBoxStatistic([]float64{1, 2, 3}, 5)
	assert.Error(t, err)
}

func TestLjungBoxTest_DefaultsDOFToLags(t *testing.T) {
	result, err := LjungBoxTest(whiteNoiseSeries(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, result.DOF)
	assert.GreaterOrEqual(t, result.PValue, 0.0)
	assert.LessOrEqual(t, result.PValue, 1.0)
}

func TestLjungBoxTest_RejectsNonPositiveAdjustedDOF(t *testing.T) {
	_, err := LjungBoxTest(whiteNoiseSeries(), 3, -3)
	assert.Error(t, err)
}
