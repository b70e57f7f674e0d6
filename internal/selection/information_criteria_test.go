package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIC_PenalizesParameterCount(t *testing.T) {
	simple := AIC(-100, 2)
	complex := AIC(-100, 5)
	assert.Less(t, simple, complex)
}

func TestBIC_PenalizesMoreHeavilyThanAICForLargeSamples(t *testing.T) {
	bic := BIC(-100, 3, 1000)
	aic := AIC(-100, 3)
	assert.Greater(t, bic, aic)
}

func TestAICc_ConvergesTowardAICAsSampleGrows(t *testing.T) {
	small, err := AICc(-100, 3, 20)
	require.NoError(t, err)
	large, err := AICc(-100, 3, 100000)
	require.NoError(t, err)
	aic := AIC(-100, 3)

	assert.Greater(t, small-aic, large-aic)
	assert.InDelta(t, aic, large, 1e-3)
}

func TestAICc_RejectsInsufficientSampleSize(t *testing.T) {
	_, err := AICc(-100, 5, 5)
	assert.Error(t, err)
}
