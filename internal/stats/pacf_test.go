package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPACF_LagOneEqualsACFLagOne(t *testing.T) {
	data := []float64{1, 3, 2, 5, 4, 7, 6, 9, 8, 11}
	acfValues, err := ACF(data, 1)
	require.NoError(t, err)
	pacfValues, err := PACF(data, 1)
	require.NoError(t, err)
	assert.InDelta(t, acfValues[1], pacfValues[0], 1e-9)
}

func TestPACF_ZeroLagReturnsEmpty(t *testing.T) {
	values, err := PACF([]float64{1, 2, 3}, 0)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestPACFAtLag_RejectsLagZero(t *testing.T) {
	_, err := PACFAtLag([]float64{1, 2, 3}, 0)
	assert.Error(t, err)
}
