package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChiSquareCCDF_ZeroStatisticIsCertain(t *testing.T) {
	p, err := ChiSquareCCDF(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestChiSquareCCDF_KnownMedianApproximation(t *testing.T) {
	// For k degrees of freedom, x == k is close to the median; the
	// upper tail probability should sit near 0.5 rather than at either
	// extreme.
	p, err := ChiSquareCCDF(5, 5)
	require.NoError(t, err)
	assert.True(t, p > 0.3 && p < 0.6)
}

func TestChiSquareCCDF_LargeStatisticIsNearZero(t *testing.T) {
	p, err := ChiSquareCCDF(1000, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, p, 1e-200)
}

func TestChiSquareCCDF_RejectsNonPositiveDOF(t *testing.T) {
	_, err := ChiSquareCCDF(1, 0)
	assert.Error(t, err)
}

func TestChiSquareCCDF_MonotonicallyDecreasing(t *testing.T) {
	p1, err := ChiSquareCCDF(2, 4)
	require.NoError(t, err)
	p2, err := ChiSquareCCDF(8, 4)
	require.NoError(t, err)
	assert.Greater(t, p1, p2)
}
