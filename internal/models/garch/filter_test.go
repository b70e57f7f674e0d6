package garch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameters_IsPositive(t *testing.T) {
	assert.True(t, Parameters{Omega: 0.1, Alpha: []float64{0.1}, Beta: []float64{0.8}}.IsPositive())
	assert.False(t, Parameters{Omega: 0, Alpha: []float64{0.1}, Beta: []float64{0.8}}.IsPositive())
	assert.False(t, Parameters{Omega: 0.1, Alpha: []float64{-0.1}, Beta: []float64{0.8}}.IsPositive())
}

func TestParameters_IsStationaryAndUnconditionalVariance(t *testing.T) {
	p := Parameters{Omega: 0.1, Alpha: []float64{0.1}, Beta: []float64{0.8}}
	assert.True(t, p.IsStationary())
	assert.InDelta(t, 0.1/(1-0.9), p.UnconditionalVariance(), 1e-12)

	nonStationary := Parameters{Omega: 0.1, Alpha: []float64{0.6}, Beta: []float64{0.6}}
	assert.False(t, nonStationary.IsStationary())
	assert.True(t, math.IsInf(nonStationary.UnconditionalVariance(), 1))
}

func TestState_PushShiftsWindows(t *testing.T) {
	state := NewState(2, 1, 1.0)
	assert.Equal(t, []float64{1.0, 1.0}, state.VarianceWindow())
	assert.Equal(t, []float64{0}, state.SquaredResidualWindow())

	state.Push(2.0, 0.5)
	assert.Equal(t, []float64{1.0, 2.0}, state.VarianceWindow())
	assert.Equal(t, []float64{0.5}, state.SquaredResidualWindow())
}

func TestNewState_FloorsH0(t *testing.T) {
	state := NewState(1, 1, -5)
	assert.Equal(t, 1e-10, state.InitialVariance())
}

func TestFilter_ComputeConditionalVariances_ConstantWhenNoARCH(t *testing.T) {
	// GARCH(1,1) with alpha = beta = 0: h_t = omega at every t, independent
	// of the residuals and of h0.
	f := NewFilter(1, 1)
	params := Parameters{Omega: 1.0, Alpha: []float64{0}, Beta: []float64{0}}

	variances, err := f.ComputeConditionalVariances([]float64{0, 0, 0, 0, 0}, params, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, variances[0])
	for i := 1; i < len(variances); i++ {
		assert.InDelta(t, 1.0, variances[i], 1e-9)
	}
}

func TestFilter_ComputeConditionalVariances_RejectsNonPositiveParameters(t *testing.T) {
	f := NewFilter(1, 1)
	_, err := f.ComputeConditionalVariances([]float64{1, 2}, Parameters{Omega: -1, Alpha: []float64{0.1}, Beta: []float64{0.8}}, 1.0)
	assert.Error(t, err)
}

func TestFilter_ComputeConditionalVariances_DimensionMismatch(t *testing.T) {
	f := NewFilter(1, 1)
	_, err := f.ComputeConditionalVariances([]float64{1}, Parameters{Omega: 0.1, Alpha: []float64{0.1, 0.1}, Beta: []float64{0.8}}, 1.0)
	assert.Error(t, err)
}

func TestFilter_VarianceNeverBelowFloor(t *testing.T) {
	f := NewFilter(1, 1)
	params := Parameters{Omega: 1e-12, Alpha: []float64{0}, Beta: []float64{0}}
	variances, err := f.ComputeConditionalVariances([]float64{0, 0}, params, 1e-12)
	require.NoError(t, err)
	for _, h := range variances {
		assert.GreaterOrEqual(t, h, varianceFloor)
	}
}
