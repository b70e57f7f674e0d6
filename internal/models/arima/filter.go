// Package arima implements the ARIMA(p,d,q) conditional-mean residual
// filter: differencing, the one-step recursion for the conditional mean,
// and the bounded windowed state it operates on.
package arima

import (
	"fmt"
	"math"
)

// Parameters holds the coefficients of an ARIMA(p,d,q) conditional mean.
type Parameters struct {
	Intercept float64
	AR        []float64 // phi_1..phi_p
	MA        []float64 // theta_1..theta_q
}

// NewParameters allocates a zeroed parameter set for the given orders.
func NewParameters(p, q int) Parameters {
	return Parameters{AR: make([]float64, p), MA: make([]float64, q)}
}

// Filter computes the conditional mean and, sequentially, the residual
// series of an ARIMA(p,d,q) process. It is stateless between calls to
// ComputeResiduals: each call owns a fresh State.
type Filter struct {
	P, D, Q int
}

// NewFilter constructs a filter for the given ARIMA orders.
func NewFilter(p, d, q int) *Filter {
	return &Filter{P: p, D: d, Q: q}
}

// ComputeResiduals replays the ARIMA recursion over data and returns the
// residual series. The recursion is deterministic: replaying it on the
// same data and parameters yields bit-identical residuals.
func (f *Filter) ComputeResiduals(data []float64, params Parameters) ([]float64, error) {
	if len(params.AR) != f.P {
		return nil, fmt.Errorf("arima filter: ar coefficient count %d does not match p=%d", len(params.AR), f.P)
	}
	if len(params.MA) != f.Q {
		return nil, fmt.Errorf("arima filter: ma coefficient count %d does not match q=%d", len(params.MA), f.Q)
	}

	state := NewState(f.P, f.D, f.Q)
	state.Reset(data)
	working := state.Differenced()

	if len(working) < f.P {
		return nil, fmt.Errorf("arima filter: only %d observations remain after differencing, need at least p=%d", len(working), f.P)
	}

	residuals := make([]float64, len(working))
	for t, yt := range working {
		mu := f.conditionalMean(state, params)
		eps := yt - mu
		if math.IsNaN(eps) || math.IsInf(eps, 0) {
			return nil, fmt.Errorf("arima filter: non-finite residual at t=%d", t)
		}
		residuals[t] = eps
		state.Push(yt, eps)
	}
	return residuals, nil
}

// conditionalMean computes mu_t = c + sum(phi_i*y_{t-i}) + sum(theta_j*eps_{t-j}),
// with missing lags treated as zero via the window's fixed length.
func (f *Filter) conditionalMean(state *State, params Parameters) float64 {
	mu := params.Intercept
	obs := state.ObservationWindow()
	for i := 0; i < f.P; i++ {
		// obs[p-1] is the most recent observation y_{t-1}.
		mu += params.AR[i] * obs[f.P-1-i]
	}
	res := state.ResidualWindow()
	for j := 0; j < f.Q; j++ {
		mu += params.MA[j] * res[f.Q-1-j]
	}
	return mu
}
