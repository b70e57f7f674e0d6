// Package garch implements the GARCH(p,q) conditional-variance filter:
// the one-step recursion for conditional variance given past squared
// residuals and past variances, together with its bounded windowed state.
package garch

import (
	"fmt"
	"math"
)

// varianceFloor is the minimum conditional variance the recursion will
// ever report; values below it are clamped rather than allowed to
// collapse toward zero or go negative from numerical drift.
const varianceFloor = 1e-10

// Parameters holds the coefficients of a GARCH(p,q) conditional variance:
// h_t = Omega + sum(Alpha_i * eps_{t-i}^2) + sum(Beta_j * h_{t-j}).
type Parameters struct {
	Omega float64
	Alpha []float64 // ARCH coefficients, alpha_1..alpha_q
	Beta  []float64 // GARCH coefficients, beta_1..beta_p
}

// NewParameters allocates a zeroed parameter set for the given orders.
func NewParameters(p, q int) Parameters {
	return Parameters{Alpha: make([]float64, q), Beta: make([]float64, p)}
}

// IsPositive reports whether the parameters satisfy the positivity
// constraints required for the conditional variance to stay non-negative:
// omega > 0 and every alpha_i, beta_j >= 0.
func (p Parameters) IsPositive() bool {
	if p.Omega <= 0 {
		return false
	}
	for _, a := range p.Alpha {
		if a < 0 {
			return false
		}
	}
	for _, b := range p.Beta {
		if b < 0 {
			return false
		}
	}
	return true
}

// IsStationary reports whether sum(alpha) + sum(beta) < 1, the condition
// for a finite unconditional variance.
func (p Parameters) IsStationary() bool {
	return p.persistence() < 1
}

func (p Parameters) persistence() float64 {
	var sum float64
	for _, a := range p.Alpha {
		sum += a
	}
	for _, b := range p.Beta {
		sum += b
	}
	return sum
}

// UnconditionalVariance returns omega / (1 - persistence), the long-run
// variance implied by a stationary parameter set. Callers must check
// IsStationary first; a non-stationary set has no finite answer.
func (p Parameters) UnconditionalVariance() float64 {
	denom := 1 - p.persistence()
	if denom <= 0 {
		return math.Inf(1)
	}
	return p.Omega / denom
}

// InitialVariance chooses h0 the way state initialization does: the
// parameters' unconditional variance when stationary, otherwise the
// sample variance of residuals (floored at varianceFloor).
func InitialVariance(residuals []float64, params Parameters) float64 {
	if params.IsStationary() {
		if uv := params.UnconditionalVariance(); uv > 0 {
			return uv
		}
	}
	return sampleVariance(residuals)
}

func sampleVariance(data []float64) float64 {
	if len(data) < 2 {
		return 1.0
	}
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	var ss float64
	for _, v := range data {
		d := v - mean
		ss += d * d
	}
	variance := ss / float64(len(data)-1)
	if variance < varianceFloor {
		return varianceFloor
	}
	return variance
}

// Filter computes the conditional-variance series of a GARCH(p,q) process
// given an exogenous residual series (typically the ARIMA filter's output).
type Filter struct {
	P, Q int
}

// NewFilter constructs a filter for the given GARCH orders.
func NewFilter(p, q int) *Filter {
	return &Filter{P: p, Q: q}
}

// ComputeConditionalVariances replays the GARCH recursion over residuals
// and returns the conditional-variance series h_1..h_n. h0 seeds the
// variance window; callers typically pass the sample variance of
// residuals or the parameters' unconditional variance.
func (f *Filter) ComputeConditionalVariances(residuals []float64, params Parameters, h0 float64) ([]float64, error) {
	if len(params.Beta) != f.P {
		return nil, fmt.Errorf("garch filter: beta coefficient count %d does not match p=%d", len(params.Beta), f.P)
	}
	if len(params.Alpha) != f.Q {
		return nil, fmt.Errorf("garch filter: alpha coefficient count %d does not match q=%d", len(params.Alpha), f.Q)
	}
	if !params.IsPositive() {
		return nil, fmt.Errorf("garch filter: parameters violate positivity constraints")
	}

	state := NewState(f.P, f.Q, h0)
	variances := make([]float64, len(residuals))
	for t, eps := range residuals {
		h := f.conditionalVariance(state, params)
		if h < varianceFloor {
			h = varianceFloor
		}
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return nil, fmt.Errorf("garch filter: non-finite conditional variance at t=%d", t)
		}
		variances[t] = h
		state.Push(h, eps*eps)
	}
	return variances, nil
}

// conditionalVariance computes h_t = omega + sum(alpha_i*eps_{t-i}^2) + sum(beta_j*h_{t-j}).
func (f *Filter) conditionalVariance(state *State, params Parameters) float64 {
	h := params.Omega
	sq := state.SquaredResidualWindow()
	for i := 0; i < f.Q; i++ {
		// sq[q-1] is the most recent squared residual, eps_{t-1}^2.
		h += params.Alpha[i] * sq[f.Q-1-i]
	}
	hw := state.VarianceWindow()
	for j := 0; j < f.P; j++ {
		h += params.Beta[j] * hw[f.P-1-j]
	}
	return h
}
