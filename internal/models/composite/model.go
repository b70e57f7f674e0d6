// Package composite bundles an ARIMA conditional-mean model with a GARCH
// conditional-variance model into a single ArimaGarchModel that can be
// updated one observation at a time, producing the conditional mean and
// variance the next observation is scored against.
package composite

import (
	"fmt"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/garch"
)

// Parameters bundles an ARIMA parameter set with a GARCH parameter set.
type Parameters struct {
	Arima arima.Parameters
	Garch garch.Parameters
}

// Output is the pair a single Update call produces: the conditional mean
// and conditional variance used to evaluate the observation that produced it.
type Output struct {
	Mean     float64
	Variance float64
}

// Model is a streaming ARIMA-GARCH model: each call to Update consumes one
// new observation, advances both filters' windowed state, and reports the
// conditional mean/variance pair that observation was evaluated against.
type Model struct {
	spec   models.ArimaGarchSpec
	params Parameters

	meanState *arima.State
	varState  *garch.State
}

// New constructs a streaming model for spec and params, validating spec
// and parameter dimensions and the GARCH positivity constraints. The
// variance window is seeded with the unconditional variance when the
// GARCH parameters are stationary, otherwise with the floor variance.
func New(spec models.ArimaGarchSpec, params Parameters) (*Model, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(params.Arima.AR) != spec.Arima.P {
		return nil, fmt.Errorf("composite model: ar coefficient count %d does not match p=%d", len(params.Arima.AR), spec.Arima.P)
	}
	if len(params.Arima.MA) != spec.Arima.Q {
		return nil, fmt.Errorf("composite model: ma coefficient count %d does not match q=%d", len(params.Arima.MA), spec.Arima.Q)
	}
	if len(params.Garch.Beta) != spec.Garch.P {
		return nil, fmt.Errorf("composite model: beta coefficient count %d does not match p=%d", len(params.Garch.Beta), spec.Garch.P)
	}
	if len(params.Garch.Alpha) != spec.Garch.Q {
		return nil, fmt.Errorf("composite model: alpha coefficient count %d does not match q=%d", len(params.Garch.Alpha), spec.Garch.Q)
	}
	if !params.Garch.IsPositive() {
		return nil, fmt.Errorf("composite model: garch parameters violate positivity constraints")
	}

	initVariance := 1e-10
	if params.Garch.IsStationary() {
		initVariance = params.Garch.UnconditionalVariance()
	}

	return &Model{
		spec:      spec,
		params:    params,
		meanState: arima.NewState(spec.Arima.P, spec.Arima.D, spec.Arima.Q),
		varState:  garch.NewState(spec.Garch.P, spec.Garch.Q, initVariance),
	}, nil
}

// Spec returns the model's ARIMA-GARCH specification.
func (m *Model) Spec() models.ArimaGarchSpec { return m.spec }

// Params returns the model's parameter set.
func (m *Model) Params() Parameters { return m.params }

// Update consumes one new observation, advancing both
// filters' state, and returns the conditional mean/variance the
// observation was evaluated against. It does not itself difference yt:
// callers feeding raw levels through a d>0 model must difference upstream
// and call Update once per differenced point, matching the convention
// used during fitting.
func (m *Model) Update(yt float64) Output {
	mu := m.conditionalMean()
	eps := yt - mu
	h := m.conditionalVariance()

	m.meanState.Push(yt, eps)
	m.varState.Push(h, eps*eps)

	return Output{Mean: mu, Variance: h}
}

func (m *Model) conditionalMean() float64 {
	mean := m.params.Arima.Intercept
	obs := m.meanState.ObservationWindow()
	for i := 0; i < m.spec.Arima.P; i++ {
		mean += m.params.Arima.AR[i] * obs[m.spec.Arima.P-1-i]
	}
	res := m.meanState.ResidualWindow()
	for j := 0; j < m.spec.Arima.Q; j++ {
		mean += m.params.Arima.MA[j] * res[m.spec.Arima.Q-1-j]
	}
	return mean
}

func (m *Model) conditionalVariance() float64 {
	h := m.params.Garch.Omega
	sq := m.varState.SquaredResidualWindow()
	for i := 0; i < m.spec.Garch.Q; i++ {
		h += m.params.Garch.Alpha[i] * sq[m.spec.Garch.Q-1-i]
	}
	hw := m.varState.VarianceWindow()
	for j := 0; j < m.spec.Garch.P; j++ {
		h += m.params.Garch.Beta[j] * hw[m.spec.Garch.P-1-j]
	}
	if h < 1e-10 {
		h = 1e-10
	}
	return h
}

// LastMeanState exposes the current observation/residual windows, used by
// forecasting to seed multi-step-ahead iteration from a fitted model.
func (m *Model) LastMeanState() *arima.State { return m.meanState }

// LastVarState exposes the current variance/squared-residual windows, used
// by forecasting to seed multi-step-ahead iteration from a fitted model.
func (m *Model) LastVarState() *garch.State { return m.varState }
