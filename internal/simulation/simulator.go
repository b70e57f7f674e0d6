package simulation

import (
	"fmt"
	"math"

	"arimagarch/internal/models"
	"arimagarch/internal/models/composite"
)

// Result holds a simulated path: one return and one spot volatility
// (sqrt of conditional variance) per generated step.
type Result struct {
	Returns      []float64
	Volatilities []float64
}

// Simulator generates synthetic ARIMA-GARCH paths from a fixed
// specification and parameter set, independent of any observed data.
type Simulator struct {
	spec   models.ArimaGarchSpec
	params composite.Parameters
}

// New constructs a simulator, validating spec, parameter dimensions, and
// the GARCH positivity constraints up front.
func New(spec models.ArimaGarchSpec, params composite.Parameters) (*Simulator, error) {
	if _, err := composite.New(spec, params); err != nil {
		return nil, err
	}
	return &Simulator{spec: spec, params: params}, nil
}

// Simulate generates a single path of the given length, seeding its
// innovations generator from seed. dist selects the innovation
// distribution; studentTDF is required (and must exceed 2) when dist is
// StudentT, ignored otherwise.
func (s *Simulator) Simulate(length int, seed uint64, dist Distribution, studentTDF float64) (Result, error) {
	if length <= 0 {
		return Result{}, fmt.Errorf("simulation: length must be positive, got %d", length)
	}
	if dist == StudentT && studentTDF <= 2 {
		return Result{}, fmt.Errorf("simulation: degrees of freedom must be > 2 for student-t with finite variance")
	}

	innovations := NewInnovations(seed)
	model, err := composite.New(s.spec, s.params)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Returns:      make([]float64, length),
		Volatilities: make([]float64, length),
	}

	for t := 0; t < length; t++ {
		var zt float64
		if dist == Normal {
			zt = innovations.DrawNormal()
		} else {
			zt, err = innovations.DrawStudentT(studentTDF)
			if err != nil {
				return Result{}, err
			}
		}

		muT := s.conditionalMean(model)
		hT := s.conditionalVariance(model)

		yt := muT + math.Sqrt(hT)*zt

		result.Returns[t] = yt
		result.Volatilities[t] = math.Sqrt(hT)

		model.Update(yt)
	}

	return result, nil
}

// SimulatePaths generates nPaths independent simulations. Path i is
// seeded from seed+uint64(i), so the full set is reproducible from a
// single seed while every path draws an independent sequence.
func (s *Simulator) SimulatePaths(length, nPaths int, seed uint64, dist Distribution, studentTDF float64) ([]Result, error) {
	if nPaths <= 0 {
		return nil, fmt.Errorf("simulation: number of paths must be positive, got %d", nPaths)
	}
	results := make([]Result, nPaths)
	for i := 0; i < nPaths; i++ {
		result, err := s.Simulate(length, seed+uint64(i), dist, studentTDF)
		if err != nil {
			return nil, fmt.Errorf("simulation: path %d: %w", i, err)
		}
		results[i] = result
	}
	return results, nil
}

// conditionalMean and conditionalVariance peek at the model's current
// windowed state to compute mu_t/h_t before an observation is pushed
// through Update, matching the composite model's own recursion exactly
// (the simulator must know h_t to draw y_t, whereas Update only reports
// it after the fact).
func (s *Simulator) conditionalMean(model *composite.Model) float64 {
	mu := s.params.Arima.Intercept
	obs := model.LastMeanState().ObservationWindow()
	for i := 0; i < s.spec.Arima.P; i++ {
		mu += s.params.Arima.AR[i] * obs[s.spec.Arima.P-1-i]
	}
	res := model.LastMeanState().ResidualWindow()
	for j := 0; j < s.spec.Arima.Q; j++ {
		mu += s.params.Arima.MA[j] * res[s.spec.Arima.Q-1-j]
	}
	return mu
}

func (s *Simulator) conditionalVariance(model *composite.Model) float64 {
	h := s.params.Garch.Omega
	sq := model.LastVarState().SquaredResidualWindow()
	for i := 0; i < s.spec.Garch.Q; i++ {
		h += s.params.Garch.Alpha[i] * sq[s.spec.Garch.Q-1-i]
	}
	hw := model.LastVarState().VarianceWindow()
	for j := 0; j < s.spec.Garch.P; j++ {
		h += s.params.Garch.Beta[j] * hw[s.spec.Garch.P-1-j]
	}
	if h < 1e-10 {
		h = 1e-10
	}
	return h
}
