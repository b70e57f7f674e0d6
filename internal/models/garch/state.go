package garch

// State holds the bounded, oldest-first FIFO windows a GarchFilter needs:
// the p most recent conditional variances and the q most recent squared
// residuals. Owned exclusively by its filter.
type State struct {
	p, q int

	h0         float64
	varWindow  []float64 // length p, oldest first
	sqResWindow []float64 // length q, oldest first
}

// NewState allocates a state for a GARCH(p,q) filter, filling the
// variance window with h0 (the unconditional or sample variance) and the
// squared-residual window with zeros.
func NewState(p, q int, h0 float64) *State {
	if h0 < 1e-10 {
		h0 = 1e-10
	}
	varWindow := make([]float64, p)
	for i := range varWindow {
		varWindow[i] = h0
	}
	return &State{
		p:           p,
		q:           q,
		h0:          h0,
		varWindow:   varWindow,
		sqResWindow: make([]float64, q),
	}
}

// InitialVariance returns h0.
func (s *State) InitialVariance() float64 { return s.h0 }

// VarianceWindow returns the p most recent conditional variances, oldest first.
func (s *State) VarianceWindow() []float64 { return s.varWindow }

// SquaredResidualWindow returns the q most recent squared residuals, oldest first.
func (s *State) SquaredResidualWindow() []float64 { return s.sqResWindow }

// Push shifts a new conditional-variance/squared-residual pair into the
// windows, dropping the oldest entry from each.
func (s *State) Push(variance, squaredResidual float64) {
	copy(s.varWindow, s.varWindow[1:])
	s.varWindow[s.p-1] = variance
	copy(s.sqResWindow, s.sqResWindow[1:])
	s.sqResWindow[s.q-1] = squaredResidual
}
