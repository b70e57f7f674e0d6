package arima

// State holds the bounded, oldest-first FIFO windows an ArimaFilter needs
// to evaluate the next conditional mean: the p most recent (differenced)
// observations and the q most recent residuals. It is owned exclusively
// by the filter that mutates it.
type State struct {
	p, d, q int

	differenced []float64 // series after d-fold differencing, materialised once
	obsWindow   []float64 // length p, oldest first
	resWindow   []float64 // length q, oldest first
}

// NewState allocates a state for an ARIMA(p,d,q) filter.
func NewState(p, d, q int) *State {
	return &State{
		p:         p,
		d:         d,
		q:         q,
		obsWindow: make([]float64, p),
		resWindow: make([]float64, q),
	}
}

// Difference applies first differencing d times to data, returning a
// fresh slice; data itself is not modified. d=0 returns a copy of data
// unchanged.
func Difference(data []float64, d int) []float64 {
	result := append([]float64(nil), data...)
	for k := 0; k < d; k++ {
		if len(result) < 2 {
			return []float64{}
		}
		next := make([]float64, len(result)-1)
		for i := 1; i < len(result); i++ {
			next[i-1] = result[i] - result[i-1]
		}
		result = next
	}
	return result
}

// Reset (re)initializes the state's differenced series and zeroes both
// windows, ready for a fresh pass over data.
func (s *State) Reset(data []float64) {
	if s.d > 0 {
		s.differenced = Difference(data, s.d)
	} else {
		s.differenced = append([]float64(nil), data...)
	}
	for i := range s.obsWindow {
		s.obsWindow[i] = 0
	}
	for i := range s.resWindow {
		s.resWindow[i] = 0
	}
}

// Differenced returns the working (possibly differenced) series.
func (s *State) Differenced() []float64 { return s.differenced }

// ObservationWindow returns the p most recent observations, oldest first.
func (s *State) ObservationWindow() []float64 { return s.obsWindow }

// ResidualWindow returns the q most recent residuals, oldest first.
func (s *State) ResidualWindow() []float64 { return s.resWindow }

// Push shifts a new observation/residual pair into the windows, dropping
// the oldest entry from each.
func (s *State) Push(observation, residual float64) {
	if s.p > 0 {
		copy(s.obsWindow, s.obsWindow[1:])
		s.obsWindow[s.p-1] = observation
	}
	if s.q > 0 {
		copy(s.resWindow, s.resWindow[1:])
		s.resWindow[s.q-1] = residual
	}
}
