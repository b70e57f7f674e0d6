// Package selection generates candidate ARIMA-GARCH specifications,
// fits each to a series, and ranks them by information criterion or
// out-of-sample cross-validation score.
package selection

import (
	"fmt"

	"arimagarch/internal/models"
)

// GridConfig bounds a candidate grid: every ARIMA order from 0 up to
// MaxP/MaxD/MaxQ and every GARCH order from 1 up to MaxPGarch/MaxQGarch,
// with two optional restrictions to keep the grid from growing
// unmanageably large.
type GridConfig struct {
	MaxP      int
	MaxD      int
	MaxQ      int
	MaxPGarch int
	MaxQGarch int

	RestrictDTo01   bool // if true, only d in {0,1} is considered
	RestrictPQTotal bool // if true, only p+q <= MaxPQTotal is considered
	MaxPQTotal      int
}

// Validate checks the configuration's bounds.
func (c GridConfig) Validate() error {
	if c.MaxP < 0 || c.MaxD < 0 || c.MaxQ < 0 {
		return fmt.Errorf("selection: max_p, max_d, max_q must be non-negative, got p=%d d=%d q=%d", c.MaxP, c.MaxD, c.MaxQ)
	}
	if c.MaxPGarch < 1 {
		return fmt.Errorf("selection: max_p_garch must be >= 1, got %d", c.MaxPGarch)
	}
	if c.MaxQGarch < 1 {
		return fmt.Errorf("selection: max_q_garch must be >= 1, got %d", c.MaxQGarch)
	}
	if c.RestrictPQTotal && c.MaxPQTotal < 0 {
		return fmt.Errorf("selection: max_pq_total must be non-negative when restrict_pq_total is set, got %d", c.MaxPQTotal)
	}
	return nil
}

func (c GridConfig) satisfiesRestrictions(p, d, q int) bool {
	if c.RestrictDTo01 && d > 1 {
		return false
	}
	if c.RestrictPQTotal && p+q > c.MaxPQTotal {
		return false
	}
	return true
}

// CandidateCount returns the number of specs Generate would produce,
// without allocating them.
func (c GridConfig) CandidateCount() int {
	count := 0
	for p := 0; p <= c.MaxP; p++ {
		for d := 0; d <= c.MaxD; d++ {
			for q := 0; q <= c.MaxQ; q++ {
				if c.satisfiesRestrictions(p, d, q) {
					count += c.MaxPGarch * c.MaxQGarch
				}
			}
		}
	}
	return count
}

// Generate enumerates every candidate ArimaGarchSpec within the grid's
// bounds and restrictions. The order is deterministic: ARIMA orders
// iterate p outer, d middle, q inner; GARCH orders iterate p_garch
// outer, q_garch inner; ARIMA combinations are iterated before GARCH
// combinations are varied within each.
func Generate(config GridConfig) ([]models.ArimaGarchSpec, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]models.ArimaGarchSpec, 0, config.CandidateCount())
	for p := 0; p <= config.MaxP; p++ {
		for d := 0; d <= config.MaxD; d++ {
			for q := 0; q <= config.MaxQ; q++ {
				if !config.satisfiesRestrictions(p, d, q) {
					continue
				}
				for pGarch := 1; pGarch <= config.MaxPGarch; pGarch++ {
					for qGarch := 1; qGarch <= config.MaxQGarch; qGarch++ {
						candidates = append(candidates, models.ArimaGarchSpec{
							Arima: models.ArimaSpec{P: p, D: d, Q: q},
							Garch: models.GarchSpec{P: pGarch, Q: qGarch},
						})
					}
				}
			}
		}
	}
	return candidates, nil
}
