// Package models holds the immutable specification value objects shared
// by every other package: ArimaSpec, GarchSpec and their composite.
package models

import "fmt"

// ArimaSpec names the order of an ARIMA(p,d,q) conditional-mean model.
type ArimaSpec struct {
	P int // autoregressive order
	D int // differencing order
	Q int // moving-average order
}

// Validate checks that all orders are non-negative.
func (s ArimaSpec) Validate() error {
	if s.P < 0 || s.D < 0 || s.Q < 0 {
		return fmt.Errorf("arima spec: p, d, q must be non-negative, got p=%d d=%d q=%d", s.P, s.D, s.Q)
	}
	return nil
}

// IsZeroOrder reports whether the model has no AR, differencing, or MA terms.
func (s ArimaSpec) IsZeroOrder() bool {
	return s.P == 0 && s.D == 0 && s.Q == 0
}

// ParamCount returns the number of free ARIMA parameters: an intercept
// plus p AR and q MA coefficients, or zero when the spec is zero-order.
func (s ArimaSpec) ParamCount() int {
	if s.IsZeroOrder() {
		return 0
	}
	return 1 + s.P + s.Q
}

func (s ArimaSpec) String() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", s.P, s.D, s.Q)
}

// GarchSpec names the order of a GARCH(p,q) conditional-variance model.
// p is the number of lagged conditional variances, q the number of
// lagged squared residuals; both must be at least 1.
type GarchSpec struct {
	P int // GARCH (variance) order
	Q int // ARCH (squared-residual) order
}

// Validate checks that both orders are at least 1.
func (s GarchSpec) Validate() error {
	if s.P < 1 || s.Q < 1 {
		return fmt.Errorf("garch spec: p and q must be >= 1, got p=%d q=%d", s.P, s.Q)
	}
	return nil
}

// ParamCount returns 1 (omega) plus p beta and q alpha coefficients.
func (s GarchSpec) ParamCount() int {
	return 1 + s.P + s.Q
}

func (s GarchSpec) String() string {
	return fmt.Sprintf("GARCH(%d,%d)", s.P, s.Q)
}

// ArimaGarchSpec bundles an ARIMA conditional-mean spec with a GARCH
// conditional-variance spec into the full model specification.
type ArimaGarchSpec struct {
	Arima ArimaSpec
	Garch GarchSpec
}

// Validate validates both component specs.
func (s ArimaGarchSpec) Validate() error {
	if err := s.Arima.Validate(); err != nil {
		return err
	}
	if err := s.Garch.Validate(); err != nil {
		return err
	}
	return nil
}

// ParamCount returns the total number of free parameters k, used by the
// information criteria and Ljung-Box degrees-of-freedom adjustment.
func (s ArimaGarchSpec) ParamCount() int {
	return s.Arima.ParamCount() + s.Garch.ParamCount()
}

func (s ArimaGarchSpec) String() string {
	return fmt.Sprintf("%s-%s", s.Arima, s.Garch)
}
