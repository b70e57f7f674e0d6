package diagnostics

import (
	"fmt"

	"arimagarch/internal/stats"
)

// LjungBoxResult reports the outcome of a Ljung-Box portmanteau test for
// residual autocorrelation.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// LjungBoxStatistic computes Q = n(n+2) * sum_{k=1}^{lags} rho_k^2/(n-k)
// over the sample ACF of residuals.
func LjungBoxStatistic(residuals []float64, lags int) (float64, error) {
	n := len(residuals)
	if n == 0 {
		return 0, fmt.Errorf("diagnostics: cannot compute ljung-box statistic for empty residuals")
	}
	if lags <= 0 {
		return 0, fmt.Errorf("diagnostics: number of lags must be positive")
	}
	if lags >= n {
		return 0, fmt.Errorf("diagnostics: number of lags must be less than sample size")
	}

	acfValues, err := stats.ACF(residuals, lags)
	if err != nil {
		return 0, err
	}

	var q float64
	for k := 1; k <= lags; k++ {
		rho := acfValues[k]
		q += (rho * rho) / float64(n-k)
	}
	q *= float64(n * (n + 2))
	return q, nil
}

// LjungBoxTest runs the full test, defaulting degrees of freedom to lags
// when dof is 0 and otherwise subtracting the number of estimated model
// parameters (dof = lags - k) so the asymptotic chi-square approximation
// accounts for parameters already fit out of the residuals. A negative
// dof is refused; the lags > params check that keeps the adjusted
// degrees of freedom positive is made by ComputeDiagnostics.
func LjungBoxTest(residuals []float64, lags, dof int) (LjungBoxResult, error) {
	if dof < 0 {
		return LjungBoxResult{}, fmt.Errorf("diagnostics: degrees of freedom must be non-negative")
	}
	degreesOfFreedom := dof
	if degreesOfFreedom == 0 {
		degreesOfFreedom = lags
	}
	if degreesOfFreedom <= 0 {
		return LjungBoxResult{}, fmt.Errorf("diagnostics: degrees of freedom must be positive (lags=%d leaves none after adjustment)", lags)
	}

	q, err := LjungBoxStatistic(residuals, lags)
	if err != nil {
		return LjungBoxResult{}, err
	}

	pValue, err := ChiSquareCCDF(q, float64(degreesOfFreedom))
	if err != nil {
		return LjungBoxResult{}, err
	}

	return LjungBoxResult{
		Statistic: q,
		PValue:    pValue,
		Lags:      lags,
		DOF:       degreesOfFreedom,
	}, nil
}
