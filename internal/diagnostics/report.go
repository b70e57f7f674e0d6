package diagnostics

import (
	"fmt"

	"arimagarch/internal/models"
	"arimagarch/internal/models/composite"
)

// DefaultLjungBoxLags is the default number of lags used for the two
// Ljung-Box tests in a diagnostic report.
const DefaultLjungBoxLags = 10

// Report aggregates the standard battery of residual-adequacy tests for
// a fitted ARIMA-GARCH model: autocorrelation in the residuals and in
// the squared residuals, normality of the standardized residuals, and
// (optionally) stationarity of the raw residuals.
type Report struct {
	LjungBoxResiduals LjungBoxResult
	LjungBoxSquared   LjungBoxResult
	JarqueBera        JarqueBeraResult
	ADF               *ADFResult // nil unless includeADF was requested
}

// ComputeDiagnostics filters data through a model built from spec and
// params, then runs Ljung-Box tests on both the raw and squared
// residuals, a Jarque-Bera test on the standardized residuals, and —
// when includeADF is set — an auto-form-selected ADF test on the raw
// residuals. ljungBoxLags must exceed the model's total parameter count,
// the point at which the degrees-of-freedom adjustment collapses.
func ComputeDiagnostics(spec models.ArimaGarchSpec, params composite.Parameters, data []float64, ljungBoxLags int, includeADF bool) (Report, error) {
	if len(data) == 0 {
		return Report{}, fmt.Errorf("diagnostics: data must be non-empty")
	}

	k := spec.ParamCount()
	if ljungBoxLags <= k {
		return Report{}, fmt.Errorf("diagnostics: ljung-box lags (%d) must exceed the model's parameter count (%d)", ljungBoxLags, k)
	}

	residuals, err := ComputeResiduals(spec, params, data)
	if err != nil {
		return Report{}, err
	}

	squared := make([]float64, len(residuals.Eps))
	for i, eps := range residuals.Eps {
		squared[i] = eps * eps
	}

	lbResiduals, err := LjungBoxTest(residuals.Eps, ljungBoxLags, ljungBoxLags-k)
	if err != nil {
		return Report{}, fmt.Errorf("diagnostics: ljung-box on residuals: %w", err)
	}
	lbSquared, err := LjungBoxTest(squared, ljungBoxLags, ljungBoxLags-k)
	if err != nil {
		return Report{}, fmt.Errorf("diagnostics: ljung-box on squared residuals: %w", err)
	}
	jb, err := JarqueBeraTest(residuals.StdEps)
	if err != nil {
		return Report{}, fmt.Errorf("diagnostics: jarque-bera: %w", err)
	}

	report := Report{
		LjungBoxResiduals: lbResiduals,
		LjungBoxSquared:   lbSquared,
		JarqueBera:        jb,
	}

	if includeADF {
		adf, err := ADFTestAuto(residuals.Eps, 0, 0)
		if err != nil {
			return Report{}, fmt.Errorf("diagnostics: adf: %w", err)
		}
		report.ADF = &adf
	}

	return report, nil
}
