package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"arimagarch/internal/diagnostics"
	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/composite"
	"arimagarch/internal/models/garch"
)

func reportTestSpec() models.ArimaGarchSpec {
	return models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 1, D: 0, Q: 0},
		Garch: models.GarchSpec{P: 1, Q: 1},
	}
}

func reportTestParams() composite.Parameters {
	return composite.Parameters{
		Arima: arima.Parameters{Intercept: 0.1, AR: []float64{0.3}},
		Garch: garch.Parameters{Omega: 0.02, Alpha: []float64{0.1}, Beta: []float64{0.8}},
	}
}

func TestNewFitSummary_ComputesAICAndBICFromNLL(t *testing.T) {
	spec := reportTestSpec()
	summary := NewFitSummary(spec, reportTestParams(), 100, true, 12, "converged", 200)

	k := spec.ParamCount()
	assert.InDelta(t, 2*float64(k)+200, summary.AIC, 1e-9)
	assert.Greater(t, summary.BIC, summary.AIC) // BIC penalizes more for n=200
}

func TestNewFitSummary_ZeroSampleSizeDoesNotPanic(t *testing.T) {
	summary := NewFitSummary(reportTestSpec(), reportTestParams(), 10, false, 0, "failed", 0)
	assert.InDelta(t, 20.0, summary.BIC, 1e-9) // logN(0) == 0, so BIC collapses to -2*logLik = 2*NLL
	assert.False(t, summary.Converged)
}

func TestGenerateTextReport_IncludesAllSections(t *testing.T) {
	summary := NewFitSummary(reportTestSpec(), reportTestParams(), 50, true, 8, "converged", 100)
	text := GenerateTextReport(summary)

	assert.Contains(t, text, "Model Specification")
	assert.Contains(t, text, "Estimated Parameters")
	assert.Contains(t, text, "Convergence")
	assert.Contains(t, text, "Model Fit")
	assert.False(t, strings.Contains(text, "Diagnostics"))
}

func TestGenerateTextReport_IncludesDiagnosticsWhenPresent(t *testing.T) {
	summary := NewFitSummary(reportTestSpec(), reportTestParams(), 50, true, 8, "converged", 100)
	diag := diagnostics.Report{
		LjungBoxResiduals: diagnostics.LjungBoxResult{Statistic: 1.2, PValue: 0.8, DOF: 9},
		LjungBoxSquared:   diagnostics.LjungBoxResult{Statistic: 2.1, PValue: 0.6, DOF: 9},
		JarqueBera:        diagnostics.JarqueBeraResult{Statistic: 0.5, PValue: 0.9},
	}
	summary.Diagnostics = &diag

	text := GenerateTextReport(summary)
	assert.Contains(t, text, "Diagnostics")
	assert.Contains(t, text, "Ljung-Box")
	assert.Contains(t, text, "Jarque-Bera")
}
