// Package report formats the outcome of a model fit — specification,
// parameters, convergence status, information criteria, and (optionally)
// diagnostic tests — into a single summary value and a human-readable
// text report.
package report

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"arimagarch/internal/diagnostics"
	"arimagarch/internal/models"
	"arimagarch/internal/models/composite"
)

// FitSummary is a complete snapshot of one model fit: what was fit, what
// came out, and whether it can be trusted.
type FitSummary struct {
	Spec             models.ArimaGarchSpec
	Parameters       composite.Parameters
	NegLogLikelihood float64
	AIC              float64
	BIC              float64
	Converged        bool
	Iterations       int
	Message          string
	SampleSize       int
	Diagnostics      *diagnostics.Report // nil unless diagnostics were requested
}

// NewFitSummary computes AIC/BIC from the negative log-likelihood and
// sample size and assembles the rest of the summary.
func NewFitSummary(spec models.ArimaGarchSpec, params composite.Parameters, nll float64, converged bool, iterations int, message string, sampleSize int) FitSummary {
	k := spec.ParamCount()
	logLik := -nll
	aic := 2*float64(k) - 2*logLik
	bic := float64(k)*logN(sampleSize) - 2*logLik

	return FitSummary{
		Spec:             spec,
		Parameters:       params,
		NegLogLikelihood: nll,
		AIC:              aic,
		BIC:              bic,
		Converged:        converged,
		Iterations:       iterations,
		Message:          message,
		SampleSize:       sampleSize,
	}
}

func logN(n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Log(float64(n))
}

// GenerateTextReport formats a FitSummary into an aligned, multi-section
// plain-text report suitable for console output or a file.
func GenerateTextReport(summary FitSummary) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 2, 2, ' ', 0)

	fmt.Fprintf(w, "Model Specification\n")
	fmt.Fprintf(w, "  Order:\t%s\n", summary.Spec)
	fmt.Fprintf(w, "  Parameters:\t%d\n", summary.Spec.ParamCount())
	fmt.Fprintf(w, "  Sample size:\t%d\n", summary.SampleSize)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Estimated Parameters\n")
	fmt.Fprintf(w, "  Intercept:\t%.6f\n", summary.Parameters.Arima.Intercept)
	for i, ar := range summary.Parameters.Arima.AR {
		fmt.Fprintf(w, "  AR[%d]:\t%.6f\n", i+1, ar)
	}
	for i, ma := range summary.Parameters.Arima.MA {
		fmt.Fprintf(w, "  MA[%d]:\t%.6f\n", i+1, ma)
	}
	fmt.Fprintf(w, "  Omega:\t%.6f\n", summary.Parameters.Garch.Omega)
	for i, alpha := range summary.Parameters.Garch.Alpha {
		fmt.Fprintf(w, "  Alpha[%d]:\t%.6f\n", i+1, alpha)
	}
	for i, beta := range summary.Parameters.Garch.Beta {
		fmt.Fprintf(w, "  Beta[%d]:\t%.6f\n", i+1, beta)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Convergence\n")
	fmt.Fprintf(w, "  Converged:\t%t\n", summary.Converged)
	fmt.Fprintf(w, "  Iterations:\t%d\n", summary.Iterations)
	fmt.Fprintf(w, "  Message:\t%s\n", summary.Message)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Model Fit\n")
	fmt.Fprintf(w, "  Neg. log-likelihood:\t%.6f\n", summary.NegLogLikelihood)
	fmt.Fprintf(w, "  AIC:\t%.6f\n", summary.AIC)
	fmt.Fprintf(w, "  BIC:\t%.6f\n", summary.BIC)

	if summary.Diagnostics != nil {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Diagnostics\n")
		lb := summary.Diagnostics.LjungBoxResiduals
		fmt.Fprintf(w, "  Ljung-Box (residuals):\tQ=%.4f, p=%.4f, dof=%d\n", lb.Statistic, lb.PValue, lb.DOF)
		lbSq := summary.Diagnostics.LjungBoxSquared
		fmt.Fprintf(w, "  Ljung-Box (squared residuals):\tQ=%.4f, p=%.4f, dof=%d\n", lbSq.Statistic, lbSq.PValue, lbSq.DOF)
		jb := summary.Diagnostics.JarqueBera
		fmt.Fprintf(w, "  Jarque-Bera:\tJB=%.4f, p=%.4f\n", jb.Statistic, jb.PValue)
		if summary.Diagnostics.ADF != nil {
			adf := summary.Diagnostics.ADF
			fmt.Fprintf(w, "  ADF:\tstat=%.4f, p=%.4f, lags=%d\n", adf.Statistic, adf.PValue, adf.Lags)
		}
	}

	w.Flush()
	return b.String()
}
