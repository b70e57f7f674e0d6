// Package diagnostics implements residual-adequacy and stationarity
// tests: the Ljung-Box portmanteau test, the Jarque-Bera normality test,
// the Augmented Dickey-Fuller unit-root test, and the residual/sieve
// bootstrap procedures that back them with simulation-based p-values
// when the asymptotic chi-square approximation is unreliable.
package diagnostics

import (
	"fmt"
	"math"
)

// lanczosCoef are the Lanczos approximation coefficients for g=7,
// reused by every test in this package that needs log-gamma.
var lanczosCoef = [9]float64{
	0.99999999999980993, 676.5203681218851, -1259.1392167224028,
	771.32342877765313, -176.61502916214059, 12.507343278686905,
	-0.13857109526572012, 9.9843695780195716e-6, 1.5056327351493116e-7,
}

// logGamma computes ln(Gamma(x)) via the Lanczos approximation, using the
// reflection formula for x < 0.5.
func logGamma(x float64) (float64, error) {
	if x <= 0 {
		return 0, fmt.Errorf("diagnostics: gamma function undefined for non-positive values")
	}
	if x < 0.5 {
		sinVal := math.Sin(math.Pi * x)
		if math.Abs(sinVal) < 1e-15 {
			return 0, fmt.Errorf("diagnostics: gamma function evaluation unstable near x=0")
		}
		reflected, err := logGamma(1 - x)
		if err != nil {
			return 0, err
		}
		return math.Log(math.Pi) - math.Log(math.Abs(sinVal)) - reflected, nil
	}

	x -= 1
	sum := lanczosCoef[0]
	for i := 1; i < 9; i++ {
		sum += lanczosCoef[i] / (x + float64(i))
	}
	t := x + 7.5
	const logSqrt2Pi = 0.91893853320467274178
	return logSqrt2Pi + math.Log(sum) + (x+0.5)*math.Log(t) - t, nil
}

// continuedFractionQ evaluates the continued-fraction expansion of the
// regularized upper incomplete gamma function Q(a, z) via Lentz's method.
func continuedFractionQ(a, z float64) float64 {
	const maxIter = 200
	const eps = 1e-15
	const tiny = 1e-30

	b := z + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d

	for i := 1; i <= maxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		delta := d * c
		h *= delta
		if math.Abs(delta-1) < eps {
			break
		}
	}
	return h
}

// ChiSquareCCDF returns P(X > x) for X ~ chi-square(k), computed through
// the regularized upper incomplete gamma function Q(k/2, x/2).
func ChiSquareCCDF(x, k float64) (float64, error) {
	if x <= 0 {
		return 1, nil
	}
	if k <= 0 {
		return 0, fmt.Errorf("diagnostics: degrees of freedom must be positive, got %g", k)
	}

	a := k / 2
	z := x / 2
	if z > 500 {
		return 0, nil
	}

	lg, err := logGamma(a)
	if err != nil {
		return 0, err
	}
	logTerm := a*math.Log(z) - z - lg
	cf := continuedFractionQ(a, z)
	result := math.Exp(logTerm) * cf

	if result < 0 {
		result = 0
	}
	if result > 1 {
		result = 1
	}
	return result, nil
}
