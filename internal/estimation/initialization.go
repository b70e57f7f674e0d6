package estimation

import (
	"fmt"
	"math/rand"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/garch"
	"arimagarch/internal/stats"
)

// targetPersistence is the sum(alpha)+sum(beta) the GARCH heuristic
// initialization aims for: close enough to 1 to capture realistic
// volatility persistence, far enough below it to stay stationary.
const targetPersistence = 0.9

// InitializeArimaParameters seeds ARIMA(p,d,q) parameters from simple
// ACF/PACF heuristics: the intercept is the sample mean of the
// (differenced) series, AR coefficients are PACF values scaled by 0.9,
// and MA coefficients are negative ACF values scaled by 0.9. If PACF or
// ACF evaluation fails, the corresponding coefficients fall back to
// 0.1/(i+1) rather than aborting the fit. These are a starting point for
// the optimizer, not guaranteed to be stationary or invertible.
func InitializeArimaParameters(data []float64, spec models.ArimaSpec) (arima.Parameters, error) {
	if err := spec.Validate(); err != nil {
		return arima.Parameters{}, err
	}

	working := arima.Difference(data, spec.D)
	if len(working) < spec.P+1 {
		return arima.Parameters{}, fmt.Errorf("estimation: only %d observations remain after differencing, need more than p=%d", len(working), spec.P)
	}

	params := arima.NewParameters(spec.P, spec.Q)

	mean, err := stats.Mean(working)
	if err != nil {
		return arima.Parameters{}, err
	}
	params.Intercept = mean

	if spec.P > 0 {
		maxLag := spec.P
		if maxLag >= len(working) {
			maxLag = len(working) - 1
		}
		pacfValues, err := stats.PACF(working, maxLag)
		if err != nil {
			for i := 0; i < spec.P; i++ {
				params.AR[i] = 0.1 / float64(i+1)
			}
		} else {
			for i := 0; i < spec.P && i < len(pacfValues); i++ {
				params.AR[i] = 0.9 * pacfValues[i]
			}
		}
	}

	if spec.Q > 0 {
		maxLag := spec.Q
		if maxLag >= len(working) {
			maxLag = len(working) - 1
		}
		acfValues, err := stats.ACF(working, maxLag)
		if err != nil {
			for j := 0; j < spec.Q; j++ {
				params.MA[j] = 0.1 / float64(j+1)
			}
		} else {
			for j := 0; j < spec.Q && j+1 < len(acfValues); j++ {
				params.MA[j] = -0.9 * acfValues[j+1]
			}
		}
	}

	return params, nil
}

// InitializeGarchParameters seeds GARCH(p,q) parameters via
// method-of-moments: the targetPersistence budget splits 30/70 between
// ARCH (alpha) and GARCH (beta) effects — or wholly to whichever block
// is present when the other order is zero — alpha is spread evenly and
// beta is spread with a 1/(j+1) harmonic taper (first lag largest), and
// omega is backed out of the sample variance of residuals so the
// unconditional variance matches it.
func InitializeGarchParameters(residuals []float64, spec models.GarchSpec) (garch.Parameters, error) {
	if err := spec.Validate(); err != nil {
		return garch.Parameters{}, err
	}
	sampleVar, err := stats.Variance(residuals)
	if err != nil {
		return garch.Parameters{}, err
	}
	if sampleVar <= 0 {
		sampleVar = 1.0
	}

	params := garch.NewParameters(spec.P, spec.Q)

	var alphaTotal, betaTotal float64
	if spec.Q > 0 {
		alphaTotal = targetPersistence * 0.30
	}
	if spec.P > 0 {
		betaTotal = targetPersistence * 0.70
	}
	if spec.Q > 0 && spec.P == 0 {
		alphaTotal = targetPersistence
	} else if spec.P > 0 && spec.Q == 0 {
		betaTotal = targetPersistence
	}

	if spec.Q > 0 {
		alphaEach := alphaTotal / float64(spec.Q)
		for i := range params.Alpha {
			params.Alpha[i] = alphaEach
		}
	}

	if spec.P > 0 {
		sumWeights := 0.0
		for i := 0; i < spec.P; i++ {
			sumWeights += 1.0 / float64(i+1)
		}
		for j := range params.Beta {
			params.Beta[j] = betaTotal * (1.0 / float64(j+1)) / sumWeights
		}
	}

	persistence := 0.0
	for _, a := range params.Alpha {
		persistence += a
	}
	for _, b := range params.Beta {
		persistence += b
	}

	params.Omega = sampleVar * (1 - persistence)
	if params.Omega <= 0 {
		params.Omega = 0.01 * sampleVar
	}

	return params, nil
}

// InitializeArimaGarchParameters chains ARIMA initialization, residual
// computation, and GARCH initialization into a single starting point for
// the optimizer.
func InitializeArimaGarchParameters(data []float64, spec models.ArimaGarchSpec) (arima.Parameters, garch.Parameters, error) {
	arimaParams, err := InitializeArimaParameters(data, spec.Arima)
	if err != nil {
		return arima.Parameters{}, garch.Parameters{}, err
	}

	filter := arima.NewFilter(spec.Arima.P, spec.Arima.D, spec.Arima.Q)
	residuals, err := filter.ComputeResiduals(data, arimaParams)
	if err != nil {
		return arima.Parameters{}, garch.Parameters{}, fmt.Errorf("estimation: initializing garch parameters: %w", err)
	}

	garchParams, err := InitializeGarchParameters(residuals, spec.Garch)
	if err != nil {
		return arima.Parameters{}, garch.Parameters{}, err
	}
	return arimaParams, garchParams, nil
}

// PerturbParameters adds independent Gaussian noise to each coordinate of
// params, with per-coordinate standard deviation scale*|params[i]|. Used
// to generate restart starting points outside the optimizer's own
// restart schedule (e.g. for diagnostics on initialization sensitivity).
func PerturbParameters(rng *rand.Rand, params []float64, scale float64) []float64 {
	out := make([]float64, len(params))
	for i, p := range params {
		out[i] = p + rng.NormFloat64()*scale*absf(p)
	}
	return out
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
