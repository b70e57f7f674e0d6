package diagnostics

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"arimagarch/internal/stats"
)

// resampleWithReplacement draws len(data) points uniformly at random,
// with replacement, from data.
func resampleWithReplacement(rng *rand.Rand, data []float64) []float64 {
	n := len(data)
	out := make([]float64, n)
	for i := range out {
		out[i] = data[rng.Intn(n)]
	}
	return out
}

func center(data []float64) []float64 {
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}

// ljungBoxQ computes the Ljung-Box Q statistic alone, without a p-value,
// for use as the bootstrap replicate statistic.
func ljungBoxQ(residuals []float64, lags int) (float64, error) {
	n := len(residuals)
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
	return q * float64(n*(n+2)), nil
}

// LjungBoxTestBootstrap estimates the Ljung-Box p-value by residual
// bootstrap instead of the asymptotic chi-square approximation: center
// the residuals, resample with replacement nBootstrap times, recompute
// Q* on each replicate, and report the fraction with Q* >= Q_observed.
func LjungBoxTestBootstrap(residuals []float64, lags, dof, nBootstrap int, seed int64) (LjungBoxResult, error) {
	n := len(residuals)
	if n == 0 {
		return LjungBoxResult{}, fmt.Errorf("diagnostics: cannot bootstrap ljung-box test for empty residuals")
	}
	if lags <= 0 {
		return LjungBoxResult{}, fmt.Errorf("diagnostics: number of lags must be positive")
	}
	if lags >= n {
		return LjungBoxResult{}, fmt.Errorf("diagnostics: number of lags must be less than sample size")
	}
	if nBootstrap <= 0 {
		return LjungBoxResult{}, fmt.Errorf("diagnostics: number of bootstrap replications must be positive")
	}

	qObserved, err := ljungBoxQ(residuals, lags)
	if err != nil {
		return LjungBoxResult{}, err
	}

	centered := center(residuals)
	rng := rand.New(rand.NewSource(seed))

	var countGE int
	for b := 0; b < nBootstrap; b++ {
		resampled := resampleWithReplacement(rng, centered)
		qStar, err := ljungBoxQ(resampled, lags)
		if err != nil {
			continue
		}
		if qStar >= qObserved {
			countGE++
		}
	}

	pValue := float64(countGE) / float64(nBootstrap)
	effectiveDOF := dof
	if effectiveDOF == 0 {
		effectiveDOF = lags
	}

	return LjungBoxResult{
		Statistic: qObserved,
		PValue:    pValue,
		Lags:      lags,
		DOF:       effectiveDOF,
	}, nil
}

// fitARModel fits an AR(p) model to data by OLS and returns its
// coefficients together with the in-sample residuals, used to seed the
// sieve bootstrap's resampling pool. p=0 or insufficient data returns no
// coefficients and the original series as "residuals".
func fitARModel(data []float64, p int) ([]float64, []float64) {
	n := len(data)
	if p == 0 || n <= p {
		return nil, append([]float64(nil), data...)
	}

	nObs := n - p
	x := make([][]float64, nObs)
	y := make([]float64, nObs)
	for t := 0; t < nObs; t++ {
		y[t] = data[p+t]
		row := make([]float64, p)
		for j := 0; j < p; j++ {
			row[j] = data[p+t-j-1]
		}
		x[t] = row
	}

	fit, err := solveOLS(y, x)
	if err != nil {
		return nil, append([]float64(nil), data...)
	}

	residuals := make([]float64, nObs)
	for t := 0; t < nObs; t++ {
		fitted := 0.0
		for j := 0; j < p; j++ {
			fitted += fit.beta[j] * x[t][j]
		}
		residuals[t] = y[t] - fitted
	}
	return fit.beta, residuals
}

// generateUnitRootSample builds a bootstrap series imposing the unit
// root null: an AR(p) process of differences driven by resampled
// residuals, then cumulated to levels (y*_0 = 0).
func generateUnitRootSample(rng *rand.Rand, phiDiff, residuals []float64, n int) []float64 {
	p := len(phiDiff)
	nResid := len(residuals)

	resampled := make([]float64, n)
	for i := range resampled {
		resampled[i] = residuals[rng.Intn(nResid)]
	}

	dyStar := make([]float64, n)
	if p == 0 {
		copy(dyStar, resampled)
	} else {
		copy(dyStar, resampled)
		for t := p; t < n; t++ {
			dyStar[t] = resampled[t]
			for j := 0; j < p; j++ {
				dyStar[t] += phiDiff[j] * dyStar[t-j-1]
			}
		}
	}

	yStar := make([]float64, n)
	for t := 1; t < n; t++ {
		yStar[t] = yStar[t-1] + dyStar[t]
	}
	return yStar
}

// computeADFStatistic computes the ADF t-statistic alone (no p-value or
// critical values), reusing the same regression construction as ADFTest.
func computeADFStatistic(data []float64, lags int, form RegressionForm) (float64, error) {
	n := len(data)
	if n <= lags+2 {
		return 0, fmt.Errorf("diagnostics: insufficient data for adf statistic")
	}
	y, x, coefIndex := buildDesign(data, lags, form)
	return olsTStat(y, x, coefIndex)
}

// ADFTestBootstrap estimates the ADF test's p-value and critical values
// by sieve bootstrap rather than the tabulated MacKinnon approximation:
// fit an AR(p) model to the first differences, resample its residuals to
// generate replicate series under the unit-root null, compute the ADF
// statistic on each, and report both the bootstrap p-value and the
// empirical 1/5/10% quantiles as critical values.
func ADFTestBootstrap(data []float64, lags int, form RegressionForm, nBootstrap int, seed int64) (ADFResult, error) {
	n := len(data)
	if n <= 10 {
		return ADFResult{}, fmt.Errorf("diagnostics: insufficient data for bootstrap adf test (need more than 10 observations)")
	}
	if nBootstrap <= 0 {
		return ADFResult{}, fmt.Errorf("diagnostics: number of bootstrap replications must be positive")
	}

	tauObserved, err := computeADFStatistic(data, lags, form)
	if err != nil {
		return ADFResult{}, err
	}

	arOrder := lags
	if arOrder == 0 {
		arOrder = int(math.Floor(math.Pow(float64(n)/100.0, 0.25) * 12))
		if arOrder < 1 {
			arOrder = 1
		}
		if arOrder > n/4 {
			arOrder = n / 4
		}
	}

	differences := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		differences[i] = data[i+1] - data[i]
	}

	phiDiff, residuals := fitARModel(differences, arOrder)
	centered := center(residuals)

	rng := rand.New(rand.NewSource(seed))
	bootstrapStats := make([]float64, nBootstrap)
	for b := 0; b < nBootstrap; b++ {
		yStar := generateUnitRootSample(rng, phiDiff, centered, n)
		stat, err := computeADFStatistic(yStar, lags, form)
		if err != nil {
			stat = 0
		}
		bootstrapStats[b] = stat
	}

	sort.Float64s(bootstrapStats)

	var countLE int
	for _, tauStar := range bootstrapStats {
		if tauStar <= tauObserved {
			countLE++
		}
	}
	pValue := float64(countLE) / float64(nBootstrap)

	idx1 := clampIndex(int(0.01*float64(nBootstrap)), nBootstrap)
	idx5 := clampIndex(int(0.05*float64(nBootstrap)), nBootstrap)
	idx10 := clampIndex(int(0.10*float64(nBootstrap)), nBootstrap)

	return ADFResult{
		Statistic: tauObserved,
		PValue:    pValue,
		Lags:      lags,
		Form:      form,
		CriticalValues: [3]float64{
			bootstrapStats[idx1],
			bootstrapStats[idx5],
			bootstrapStats[idx10],
		},
	}, nil
}

func clampIndex(idx, n int) int {
	if idx >= n {
		return n - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}
