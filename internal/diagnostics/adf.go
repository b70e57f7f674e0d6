package diagnostics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RegressionForm selects the deterministic terms included in the ADF
// test regression.
type RegressionForm int

const (
	// None omits both the constant and the trend.
	None RegressionForm = iota
	// Constant includes an intercept only.
	Constant
	// ConstantAndTrend includes an intercept and a linear time trend.
	ConstantAndTrend
)

// criticalValueTable holds MacKinnon-style critical values at the 1%, 5%
// and 10% significance levels for n=100, indexed by RegressionForm.
var criticalValueTable = [3][3]float64{
	{-2.58, -1.95, -1.62}, // None
	{-3.51, -2.89, -2.58}, // Constant
	{-4.04, -3.45, -3.15}, // ConstantAndTrend
}

// ADFResult reports the outcome of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	Form         RegressionForm
	CriticalValues [3]float64 // 1%, 5%, 10%
}

// adjustCriticalValue rescales a base (n=100) critical value for the
// actual sample size, matching the sample-size heuristics used
// throughout the test suite this library was ported from: a conservative
// shift for small samples, a mild inflation toward the asymptotic value
// for very large ones, and no adjustment in between.
func adjustCriticalValue(baseCV float64, n int, form RegressionForm) float64 {
	switch {
	case n <= 25:
		switch form {
		case Constant:
			return baseCV - 0.1
		case ConstantAndTrend:
			return baseCV - 0.15
		default:
			return baseCV
		}
	case n >= 500:
		return baseCV * 1.02
	default:
		return baseCV
	}
}

func criticalValues(n int, form RegressionForm) [3]float64 {
	row := criticalValueTable[form]
	return [3]float64{
		adjustCriticalValue(row[0], n, form),
		adjustCriticalValue(row[1], n, form),
		adjustCriticalValue(row[2], n, form),
	}
}

// approximatePValue interpolates a p-value from the test statistic and
// the three tabulated critical values. ADF critical values are all
// negative, with cv1 < cv5 < cv10 < 0; a statistic more negative than
// cv1 is stronger evidence of stationarity than the table resolves, so it
// is extrapolated with an exponential decay rather than left at a fixed
// floor.
func approximatePValue(statistic float64, cv [3]float64) float64 {
	cv1, cv5, cv10 := cv[0], cv[1], cv[2]
	switch {
	case statistic < cv1:
		excess := (cv1 - statistic) / math.Abs(cv1)
		return math.Max(0.001, 0.01*math.Exp(-excess))
	case statistic < cv5:
		return 0.01 + (statistic-cv1)/(cv5-cv1)*0.04
	case statistic < cv10:
		return 0.05 + (statistic-cv5)/(cv10-cv5)*0.05
	case statistic < 0:
		return 0.10 + (statistic-cv10)/(0-cv10)*0.10
	default:
		return math.Min(0.99, 0.20+statistic*0.1)
	}
}

// buildDesign constructs the ADF regression's dependent variable
// (Delta y_t) and design matrix (deterministic terms, y_{t-1}, and p
// lagged differences) from data, using lags p.
func buildDesign(data []float64, p int, form RegressionForm) (y []float64, x [][]float64, coefIndex int) {
	n := len(data)
	kDet := 0
	switch form {
	case Constant:
		kDet = 1
	case ConstantAndTrend:
		kDet = 2
	}
	coefIndex = kDet

	for t := p + 1; t < n; t++ {
		y = append(y, data[t]-data[t-1])

		row := make([]float64, 0, kDet+1+p)
		if form == Constant || form == ConstantAndTrend {
			row = append(row, 1.0)
		}
		if form == ConstantAndTrend {
			row = append(row, float64(t))
		}
		row = append(row, data[t-1])
		for lag := 1; lag <= p; lag++ {
			row = append(row, data[t-lag]-data[t-lag-1])
		}
		x = append(x, row)
	}
	return y, x, coefIndex
}

// olsFit holds the vector OLS solution for y = X*beta + e: the
// coefficients, the inverse of X'X (for standard errors), and the
// residual sum of squares.
type olsFit struct {
	beta   []float64
	xtxInv *mat.Dense
	rss    float64
	n, k   int
}

// solveOLS fits y = X*beta + e by ordinary least squares via the normal
// equations, solved through gonum's Dense.Solve/Inverse rather than a
// hand-rolled Gaussian elimination.
func solveOLS(y []float64, x [][]float64) (olsFit, error) {
	n := len(y)
	if n == 0 {
		return olsFit{}, fmt.Errorf("diagnostics: empty regression sample")
	}
	k := len(x[0])
	if n < k {
		return olsFit{}, fmt.Errorf("diagnostics: fewer observations (%d) than regressors (%d)", n, k)
	}

	flatX := make([]float64, 0, n*k)
	for _, row := range x {
		flatX = append(flatX, row...)
	}
	xMat := mat.NewDense(n, k, flatX)
	yVec := mat.NewVecDense(n, y)

	var xtx mat.Dense
	xtx.Mul(xMat.T(), xMat)

	var xty mat.Dense
	xty.Mul(xMat.T(), yVec)

	var betaMat mat.Dense
	if err := betaMat.Solve(&xtx, &xty); err != nil {
		return olsFit{}, fmt.Errorf("diagnostics: singular design matrix in ols regression: %w", err)
	}

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return olsFit{}, fmt.Errorf("diagnostics: could not invert x'x: %w", err)
	}

	beta := make([]float64, k)
	for i := range beta {
		beta[i] = betaMat.At(i, 0)
	}

	var rss float64
	for t := 0; t < n; t++ {
		var fitted float64
		for i := 0; i < k; i++ {
			fitted += xMat.At(t, i) * beta[i]
		}
		resid := y[t] - fitted
		rss += resid * resid
	}

	return olsFit{beta: beta, xtxInv: &xtxInv, rss: rss, n: n, k: k}, nil
}

// olsTStat fits y = X*beta + e by ordinary least squares and returns the
// t-statistic for beta[coefIndex].
func olsTStat(y []float64, x [][]float64, coefIndex int) (float64, error) {
	fit, err := solveOLS(y, x)
	if err != nil {
		return 0, err
	}
	sigma2 := fit.rss / float64(fit.n-fit.k)
	se := math.Sqrt(sigma2 * fit.xtxInv.At(coefIndex, coefIndex))
	if se == 0 {
		return 0, fmt.Errorf("diagnostics: zero standard error in ols regression")
	}
	return fit.beta[coefIndex] / se, nil
}

// selectLags picks the number of augmenting lags via a modified-AIC
// sweep over 1..maxLags, defaulting maxLags to Schwert's
// 12*(n/100)^(1/4) rule when unset.
func selectLags(data []float64, maxLags int, form RegressionForm) int {
	n := len(data)
	if maxLags == 0 {
		maxLags = int(12.0 * math.Pow(float64(n)/100.0, 0.25))
	}
	if maxLags > n/4 {
		maxLags = n / 4
	}
	if maxLags <= 0 {
		return 0
	}

	kDet := 0
	switch form {
	case Constant:
		kDet = 1
	case ConstantAndTrend:
		kDet = 2
	}

	bestIC := math.Inf(1)
	bestLags := 0
	for p := 1; p <= maxLags; p++ {
		kTotal := kDet + 1 + p
		nObs := n - p - 1
		if nObs < kTotal+10 {
			continue
		}

		y, _, _ := buildDesign(data, p, form)
		var mean float64
		for _, v := range y {
			mean += v
		}
		mean /= float64(len(y))
		var rss float64
		for _, v := range y {
			d := v - mean
			rss += d * d
		}

		ic := math.Log(rss/float64(nObs)) + 2.0*float64(kTotal)/float64(nObs)
		if ic < bestIC {
			bestIC = ic
			bestLags = p
		}
	}
	return bestLags
}

// ADFTest runs the Augmented Dickey-Fuller test with a fixed regression
// form, auto-selecting the lag count via modified AIC when lags is 0.
func ADFTest(data []float64, lags int, form RegressionForm, maxLags int) (ADFResult, error) {
	n := len(data)
	if n < 10 {
		return ADFResult{}, fmt.Errorf("diagnostics: adf test requires at least 10 observations, got %d", n)
	}

	p := lags
	if p == 0 {
		p = selectLags(data, maxLags, form)
	}
	if p >= n/2 {
		return ADFResult{}, fmt.Errorf("diagnostics: too many lags (%d) for sample size %d", p, n)
	}

	kDet := 0
	switch form {
	case Constant:
		kDet = 1
	case ConstantAndTrend:
		kDet = 2
	}
	kTotal := kDet + 1 + p
	nObs := n - p - 1
	if nObs < kTotal+5 {
		return ADFResult{}, fmt.Errorf("diagnostics: insufficient observations for %d lags", p)
	}

	y, x, coefIndex := buildDesign(data, p, form)
	tStat, err := olsTStat(y, x, coefIndex)
	if err != nil {
		return ADFResult{}, err
	}

	cv := criticalValues(n, form)
	pValue := approximatePValue(tStat, cv)

	return ADFResult{
		Statistic:      tStat,
		PValue:         pValue,
		Lags:           p,
		Form:           form,
		CriticalValues: cv,
	}, nil
}

// ADFTestAuto runs the sequential top-down form-selection procedure:
// constant+trend first, falling back to constant-only and then to no
// deterministic terms as the more general forms fail to reject the unit
// root at progressively looser thresholds.
func ADFTestAuto(data []float64, lags, maxLags int) (ADFResult, error) {
	resultCT, err := ADFTest(data, lags, ConstantAndTrend, maxLags)
	if err != nil {
		return ADFResult{}, err
	}
	if resultCT.PValue < 0.05 {
		return resultCT, nil
	}

	resultC, err := ADFTest(data, lags, Constant, maxLags)
	if err != nil {
		return ADFResult{}, err
	}
	if resultC.PValue < 0.10 {
		return resultC, nil
	}

	return ADFTest(data, lags, None, maxLags)
}
