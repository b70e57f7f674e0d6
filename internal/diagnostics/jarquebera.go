package diagnostics

import (
	"fmt"

	"arimagarch/internal/stats"
)

// JarqueBeraResult reports the outcome of a Jarque-Bera normality test.
type JarqueBeraResult struct {
	Statistic float64
	PValue    float64
}

// JarqueBeraStatistic computes JB = n/6 * (S^2 + K^2/4) from the sample
// skewness S and excess kurtosis K of data.
func JarqueBeraStatistic(data []float64) (float64, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("diagnostics: cannot compute jarque-bera statistic with fewer than 4 observations")
	}
	s, err := stats.Skewness(data)
	if err != nil {
		return 0, err
	}
	k, err := stats.Kurtosis(data)
	if err != nil {
		return 0, err
	}
	n := float64(len(data))
	jb := (n / 6) * (s*s + (k*k)/4)
	return jb, nil
}

// JarqueBeraTest runs the full test; the statistic is asymptotically
// chi-square with 2 degrees of freedom under the null of normality.
func JarqueBeraTest(data []float64) (JarqueBeraResult, error) {
	jb, err := JarqueBeraStatistic(data)
	if err != nil {
		return JarqueBeraResult{}, err
	}
	pValue, err := ChiSquareCCDF(jb, 2)
	if err != nil {
		return JarqueBeraResult{}, err
	}
	return JarqueBeraResult{Statistic: jb, PValue: pValue}, nil
}
