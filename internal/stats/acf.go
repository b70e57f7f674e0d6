package stats

import "fmt"

// ACF returns the sample autocorrelation function at lags 0..maxLag,
// ACF[0] always 1. A constant series (zero variance) returns 1 at lag 0
// and 0 elsewhere rather than dividing by zero.
func ACF(data []float64, maxLag int) ([]float64, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("stats: cannot compute acf of empty data")
	}
	if maxLag >= n {
		return nil, fmt.Errorf("stats: max_lag %d must be less than data size %d", maxLag, n)
	}

	mean, _ := Mean(data)
	var variance float64
	for _, v := range data {
		d := v - mean
		variance += d * d
	}

	result := make([]float64, maxLag+1)
	result[0] = 1.0
	if variance == 0 {
		return result, nil
	}

	for lag := 1; lag <= maxLag; lag++ {
		var autocov float64
		for i := 0; i < n-lag; i++ {
			autocov += (data[i] - mean) * (data[i+lag] - mean)
		}
		result[lag] = autocov / variance
	}
	return result, nil
}

// ACFAtLag returns the sample autocorrelation at a single lag.
func ACFAtLag(data []float64, lag int) (float64, error) {
	values, err := ACF(data, lag)
	if err != nil {
		return 0, err
	}
	return values[lag], nil
}
