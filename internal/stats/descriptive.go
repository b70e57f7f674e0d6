// Package stats provides descriptive moments and autocorrelation
// diagnostics over a float64 series: mean, bias-corrected variance,
// Fisher-Pearson skewness/kurtosis, and the ACF/PACF pair used to seed
// ARIMA parameter initialization.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Mean returns the arithmetic mean of data.
func Mean(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("stats: cannot compute mean of empty data")
	}
	return floats.Sum(data) / float64(len(data)), nil
}

// Variance returns the bias-corrected (n-1) sample variance of data.
func Variance(data []float64) (float64, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("stats: variance requires at least 2 observations, got %d", len(data))
	}
	m, _ := Mean(data)
	var ss float64
	for _, v := range data {
		d := v - m
		ss += d * d
	}
	n := float64(len(data))
	return ss / (n - 1), nil
}

// Skewness returns the bias-corrected Fisher-Pearson sample skewness (G1).
func Skewness(data []float64) (float64, error) {
	if len(data) < 3 {
		return 0, fmt.Errorf("stats: skewness requires at least 3 observations, got %d", len(data))
	}
	m, _ := Mean(data)
	n := float64(len(data))

	var m2, m3 float64
	for _, v := range data {
		d := v - m
		d2 := d * d
		m2 += d2
		m3 += d2 * d
	}
	m2 /= n
	m3 /= n

	std := math.Sqrt(m2)
	if std == 0 {
		return 0, nil
	}
	g1 := m3 / (std * std * std)
	adjustment := math.Sqrt(n*(n-1)) / (n - 2)
	return g1 * adjustment, nil
}

// Kurtosis returns the bias-corrected sample excess kurtosis (G2).
func Kurtosis(data []float64) (float64, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("stats: kurtosis requires at least 4 observations, got %d", len(data))
	}
	m, _ := Mean(data)
	n := float64(len(data))

	var m2, m4 float64
	for _, v := range data {
		d := v - m
		d2 := d * d
		m2 += d2
		m4 += d2 * d2
	}
	m2 /= n
	m4 /= n

	if m2 == 0 {
		return 0, nil
	}
	kurt := m4 / (m2 * m2)
	adjustment := ((n - 1) / ((n - 2) * (n - 3))) * ((n+1)*kurt - 3*(n-1))
	return adjustment, nil
}
