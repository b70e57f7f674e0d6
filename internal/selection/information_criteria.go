package selection

import (
	"fmt"
	"math"
)

// AIC computes the Akaike Information Criterion: 2k - 2*logLik. logLik
// is the actual log-likelihood, not its negation — pass -NLL if that is
// what's on hand.
func AIC(logLik float64, k int) float64 {
	return 2*float64(k) - 2*logLik
}

// BIC computes the Bayesian Information Criterion: k*log(n) - 2*logLik.
// BIC penalizes model complexity more heavily than AIC, especially for
// larger sample sizes.
func BIC(logLik float64, k, n int) float64 {
	return float64(k)*math.Log(float64(n)) - 2*logLik
}

// AICc computes the small-sample-corrected AIC: AIC + 2k(k+1)/(n-k-1).
// As n grows, AICc converges to AIC; for n/k < 40 AICc is the
// recommended criterion. Requires n > k+1.
func AICc(logLik float64, k, n int) (float64, error) {
	if n <= k+1 {
		return 0, fmt.Errorf("selection: aicc requires n > k+1, got n=%d k=%d", n, k)
	}
	aic := AIC(logLik, k)
	nf, kf := float64(n), float64(k)
	correction := (2 * kf * (kf + 1)) / (nf - kf - 1)
	return aic + correction, nil
}
