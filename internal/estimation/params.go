package estimation

import (
	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/garch"
)

// Pack flattens an ARIMA/GARCH parameter pair into a single vector in the
// order the optimizer works over: [intercept, ar_1..ar_p, ma_1..ma_q,
// omega, alpha_1..alpha_q, beta_1..beta_p].
func Pack(arimaParams arima.Parameters, garchParams garch.Parameters) []float64 {
	x := make([]float64, 0, 1+len(arimaParams.AR)+len(arimaParams.MA)+1+len(garchParams.Alpha)+len(garchParams.Beta))
	x = append(x, arimaParams.Intercept)
	x = append(x, arimaParams.AR...)
	x = append(x, arimaParams.MA...)
	x = append(x, garchParams.Omega)
	x = append(x, garchParams.Alpha...)
	x = append(x, garchParams.Beta...)
	return x
}

// Unpack reverses Pack given the spec's orders, slicing x back into an
// ARIMA parameter set and a GARCH parameter set.
func Unpack(spec models.ArimaGarchSpec, x []float64) (arima.Parameters, garch.Parameters) {
	p, d, q := spec.Arima.P, spec.Arima.D, spec.Arima.Q
	_ = d
	gp, gq := spec.Garch.P, spec.Garch.Q

	i := 0
	arimaParams := arima.Parameters{Intercept: x[i]}
	i++
	arimaParams.AR = append([]float64(nil), x[i:i+p]...)
	i += p
	arimaParams.MA = append([]float64(nil), x[i:i+q]...)
	i += q

	garchParams := garch.Parameters{Omega: x[i]}
	i++
	garchParams.Alpha = append([]float64(nil), x[i:i+gq]...)
	i += gq
	garchParams.Beta = append([]float64(nil), x[i:i+gp]...)
	i += gp

	return arimaParams, garchParams
}
