package estimation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/garch"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	spec := models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 2, D: 1, Q: 1},
		Garch: models.GarchSpec{P: 1, Q: 2},
	}
	arimaParams := arima.Parameters{Intercept: 0.5, AR: []float64{0.1, 0.2}, MA: []float64{0.3}}
	garchParams := garch.Parameters{Omega: 0.05, Alpha: []float64{0.1, 0.05}, Beta: []float64{0.8}}

	x := Pack(arimaParams, garchParams)
	assert.Len(t, x, 1+2+1+1+2+1)

	gotArima, gotGarch := Unpack(spec, x)
	assert.Equal(t, arimaParams, gotArima)
	assert.Equal(t, garchParams, gotGarch)
}

func TestPack_OrdersFieldsAsDocumented(t *testing.T) {
	arimaParams := arima.Parameters{Intercept: 1, AR: []float64{2, 3}, MA: []float64{4}}
	garchParams := garch.Parameters{Omega: 5, Alpha: []float64{6}, Beta: []float64{7, 8}}

	x := Pack(arimaParams, garchParams)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, x)
}
