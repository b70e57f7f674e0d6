package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arimagarch/internal/models"
)

func cvTestSpec() models.ArimaGarchSpec {
	return models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 1, D: 0, Q: 0},
		Garch: models.GarchSpec{P: 1, Q: 1},
	}
}

func TestCrossValidationScore_RejectsMinTrainSizeOutOfRange(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	_, ok, err := CrossValidationScore(data, cvTestSpec(), CVConfig{MinTrainSize: 0})
	assert.Error(t, err)
	assert.False(t, ok)

	_, ok, err = CrossValidationScore(data, cvTestSpec(), CVConfig{MinTrainSize: len(data)})
	assert.Error(t, err)
	assert.False(t, ok)
}
