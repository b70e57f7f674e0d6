package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"arimagarch/internal/models"
	"arimagarch/internal/report"
)

func TestSelect_RejectsEmptyData(t *testing.T) {
	sel := NewSelector(CriterionBIC, 1)
	_, _, err := sel.Select(nil, []models.ArimaGarchSpec{{Garch: models.GarchSpec{P: 1, Q: 1}}}, false)
	assert.Error(t, err)
}

func TestSelect_RejectsEmptyCandidates(t *testing.T) {
	sel := NewSelector(CriterionBIC, 1)
	_, _, err := sel.Select([]float64{1, 2, 3}, nil, false)
	assert.Error(t, err)
}

func TestExtractScore_DispatchesOnCriterion(t *testing.T) {
	spec := models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 1, D: 0, Q: 0},
		Garch: models.GarchSpec{P: 1, Q: 1},
	}
	summary := report.FitSummary{
		Spec:             spec,
		NegLogLikelihood: 50,
		SampleSize:       100,
	}

	bicSel := &Selector{Criterion: CriterionBIC}
	aicSel := &Selector{Criterion: CriterionAIC}
	aiccSel := &Selector{Criterion: CriterionAICc}

	k := spec.ParamCount()
	logLik := -summary.NegLogLikelihood

	assert.InDelta(t, BIC(logLik, k, 100), bicSel.extractScore(summary), 1e-9)
	assert.InDelta(t, AIC(logLik, k), aicSel.extractScore(summary), 1e-9)
	expectedAICc, err := AICc(logLik, k, 100)
	assert.NoError(t, err)
	assert.InDelta(t, expectedAICc, aiccSel.extractScore(summary), 1e-9)
}

func TestExtractScore_AICcFallsBackToAICWhenSampleTooSmall(t *testing.T) {
	spec := models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 2, D: 0, Q: 2},
		Garch: models.GarchSpec{P: 1, Q: 1},
	}
	summary := report.FitSummary{
		Spec:             spec,
		NegLogLikelihood: 10,
		SampleSize:       spec.ParamCount(), // too small for AICc
	}
	sel := &Selector{Criterion: CriterionAICc}
	logLik := -summary.NegLogLikelihood
	expected := AIC(logLik, spec.ParamCount())
	assert.InDelta(t, expected, sel.extractScore(summary), 1e-9)
}

func TestIsFiniteScore_RejectsNaNAndInf(t *testing.T) {
	assert.False(t, isFiniteScore(math.Inf(1)))
	assert.False(t, isFiniteScore(math.NaN()))
	assert.True(t, isFiniteScore(123.45))
}

func selectorTestSeries(n int) []float64 {
	data := make([]float64, n)
	prev := 0.0
	for i := range data {
		prev = 0.4*prev + 0.01*float64(i%7-3)
		data[i] = prev
	}
	return data
}

func TestSelectTopK_RejectsNonPositiveK(t *testing.T) {
	sel := NewSelector(CriterionBIC, 1)
	candidates := []models.ArimaGarchSpec{{Garch: models.GarchSpec{P: 1, Q: 1}}}
	_, err := sel.SelectTopK(selectorTestSeries(40), candidates, 0, false)
	assert.Error(t, err)
}

func TestSelectTopK_ReturnsRankedCandidatesAscendingByScore(t *testing.T) {
	sel := NewSelector(CriterionBIC, 1)
	candidates := []models.ArimaGarchSpec{
		{Arima: models.ArimaSpec{P: 1}, Garch: models.GarchSpec{P: 1, Q: 1}},
		{Arima: models.ArimaSpec{P: 2}, Garch: models.GarchSpec{P: 1, Q: 1}},
	}
	results, err := sel.SelectTopK(selectorTestSeries(60), candidates, 2, false)
	assert.NoError(t, err)
	if assert.LessOrEqual(t, 1, len(results)) && len(results) == 2 {
		assert.LessOrEqual(t, results[0].BestScore, results[1].BestScore)
	}
}

func TestSelectTopK_CapsAtSuccessfulCandidateCount(t *testing.T) {
	sel := NewSelector(CriterionBIC, 1)
	candidates := []models.ArimaGarchSpec{{Arima: models.ArimaSpec{P: 1}, Garch: models.GarchSpec{P: 1, Q: 1}}}
	results, err := sel.SelectTopK(selectorTestSeries(60), candidates, 5, false)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(results), 1)
}

func TestScoreCandidate_CVUsesCrossValidationMSE(t *testing.T) {
	data := selectorTestSeries(40)
	spec := models.ArimaGarchSpec{Arima: models.ArimaSpec{P: 1}, Garch: models.GarchSpec{P: 1, Q: 1}}
	sel := &Selector{Criterion: CriterionCV, CVConfig: CVConfig{MinTrainSize: 30, Seed: 1}}

	summary, ok := sel.fitAndScore(data, spec)
	if !ok {
		t.Skip("candidate did not converge for this synthetic series")
	}
	score, ok := sel.scoreCandidate(data, spec, summary)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, score, 0.0)
}
