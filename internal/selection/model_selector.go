package selection

import (
	"fmt"
	"sort"
	"sync"

	"arimagarch/internal/diagnostics"
	"arimagarch/internal/estimation"
	"arimagarch/internal/models"
	"arimagarch/internal/models/composite"
	"arimagarch/internal/report"
)

// Criterion names the information criterion a ModelSelector ranks
// candidates by.
type Criterion int

const (
	// CriterionBIC penalizes complexity most heavily; the default.
	CriterionBIC Criterion = iota
	CriterionAIC
	CriterionAICc
	// CriterionCV scores candidates by rolling-origin cross-validation
	// MSE instead of an in-sample information criterion. Requires
	// Selector.CVConfig.MinTrainSize to be set.
	CriterionCV
)

// Result is the outcome of selecting among a set of candidates: the
// winning specification, its score under the chosen criterion, its
// fitted parameters, and bookkeeping about how many candidates were
// tried and how many failed to fit.
type Result struct {
	BestSpec             models.ArimaGarchSpec
	BestScore            float64
	BestParameters       composite.Parameters
	BestFitSummary       *report.FitSummary
	CandidatesEvaluated  int
	CandidatesFailed     int
}

// Selector fits every candidate in a grid to a series and keeps the one
// that scores best under its configured criterion. Candidates that fail
// to fit (non-finite likelihood, invalid dimensions) are skipped rather
// than aborting the whole search.
type Selector struct {
	Criterion Criterion
	Seed      int64
	// CVConfig is consulted only when Criterion is CriterionCV.
	CVConfig CVConfig
}

// NewSelector constructs a Selector with the given criterion and a fixed
// seed for every candidate's Nelder-Mead restarts, so a selection run is
// reproducible.
func NewSelector(criterion Criterion, seed int64) *Selector {
	return &Selector{Criterion: criterion, Seed: seed}
}

// candidateScore is the outcome of fitting one candidate: either a score
// and its fit summary, or a failure.
type candidateScore struct {
	index   int
	summary report.FitSummary
	score   float64
	ok      bool
}

// Select fits every candidate concurrently and returns the lowest-scoring
// one under the selector's criterion. When computeDiagnostics is set, the
// winning model's FitSummary carries a populated Diagnostics field.
// Returns an error only if candidates is empty or data is empty; a
// candidate set that entirely fails to fit returns ok=false.
func (s *Selector) Select(data []float64, candidates []models.ArimaGarchSpec, computeDiagnostics bool) (Result, bool, error) {
	ranked, evaluated, failed, err := s.rank(data, candidates)
	if err != nil {
		return Result{}, false, err
	}
	if len(ranked) == 0 {
		return Result{CandidatesEvaluated: evaluated, CandidatesFailed: failed}, false, nil
	}

	best := ranked[0]
	result := Result{
		BestSpec:            best.summary.Spec,
		BestScore:           best.score,
		BestParameters:      best.summary.Parameters,
		CandidatesEvaluated: evaluated,
		CandidatesFailed:    failed,
	}

	if computeDiagnostics {
		diag, err := diagnostics.ComputeDiagnostics(result.BestSpec, result.BestParameters, data, diagnostics.DefaultLjungBoxLags, true)
		if err == nil {
			summary := best.summary
			summary.Diagnostics = &diag
			result.BestFitSummary = &summary
		}
	}

	return result, true, nil
}

// SelectTopK behaves like Select but returns up to k candidates ordered
// best-to-worst under the selector's criterion, instead of only the
// single winner. Diagnostics, when requested, are computed only for the
// top-ranked candidate (index 0), matching Select's behavior.
func (s *Selector) SelectTopK(data []float64, candidates []models.ArimaGarchSpec, k int, computeDiagnostics bool) ([]Result, error) {
	if k <= 0 {
		return nil, fmt.Errorf("selection: top-k must be positive, got %d", k)
	}
	ranked, evaluated, failed, err := s.rank(data, candidates)
	if err != nil {
		return nil, err
	}

	n := k
	if len(ranked) < n {
		n = len(ranked)
	}

	results := make([]Result, n)
	for i := 0; i < n; i++ {
		summary := ranked[i].summary
		results[i] = Result{
			BestSpec:            ranked[i].summary.Spec,
			BestScore:           ranked[i].score,
			BestParameters:      ranked[i].summary.Parameters,
			BestFitSummary:      &summary,
			CandidatesEvaluated: evaluated,
			CandidatesFailed:    failed,
		}
	}

	if computeDiagnostics && n > 0 {
		diag, err := diagnostics.ComputeDiagnostics(results[0].BestSpec, results[0].BestParameters, data, diagnostics.DefaultLjungBoxLags, true)
		if err == nil {
			results[0].BestFitSummary.Diagnostics = &diag
		}
	}

	return results, nil
}

// rank fits every candidate concurrently and returns the successfully-fit
// ones sorted best-to-worst under the selector's criterion, alongside how
// many candidates were evaluated and how many failed to fit.
func (s *Selector) rank(data []float64, candidates []models.ArimaGarchSpec) ([]candidateScore, int, int, error) {
	if len(data) == 0 {
		return nil, 0, 0, fmt.Errorf("selection: data must be non-empty")
	}
	if len(candidates) == 0 {
		return nil, 0, 0, fmt.Errorf("selection: candidates must be non-empty")
	}

	scores := make([]candidateScore, len(candidates))

	const maxWorkers = 8
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, spec := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, spec models.ArimaGarchSpec) {
			defer wg.Done()
			defer func() { <-sem }()
			summary, ok := s.fitAndScore(data, spec)
			if !ok {
				scores[i] = candidateScore{index: i, ok: false}
				return
			}
			score, ok := s.scoreCandidate(data, spec, summary)
			scores[i] = candidateScore{index: i, summary: summary, score: score, ok: ok}
		}(i, spec)
	}
	wg.Wait()

	var successful []candidateScore
	failed := 0
	for _, cs := range scores {
		if !cs.ok {
			failed++
			continue
		}
		successful = append(successful, cs)
	}

	// Stable sort by score, ties broken by original candidate-grid
	// order (not completion order), independent of goroutine scheduling.
	sort.SliceStable(successful, func(i, j int) bool {
		return successful[i].score < successful[j].score
	})

	return successful, len(candidates), failed, nil
}

// fitAndScore fits a single candidate and builds its FitSummary. ok is
// false if fitting failed (non-finite NLL, invalid spec dimensions).
func (s *Selector) fitAndScore(data []float64, spec models.ArimaGarchSpec) (report.FitSummary, bool) {
	if err := spec.Validate(); err != nil {
		return report.FitSummary{}, false
	}

	arimaX0, garchX0, err := estimation.InitializeArimaGarchParameters(data, spec)
	if err != nil {
		return report.FitSummary{}, false
	}
	x0 := estimation.Pack(arimaX0, garchX0)

	fit := estimation.Fit(spec, data, x0, s.Seed)
	if !isFiniteScore(fit.NLL) || fit.NLL >= estimation.ConstraintPenalty {
		return report.FitSummary{}, false
	}

	params := composite.Parameters{Arima: fit.Arima, Garch: fit.Garch}
	message := "converged"
	if !fit.Converged {
		message = "no run met the convergence tolerances"
	}
	summary := report.NewFitSummary(spec, params, fit.NLL, fit.Converged, fit.Iterations, message, len(data))
	return summary, true
}

// scoreCandidate computes a candidate's selection score. For CriterionCV
// it runs rolling-origin cross-validation (refitting per window); for
// every other criterion it reduces to the in-sample extractScore.
func (s *Selector) scoreCandidate(data []float64, spec models.ArimaGarchSpec, summary report.FitSummary) (float64, bool) {
	if s.Criterion != CriterionCV {
		return s.extractScore(summary), true
	}
	cv, ok, err := CrossValidationScore(data, spec, s.CVConfig)
	if err != nil || !ok {
		return 0, false
	}
	return cv.MSE, true
}

func (s *Selector) extractScore(summary report.FitSummary) float64 {
	logLik := -summary.NegLogLikelihood
	k := summary.Spec.ParamCount()
	n := summary.SampleSize
	switch s.Criterion {
	case CriterionAIC:
		return AIC(logLik, k)
	case CriterionAICc:
		score, err := AICc(logLik, k, n)
		if err != nil {
			return AIC(logLik, k)
		}
		return score
	default:
		return BIC(logLik, k, n)
	}
}

func isFiniteScore(x float64) bool {
	return x == x && x < 1e300 && x > -1e300
}
