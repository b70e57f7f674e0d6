// Package api exposes a single high-level Engine facade over fitting,
// model selection, forecasting, and simulation — the entry point the
// CLI is built against, so callers never have to
// wire internal/estimation, internal/selection, internal/forecasting,
// and internal/simulation together themselves.
package api

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"arimagarch/internal/diagnostics"
	"arimagarch/internal/estimation"
	"arimagarch/internal/forecasting"
	"arimagarch/internal/models"
	"arimagarch/internal/models/composite"
	"arimagarch/internal/report"
	"arimagarch/internal/selection"
	"arimagarch/internal/simulation"
)

// FitOptions configures a single Engine.Fit call. The zero value selects
// the library's documented defaults.
type FitOptions struct {
	ComputeDiagnostics bool
	Seed               int64
}

// FitResult bundles the model built from the winning parameters with its
// summary so a caller can forecast from model without re-deriving it
// from summary.Parameters.
type FitResult struct {
	Model   *composite.Model
	Summary report.FitSummary
}

// SelectOptions configures an Engine.AutoSelect call. CVMinTrainSize is
// consulted only when Criterion is selection.CriterionCV. TopK, when
// greater than 1, returns up to that many ranked candidates instead of
// just the winner.
type SelectOptions struct {
	Criterion          selection.Criterion
	Seed               int64
	ComputeDiagnostics bool
	CVMinTrainSize     int
	TopK               int
}

// SelectResult bundles the selected model with selection-process
// bookkeeping. Runners-up holds the 2nd..TopK ranked candidates when
// SelectOptions.TopK > 1; it is empty otherwise.
type SelectResult struct {
	FitResult
	CandidatesEvaluated int
	CandidatesFailed    int
	RunnersUp           []FitResult
}

// Engine is the facade used by callers that want fit/select/forecast/
// simulate without wiring the underlying packages together themselves.
type Engine struct{}

// NewEngine constructs an Engine. It carries no configuration of its
// own — every call is parameterized explicitly — so the zero value
// would work equally well; NewEngine exists for symmetry with the rest
// of the library's constructors.
func NewEngine() *Engine {
	return &Engine{}
}

// Fit runs the full estimation pipeline for spec against data:
// heuristic initialization, penalized Nelder-Mead optimization with
// restarts, and (optionally) residual diagnostics, returning a ready-to-
// use model alongside its FitSummary.
func (e *Engine) Fit(data []float64, spec models.ArimaGarchSpec, opts FitOptions) (FitResult, error) {
	if len(data) < 10 {
		return FitResult{}, fmt.Errorf("api: fit requires at least 10 observations, got %d", len(data))
	}
	if err := spec.Validate(); err != nil {
		return FitResult{}, fmt.Errorf("api: %w", err)
	}

	log.Debug().Str("spec", spec.String()).Int("n", len(data)).Msg("starting fit")

	arimaX0, garchX0, err := estimation.InitializeArimaGarchParameters(data, spec)
	if err != nil {
		return FitResult{}, fmt.Errorf("api: initializing parameters: %w", err)
	}
	x0 := estimation.Pack(arimaX0, garchX0)

	fit := estimation.Fit(spec, data, x0, opts.Seed)
	if fit.NLL >= estimation.ConstraintPenalty {
		return FitResult{}, fmt.Errorf("api: optimization failed to find a feasible point for %s", spec)
	}

	params := composite.Parameters{Arima: fit.Arima, Garch: fit.Garch}
	model, err := composite.New(spec, params)
	if err != nil {
		return FitResult{}, fmt.Errorf("api: building fitted model: %w", err)
	}
	for _, yt := range data {
		model.Update(yt)
	}

	message := "converged"
	if !fit.Converged {
		message = "no run met the convergence tolerances"
	}
	summary := report.NewFitSummary(spec, params, fit.NLL, fit.Converged, fit.Iterations, message, len(data))

	if opts.ComputeDiagnostics {
		diag, err := diagnostics.ComputeDiagnostics(spec, params, data, diagnostics.DefaultLjungBoxLags, true)
		if err != nil {
			log.Warn().Err(err).Msg("diagnostics computation failed, returning fit without them")
		} else {
			summary.Diagnostics = &diag
		}
	}

	log.Debug().Float64("nll", fit.NLL).Float64("aic", summary.AIC).Float64("bic", summary.BIC).Msg("fit complete")

	return FitResult{Model: model, Summary: summary}, nil
}

// AutoSelect fits every candidate and returns the one with the lowest
// score under criterion, with diagnostics optionally attached to the
// winner.
func (e *Engine) AutoSelect(data []float64, candidates []models.ArimaGarchSpec, opts SelectOptions) (SelectResult, error) {
	if len(data) < 10 {
		return SelectResult{}, fmt.Errorf("api: auto-select requires at least 10 observations, got %d", len(data))
	}

	log.Debug().Int("candidates", len(candidates)).Msg("starting model selection")

	selector := selection.NewSelector(opts.Criterion, opts.Seed)
	selector.CVConfig = selection.CVConfig{MinTrainSize: opts.CVMinTrainSize, Seed: opts.Seed}

	topK := opts.TopK
	if topK < 1 {
		topK = 1
	}
	ranked, err := selector.SelectTopK(data, candidates, topK, opts.ComputeDiagnostics)
	if err != nil {
		return SelectResult{}, fmt.Errorf("api: %w", err)
	}
	if len(ranked) == 0 {
		return SelectResult{}, fmt.Errorf("api: all %d candidates failed to fit", len(candidates))
	}

	toFitResult := func(r selection.Result) (FitResult, error) {
		model, err := composite.New(r.BestSpec, r.BestParameters)
		if err != nil {
			return FitResult{}, fmt.Errorf("api: building selected model: %w", err)
		}
		for _, yt := range data {
			model.Update(yt)
		}
		summary := r.BestFitSummary
		if summary == nil {
			s := report.NewFitSummary(r.BestSpec, r.BestParameters, 0, true, 0, "selected", len(data))
			summary = &s
		}
		return FitResult{Model: model, Summary: *summary}, nil
	}

	winner, err := toFitResult(ranked[0])
	if err != nil {
		return SelectResult{}, err
	}

	var runnersUp []FitResult
	for _, r := range ranked[1:] {
		fr, err := toFitResult(r)
		if err != nil {
			continue
		}
		runnersUp = append(runnersUp, fr)
	}

	log.Debug().Str("selected", ranked[0].BestSpec.String()).Float64("score", ranked[0].BestScore).
		Int("evaluated", ranked[0].CandidatesEvaluated).Int("failed", ranked[0].CandidatesFailed).
		Msg("model selection complete")

	return SelectResult{
		FitResult:           winner,
		CandidatesEvaluated: ranked[0].CandidatesEvaluated,
		CandidatesFailed:    ranked[0].CandidatesFailed,
		RunnersUp:           runnersUp,
	}, nil
}

// Forecast produces h-step-ahead mean and variance forecasts from a
// fitted model's current state.
func (e *Engine) Forecast(model *composite.Model, horizon int) (forecasting.Result, error) {
	forecaster := forecasting.New(model)
	return forecaster.Forecast(horizon)
}

// Simulate generates a synthetic path from a specification and
// parameter set, independent of any fitted model.
func (e *Engine) Simulate(spec models.ArimaGarchSpec, params composite.Parameters, length int, seed uint64, dist simulation.Distribution, studentTDF float64) (simulation.Result, error) {
	simulator, err := simulation.New(spec, params)
	if err != nil {
		return simulation.Result{}, fmt.Errorf("api: %w", err)
	}
	return simulator.Simulate(length, seed, dist, studentTDF)
}
