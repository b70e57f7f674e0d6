package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arimagarch/internal/api"
	"arimagarch/internal/io"
	"arimagarch/internal/report"
	"arimagarch/internal/selection"
)

func newSelectCmd() *cobra.Command {
	var (
		maxP, maxD, maxQ     int
		maxPGarch, maxQGarch int
		criterionName        string
		output               string
		noHeader             bool
		seed                 int64
		withStats            bool
		topK                 int
		minTrainSize         int
	)

	cmd := &cobra.Command{
		Use:   "select <data.csv>",
		Short: "Search a candidate grid and fit the best-scoring ARIMA-GARCH model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criterion, err := parseCriterion(criterionName)
			if err != nil {
				return err
			}

			grid := selection.GridConfig{
				MaxP: maxP, MaxD: maxD, MaxQ: maxQ,
				MaxPGarch: maxPGarch, MaxQGarch: maxQGarch,
			}
			candidates, err := selection.Generate(grid)
			if err != nil {
				return err
			}

			opts := io.DefaultReaderOptions()
			opts.HasHeader = !noHeader
			opts.ValueColumn = -1
			data, err := io.ReadCSVFile(args[0], opts)
			if err != nil {
				return err
			}

			engine := api.NewEngine()
			result, err := engine.AutoSelect(data, candidates, api.SelectOptions{
				Criterion:          criterion,
				Seed:               seed,
				ComputeDiagnostics: withStats,
				CVMinTrainSize:     minTrainSize,
				TopK:               topK,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Evaluated %d candidates (%d failed)\n\n", result.CandidatesEvaluated, result.CandidatesFailed)
			fmt.Print(report.GenerateTextReport(result.Summary))

			for i, runnerUp := range result.RunnersUp {
				fmt.Printf("\nRunner-up #%d:\n", i+2)
				fmt.Print(report.GenerateTextReport(runnerUp.Summary))
			}

			if output != "" {
				doc := io.NewModelDocument(result.Summary.Spec, result.Summary.Parameters, io.Metadata{ModelType: "ArimaGarch"})
				if err := io.SaveModel(output, doc); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxP, "max-p", 2, "maximum ARIMA AR order to consider")
	cmd.Flags().IntVar(&maxD, "max-d", 1, "maximum differencing order to consider")
	cmd.Flags().IntVar(&maxQ, "max-q", 2, "maximum ARIMA MA order to consider")
	cmd.Flags().IntVar(&maxPGarch, "max-p-garch", 1, "maximum GARCH order to consider")
	cmd.Flags().IntVar(&maxQGarch, "max-q-garch", 1, "maximum ARCH order to consider")
	cmd.Flags().StringVarP(&criterionName, "criterion", "c", "BIC", "ranking criterion: AIC, BIC, AICc, or CV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save the selected model to this JSON file")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first CSV row as data, not a header")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 42, "optimizer restart RNG seed")
	cmd.Flags().BoolVar(&withStats, "stats", true, "compute residual diagnostics for the winner")
	cmd.Flags().IntVar(&topK, "top-k", 1, "report the k best-scoring candidates instead of only the winner")
	cmd.Flags().IntVar(&minTrainSize, "min-train-size", 0, "initial training window size, used only with --criterion CV")

	return cmd
}

func parseCriterion(name string) (selection.Criterion, error) {
	switch name {
	case "AIC":
		return selection.CriterionAIC, nil
	case "BIC":
		return selection.CriterionBIC, nil
	case "AICc":
		return selection.CriterionAICc, nil
	case "CV":
		return selection.CriterionCV, nil
	default:
		return 0, fmt.Errorf("--criterion: unknown criterion %q, expected one of AIC, BIC, AICc, CV", name)
	}
}
