package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arimagarch/internal/api"
	"arimagarch/internal/io"
	"arimagarch/internal/report"
)

func newFitCmd() *cobra.Command {
	var (
		order      string
		garchOrder string
		output     string
		noHeader   bool
		seed       int64
		withStats  bool
	)

	cmd := &cobra.Command{
		Use:   "fit <data.csv>",
		Short: "Fit an ARIMA-GARCH model to a time series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := parseArimaGarchSpec(order, garchOrder)
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
			result, err := engine.Fit(data, spec, api.FitOptions{ComputeDiagnostics: withStats, Seed: seed})
			if err != nil {
				return err
			}

			text := report.GenerateTextReport(result.Summary)
			fmt.Print(text)

			if output != "" {
				doc := io.NewModelDocument(spec, result.Summary.Parameters, io.Metadata{ModelType: "ArimaGarch"})
				if err := io.SaveModel(output, doc); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&order, "order", "1,0,1", "ARIMA order p,d,q")
	cmd.Flags().StringVar(&garchOrder, "garch-order", "1,1", "GARCH order P,Q")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save the fitted model to this JSON file")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first CSV row as data, not a header")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 42, "optimizer restart RNG seed")
	cmd.Flags().BoolVar(&withStats, "stats", true, "compute residual diagnostics")

	return cmd
}
