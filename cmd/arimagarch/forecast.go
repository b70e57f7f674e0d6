package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"arimagarch/internal/api"
	"arimagarch/internal/io"
	"arimagarch/internal/models/composite"
)

func newForecastCmd() *cobra.Command {
	var (
		horizon  int
		output   string
		noHeader bool
	)

	cmd := &cobra.Command{
		Use:   "forecast <model.json>",
		Short: "Forecast mean and variance from a saved model, starting from a fresh filter state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := io.LoadModel(args[0])
			if err != nil {
				return err
			}
			spec := doc.ToSpec()
			params := doc.ToParameters()

			model, err := composite.New(spec, params)
			if err != nil {
				return fmt.Errorf("forecast: rebuilding model: %w", err)
			}

			engine := api.NewEngine()
			result, err := engine.Forecast(model, horizon)
			if err != nil {
				return err
			}

			if output != "" {
				return io.WriteForecastCSV(output, result.MeanForecasts, result.VarianceForecasts)
			}

			if !noHeader {
				fmt.Println("step,mean,variance,std_dev")
			}
			for i := range result.MeanForecasts {
				variance := result.VarianceForecasts[i]
				fmt.Printf("%d,%.6f,%.6f,%.6f\n", i+1, result.MeanForecasts[i], variance, math.Sqrt(variance))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&horizon, "horizon", "n", 1, "number of steps to forecast ahead")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the forecast to this CSV file instead of standard output")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the CSV header when printing to standard output")

	return cmd
}
