package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arimagarch/internal/api"
	"arimagarch/internal/diagnostics"
	"arimagarch/internal/io"
)

func newDiagnosticsCmd() *cobra.Command {
	var (
		order      string
		garchOrder string
		lags       int
		withADF    bool
		output     string
		noHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "diagnostics <data.csv>",
		Short: "Fit a model and report residual-adequacy diagnostics",
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
			fitResult, err := engine.Fit(data, spec, api.FitOptions{ComputeDiagnostics: false})
			if err != nil {
				return err
			}
			params := fitResult.Summary.Parameters

			report, err := diagnostics.ComputeDiagnostics(spec, params, data, lags, withADF)
			if err != nil {
				return err
			}

			printDiagnosticsReport(report)

			if output != "" {
				doc := diagnosticsDocument(report)
				if err := io.SaveDiagnostics(output, doc); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&order, "order", "1,0,1", "ARIMA order p,d,q")
	cmd.Flags().StringVar(&garchOrder, "garch-order", "1,1", "GARCH order P,Q")
	cmd.Flags().IntVar(&lags, "lags", diagnostics.DefaultLjungBoxLags, "number of lags for the Ljung-Box tests")
	cmd.Flags().BoolVar(&withADF, "adf", false, "include an ADF stationarity test on the residuals")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the diagnostics report to this JSON file")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first CSV row as data, not a header")

	return cmd
}

func printDiagnosticsReport(report diagnostics.Report) {
	lb := report.LjungBoxResiduals
	fmt.Printf("Ljung-Box (residuals):         Q=%.4f  p=%.4f  dof=%d\n", lb.Statistic, lb.PValue, lb.DOF)
	lbSq := report.LjungBoxSquared
	fmt.Printf("Ljung-Box (squared residuals): Q=%.4f  p=%.4f  dof=%d\n", lbSq.Statistic, lbSq.PValue, lbSq.DOF)
	jb := report.JarqueBera
	fmt.Printf("Jarque-Bera:                    JB=%.4f  p=%.4f\n", jb.Statistic, jb.PValue)
	if report.ADF != nil {
		fmt.Printf("ADF:                            stat=%.4f  p=%.4f  lags=%d\n", report.ADF.Statistic, report.ADF.PValue, report.ADF.Lags)
	}
}

func diagnosticsDocument(report diagnostics.Report) io.DiagnosticsDocument {
	doc := io.DiagnosticsDocument{
		LjungBoxResidualsStat: report.LjungBoxResiduals.Statistic,
		LjungBoxResidualsP:    report.LjungBoxResiduals.PValue,
		LjungBoxSquaredStat:   report.LjungBoxSquared.Statistic,
		LjungBoxSquaredP:      report.LjungBoxSquared.PValue,
		JarqueBeraStat:        report.JarqueBera.Statistic,
		JarqueBeraP:           report.JarqueBera.PValue,
	}
	if report.ADF != nil {
		doc.ADFStatistic = &report.ADF.Statistic
		doc.ADFPValue = &report.ADF.PValue
	}
	return doc
}
