package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"arimagarch/internal/models"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "arimagarch",
		Short:         "Fit, select, forecast, diagnose, and simulate ARIMA-GARCH models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFitCmd())
	root.AddCommand(newSelectCmd())
	root.AddCommand(newForecastCmd())
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newDiagnosticsCmd())

	return root
}

// parseOrders parses a "p,d,q" or "p,q" triple/pair of non-negative
// integers.
func parseOrders(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated integers, got %q", n, s)
	}
	orders := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in %q: %w", p, s, err)
		}
		orders[i] = v
	}
	return orders, nil
}

func parseArimaGarchSpec(arimaOrders, garchOrders string) (models.ArimaGarchSpec, error) {
	pdq, err := parseOrders(arimaOrders, 3)
	if err != nil {
		return models.ArimaGarchSpec{}, fmt.Errorf("--order: %w", err)
	}
	pq, err := parseOrders(garchOrders, 2)
	if err != nil {
		return models.ArimaGarchSpec{}, fmt.Errorf("--garch-order: %w", err)
	}
	spec := models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: pdq[0], D: pdq[1], Q: pdq[2]},
		Garch: models.GarchSpec{P: pq[0], Q: pq[1]},
	}
	if err := spec.Validate(); err != nil {
		return models.ArimaGarchSpec{}, err
	}
	return spec, nil
}
