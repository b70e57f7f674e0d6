package io

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"arimagarch/internal/simulation"
)

// WriterOptions configures CSV writing.
type WriterOptions struct {
	ValueHeader string   // column header for the values column; empty means no header row
	IndexColumn []string // optional date/index labels, one per value
	IndexHeader string
	Delimiter   rune
	Precision   int // decimal places; -1 for shortest round-trippable representation
}

// DefaultWriterOptions is a single unlabeled column, comma delimited,
// six decimal places.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{Delimiter: ',', Precision: 6}
}

// WriteCSVFile writes a time series to a CSV file.
func WriteCSVFile(path string, values []float64, opts WriterOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("io: creating csv file %q: %w", path, err)
	}
	defer f.Close()
	return writeCSV(f, values, opts)
}

func writeCSV(f *os.File, values []float64, opts WriterOptions) error {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if len(opts.IndexColumn) != 0 && len(opts.IndexColumn) != len(values) {
		return fmt.Errorf("io: index column length (%d) must match value count (%d)", len(opts.IndexColumn), len(values))
	}

	writer := csv.NewWriter(f)
	writer.Comma = opts.Delimiter

	hasIndex := len(opts.IndexColumn) != 0

	if opts.ValueHeader != "" || (hasIndex && opts.IndexHeader != "") {
		header := []string{}
		if hasIndex {
			header = append(header, opts.IndexHeader)
		}
		header = append(header, opts.ValueHeader)
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("io: writing csv header: %w", err)
		}
	}

	for i, v := range values {
		record := []string{}
		if hasIndex {
			record = append(record, opts.IndexColumn[i])
		}
		record = append(record, formatValue(v, opts.Precision))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("io: writing csv row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("io: flushing csv: %w", err)
	}
	return nil
}

func formatValue(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// WriteForecastCSV writes a forecast report with header
// "step,mean,variance,std_dev", one row per horizon step.
func WriteForecastCSV(path string, meanForecasts, varianceForecasts []float64) error {
	if len(meanForecasts) != len(varianceForecasts) {
		return fmt.Errorf("io: mean and variance forecast lengths differ (%d vs %d)", len(meanForecasts), len(varianceForecasts))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("io: creating forecast csv %q: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"step", "mean", "variance", "std_dev"}); err != nil {
		return fmt.Errorf("io: writing forecast csv header: %w", err)
	}
	for i := range meanForecasts {
		record := []string{
			strconv.Itoa(i + 1),
			formatValue(meanForecasts[i], 6),
			formatValue(varianceForecasts[i], 6),
			formatValue(math.Sqrt(varianceForecasts[i]), 6),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("io: writing forecast csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSimulationCSV writes a multi-path simulation report with header
// "path,observation,return,volatility". paths[i] holds the i-th
// simulated path, 0-indexed; each path's rows are 1-indexed by
// observation.
func WriteSimulationCSV(path string, paths []simulation.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("io: creating simulation csv %q: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"path", "observation", "return", "volatility"}); err != nil {
		return fmt.Errorf("io: writing simulation csv header: %w", err)
	}
	for p, result := range paths {
		if len(result.Returns) != len(result.Volatilities) {
			return fmt.Errorf("io: path %d: returns and volatilities lengths differ (%d vs %d)", p, len(result.Returns), len(result.Volatilities))
		}
		for i := range result.Returns {
			record := []string{
				strconv.Itoa(p),
				strconv.Itoa(i + 1),
				formatValue(result.Returns[i], 6),
				formatValue(result.Volatilities[i], 6),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("io: writing simulation csv row %d: %w", i, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
