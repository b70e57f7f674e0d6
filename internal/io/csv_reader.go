package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	stdio "io"
	"os"
	"strconv"
	"strings"
)

// ReaderOptions configures CSV reading. ValueColumn of -1 means
// "auto-detect the first numeric column on the first data row".
type ReaderOptions struct {
	ValueColumn int
	HasHeader   bool
	Delimiter   rune
}

// DefaultReaderOptions is a single column of values, no header, comma
// delimited.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{ValueColumn: 0, HasHeader: false, Delimiter: ','}
}

// ReadCSVFile reads a time series from a CSV file.
func ReadCSVFile(path string, opts ReaderOptions) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("io: opening csv file %q: %w", path, err)
	}
	defer f.Close()
	return readCSV(f, opts)
}

// ReadCSVString reads a time series from CSV content held in memory.
// Supports a single value column, or a value column alongside an
// ignored date/index column; blank records are skipped, and when
// ValueColumn is negative the first numeric column on the first data
// row is auto-detected and used for every subsequent row.
func ReadCSVString(content string, opts ReaderOptions) ([]float64, error) {
	return readCSV(strings.NewReader(content), opts)
}

func readCSV(r stdio.Reader, opts ReaderOptions) ([]float64, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var values []float64
	lineNumber := 0
	valueColumn := opts.ValueColumn
	needAutoDetect := opts.ValueColumn < 0

	for {
		record, err := reader.Read()
		if errors.Is(err, stdio.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("io: reading csv: %w", err)
		}
		lineNumber++
		if len(record) == 0 {
			continue
		}
		if lineNumber == 1 && opts.HasHeader {
			continue
		}

		if needAutoDetect {
			detected := -1
			for i, col := range record {
				if _, err := strconv.ParseFloat(strings.TrimSpace(col), 64); err == nil {
					detected = i
					break
				}
			}
			if detected < 0 {
				return nil, fmt.Errorf("io: could not auto-detect a numeric column on line %d", lineNumber)
			}
			valueColumn = detected
			needAutoDetect = false
		}

		if valueColumn >= len(record) {
			return nil, fmt.Errorf("io: value column %d out of range on line %d (found %d columns)", valueColumn, lineNumber, len(record))
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueColumn]), 64)
		if err != nil {
			return nil, fmt.Errorf("io: failed to parse value on line %d: %w", lineNumber, err)
		}
		values = append(values, value)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("io: no valid data found in csv")
	}
	return values, nil
}
