package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/composite"
	"arimagarch/internal/models/garch"
)

func jsonTestSpecParams() (models.ArimaGarchSpec, composite.Parameters) {
	spec := models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: 1, D: 0, Q: 1},
		Garch: models.GarchSpec{P: 1, Q: 1},
	}
	params := composite.Parameters{
		Arima: arima.Parameters{Intercept: 0.25, AR: []float64{0.4}, MA: []float64{-0.1}},
		Garch: garch.Parameters{Omega: 0.02, Alpha: []float64{0.1}, Beta: []float64{0.8}},
	}
	return spec, params
}

func TestNewModelDocument_RoundTripsSpecAndParameters(t *testing.T) {
	spec, params := jsonTestSpecParams()
	doc := NewModelDocument(spec, params, Metadata{Version: "test"})

	assert.Equal(t, spec, doc.ToSpec())
	assert.Equal(t, params, doc.ToParameters())
}

func TestSaveLoadModel_RoundTripsThroughDisk(t *testing.T) {
	spec, params := jsonTestSpecParams()
	doc := NewModelDocument(spec, params, Metadata{Timestamp: "2026-01-01", Version: "1.0", ModelType: "arima-garch"})

	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, SaveModel(path, doc))

	loaded, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
	assert.Equal(t, spec, loaded.ToSpec())
	assert.Equal(t, params, loaded.ToParameters())
}

func TestLoadModel_RejectsMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}

func TestSaveDiagnostics_WritesValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagnostics.json")
	adfStat := -3.5
	adfP := 0.02
	doc := DiagnosticsDocument{
		LjungBoxResidualsStat: 1.0,
		LjungBoxResidualsP:    0.9,
		LjungBoxSquaredStat:   2.0,
		LjungBoxSquaredP:      0.8,
		JarqueBeraStat:        0.5,
		JarqueBeraP:           0.95,
		ADFStatistic:          &adfStat,
		ADFPValue:             &adfP,
	}
	require.NoError(t, SaveDiagnostics(path, doc))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "adf_statistic")
}
