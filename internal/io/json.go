// Package io reads and writes time series data (CSV) and model
// specifications/parameters (JSON) at the library's boundary with the
// filesystem.
package io

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"arimagarch/internal/models"
	"arimagarch/internal/models/arima"
	"arimagarch/internal/models/composite"
	"arimagarch/internal/models/garch"
)

// Metadata records when and by what a model document was produced.
type Metadata struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	ModelType string `json:"model_type"`
}

type arimaSpecDoc struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

type garchSpecDoc struct {
	P int `json:"p"`
	Q int `json:"q"`
}

type specDoc struct {
	Arima arimaSpecDoc `json:"arima"`
	Garch garchSpecDoc `json:"garch"`
}

type arimaParamsDoc struct {
	Intercept float64   `json:"intercept"`
	AR        []float64 `json:"ar_coef"`
	MA        []float64 `json:"ma_coef"`
}

type garchParamsDoc struct {
	Omega float64   `json:"omega"`
	Alpha []float64 `json:"alpha_coef"`
	Beta  []float64 `json:"beta_coef"`
}

type paramsDoc struct {
	Arima arimaParamsDoc `json:"arima"`
	Garch garchParamsDoc `json:"garch"`
}

// ModelDocument is the on-disk JSON representation of a fitted
// ARIMA-GARCH model: enough to reconstruct the spec and parameters and
// resume filtering from fresh (zeroed) state by refeeding the original
// series, or to forecast/simulate directly.
type ModelDocument struct {
	Metadata   Metadata  `json:"metadata"`
	Spec       specDoc   `json:"spec"`
	Parameters paramsDoc `json:"parameters"`
}

// NewModelDocument assembles a ModelDocument from a spec, parameter set,
// and metadata.
func NewModelDocument(spec models.ArimaGarchSpec, params composite.Parameters, metadata Metadata) ModelDocument {
	return ModelDocument{
		Metadata: metadata,
		Spec: specDoc{
			Arima: arimaSpecDoc{P: spec.Arima.P, D: spec.Arima.D, Q: spec.Arima.Q},
			Garch: garchSpecDoc{P: spec.Garch.P, Q: spec.Garch.Q},
		},
		Parameters: paramsDoc{
			Arima: arimaParamsDoc{Intercept: params.Arima.Intercept, AR: params.Arima.AR, MA: params.Arima.MA},
			Garch: garchParamsDoc{Omega: params.Garch.Omega, Alpha: params.Garch.Alpha, Beta: params.Garch.Beta},
		},
	}
}

// ToSpec reconstructs the ArimaGarchSpec encoded in the document.
func (d ModelDocument) ToSpec() models.ArimaGarchSpec {
	return models.ArimaGarchSpec{
		Arima: models.ArimaSpec{P: d.Spec.Arima.P, D: d.Spec.Arima.D, Q: d.Spec.Arima.Q},
		Garch: models.GarchSpec{P: d.Spec.Garch.P, Q: d.Spec.Garch.Q},
	}
}

// ToParameters reconstructs the composite.Parameters encoded in the
// document.
func (d ModelDocument) ToParameters() composite.Parameters {
	return composite.Parameters{
		Arima: arima.Parameters{Intercept: d.Parameters.Arima.Intercept, AR: d.Parameters.Arima.AR, MA: d.Parameters.Arima.MA},
		Garch: garch.Parameters{Omega: d.Parameters.Garch.Omega, Alpha: d.Parameters.Garch.Alpha, Beta: d.Parameters.Garch.Beta},
	}
}

// SaveModel serializes a model document to a JSON file.
func SaveModel(path string, doc ModelDocument) error {
	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("io: marshaling model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("io: writing model file %q: %w", path, err)
	}
	return nil
}

// LoadModel reads and parses a model document from a JSON file.
func LoadModel(path string) (ModelDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModelDocument{}, fmt.Errorf("io: reading model file %q: %w", path, err)
	}
	var doc ModelDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return ModelDocument{}, fmt.Errorf("io: parsing model file %q: %w", path, err)
	}
	return doc, nil
}

// DiagnosticsDocument is the flat JSON shape a diagnostic report is
// written as.
type DiagnosticsDocument struct {
	LjungBoxResidualsStat float64  `json:"ljung_box_residuals_statistic"`
	LjungBoxResidualsP    float64  `json:"ljung_box_residuals_pvalue"`
	LjungBoxSquaredStat   float64  `json:"ljung_box_squared_statistic"`
	LjungBoxSquaredP      float64  `json:"ljung_box_squared_pvalue"`
	JarqueBeraStat        float64  `json:"jarque_bera_statistic"`
	JarqueBeraP           float64  `json:"jarque_bera_pvalue"`
	ADFStatistic          *float64 `json:"adf_statistic,omitempty"`
	ADFPValue             *float64 `json:"adf_pvalue,omitempty"`
}

// SaveDiagnostics serializes a diagnostics document to a JSON file.
func SaveDiagnostics(path string, doc DiagnosticsDocument) error {
	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("io: marshaling diagnostics: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("io: writing diagnostics file %q: %w", path, err)
	}
	return nil
}
