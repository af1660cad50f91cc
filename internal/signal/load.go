package signal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/dsdrift/internal/errors"
)

// ScanResult is the envelope scanners hand to the audit pipeline: entity
// counts plus the flat, deduplicated signal list.
type ScanResult struct {
	ComponentCount int           `json:"component_count"`
	TokenCount     int           `json:"token_count"`
	Signals        []DriftSignal `json:"signals"`
}

// LoadScanResult reads a scanner output file. Both the envelope form and
// a bare JSON array of signals are accepted; the bare form has zero
// entity counts. Signals are validated here, at the boundary: the core
// pipeline assumes well-formed records.
func LoadScanResult(path string) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSignalsNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read signals file: "+path, err)
	}

	var result ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		var bare []DriftSignal
		if arrErr := json.Unmarshal(data, &bare); arrErr != nil {
			return nil, errors.NewSignalsUnmarshalError(path, err)
		}
		result = ScanResult{Signals: bare}
	}

	for i, sig := range result.Signals {
		if err := Validate(sig); err != nil {
			return nil, errors.NewSignalMalformedError(i, err.Error())
		}
		// Store the canonical severity; Validate accepted aliases like
		// "warn", but the pipeline compares exact vocabulary values.
		sev, _ := ParseSeverity(string(sig.Severity))
		result.Signals[i].Severity = sev
	}

	return &result, nil
}

// Validate checks the invariants every signal must satisfy before it
// enters the pipeline: severity and type present, location resolvable to
// a file path.
func Validate(sig DriftSignal) error {
	if sig.Type == "" {
		return fmt.Errorf("missing type")
	}
	if _, ok := ParseSeverity(string(sig.Severity)); !ok {
		return fmt.Errorf("unknown severity %q", sig.Severity)
	}
	if sig.Source.Location == "" {
		return fmt.Errorf("missing source location")
	}
	return nil
}
