package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

// WriteReportJSON writes an optimization report as indented JSON, creating
// parent directories as needed.
func WriteReportJSON(report *types.OptimizationReport, path string) error {
	return writeJSON(report, path)
}

// WriteResultJSON writes a single simulation result as indented JSON.
func WriteResultJSON(result *types.SimulationResult, path string) error {
	return writeJSON(result, path)
}

func writeJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
