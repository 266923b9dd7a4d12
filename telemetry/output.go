package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/island/config"
)

// OutputManager handles structured run output with CSV logging. All methods
// are nil-safe so callers can run with output disabled.
type OutputManager struct {
	dir        string
	cyclesFile *os.File

	cyclesHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "cycles.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating cycles.csv: %w", err)
	}

	return &OutputManager{dir: dir, cyclesFile: f}, nil
}

// WriteConfig saves the run's configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteCycle appends a cycle stats record to cycles.csv.
func (om *OutputManager) WriteCycle(stats CycleStats) error {
	if om == nil {
		return nil
	}

	records := []CycleStats{stats}

	if !om.cyclesHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.cyclesFile); err != nil {
			return fmt.Errorf("writing cycles: %w", err)
		}
		om.cyclesHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.cyclesFile); err != nil {
		return fmt.Errorf("writing cycles: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.cyclesFile == nil {
		return nil
	}
	return om.cyclesFile.Close()
}
