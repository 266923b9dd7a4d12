package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/island/config"
)

func TestCollectorRecord(t *testing.T) {
	c := NewCollector()

	stats := c.Record(Sample{
		Year:        3,
		HerbWeights: []float64{10, 20, 30},
		HerbFitness: []float64{0.5, 0.7},
	})

	if stats.Year != 3 {
		t.Errorf("year = %d, want 3", stats.Year)
	}
	if stats.Herbivores != 3 || stats.Carnivores != 0 {
		t.Errorf("counts = %d/%d, want 3/0", stats.Herbivores, stats.Carnivores)
	}
	if stats.HerbWeightMean != 20 {
		t.Errorf("weight mean = %v, want 20", stats.HerbWeightMean)
	}
	if math.Abs(stats.HerbWeightStd-10) > 1e-12 {
		t.Errorf("weight std = %v, want 10", stats.HerbWeightStd)
	}
	if math.Abs(stats.HerbFitnessMean-0.6) > 1e-12 {
		t.Errorf("fitness mean = %v, want 0.6", stats.HerbFitnessMean)
	}
	if stats.CarnWeightMean != 0 || stats.CarnWeightStd != 0 || stats.CarnFitnessMean != 0 {
		t.Errorf("empty carnivore stats = %v/%v/%v, want zeros",
			stats.CarnWeightMean, stats.CarnWeightStd, stats.CarnFitnessMean)
	}
}

func TestCollectorSingleValueHasZeroStd(t *testing.T) {
	c := NewCollector()
	stats := c.Record(Sample{HerbWeights: []float64{42}})

	if stats.HerbWeightMean != 42 {
		t.Errorf("mean = %v, want 42", stats.HerbWeightMean)
	}
	if stats.HerbWeightStd != 0 {
		t.Errorf("std of a single value = %v, want 0", stats.HerbWeightStd)
	}
}

func TestCollectorHistory(t *testing.T) {
	c := NewCollector()

	if _, ok := c.Latest(); ok {
		t.Error("empty collector reports a latest entry")
	}

	c.Record(Sample{Year: 1})
	c.Record(Sample{Year: 2})

	if got := len(c.History()); got != 2 {
		t.Fatalf("history length = %d, want 2", got)
	}
	latest, ok := c.Latest()
	if !ok || latest.Year != 2 {
		t.Errorf("latest = %+v (ok=%v), want year 2", latest, ok)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// All methods must be safe on the nil manager.
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Errorf("WriteConfig on nil manager: %v", err)
	}
	if err := om.WriteCycle(CycleStats{}); err != nil {
		t.Errorf("WriteCycle on nil manager: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir on nil manager = %q, want empty", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteCycle(CycleStats{Year: 1, Herbivores: 10}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteCycle(CycleStats{Year: 2, Herbivores: 12}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cycles.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("cycles.csv has %d lines, want header plus 2 records", len(lines))
	}
	if !strings.Contains(lines[0], "year") || !strings.Contains(lines[0], "herbivores") {
		t.Errorf("header line %q missing expected columns", lines[0])
	}
	if strings.Contains(lines[1], "year") {
		t.Errorf("record line %q looks like a repeated header", lines[1])
	}
}

func TestOutputManagerWritesConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "w_birth") {
		t.Errorf("config.yaml does not contain species parameters:\n%s", data)
	}
}
