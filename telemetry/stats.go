// Package telemetry collects per-cycle population statistics and writes
// them to structured logs and CSV files for external consumers.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// CycleStats holds the aggregated state of the world after one annual
// cycle.
type CycleStats struct {
	Year int `csv:"year"`

	// Population counts
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`

	// Weight distribution per species
	HerbWeightMean float64 `csv:"herb_weight_mean"`
	HerbWeightStd  float64 `csv:"herb_weight_std"`
	CarnWeightMean float64 `csv:"carn_weight_mean"`
	CarnWeightStd  float64 `csv:"carn_weight_std"`

	// Fitness distribution per species
	HerbFitnessMean float64 `csv:"herb_fitness_mean"`
	CarnFitnessMean float64 `csv:"carn_fitness_mean"`
}

// meanStd returns the mean and standard deviation of the values, or zeros
// for an empty slice.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}
	return mean, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s CycleStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("year", s.Year),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Float64("herb_weight_mean", s.HerbWeightMean),
		slog.Float64("herb_weight_std", s.HerbWeightStd),
		slog.Float64("carn_weight_mean", s.CarnWeightMean),
		slog.Float64("carn_weight_std", s.CarnWeightStd),
		slog.Float64("herb_fitness_mean", s.HerbFitnessMean),
		slog.Float64("carn_fitness_mean", s.CarnFitnessMean),
	)
}

// LogStats logs the cycle stats using slog.
func (s CycleStats) LogStats() {
	slog.Info("cycle",
		"year", s.Year,
		"herbivores", s.Herbivores,
		"carnivores", s.Carnivores,
		"herb_weight_mean", s.HerbWeightMean,
		"carn_weight_mean", s.CarnWeightMean,
		"herb_fitness_mean", s.HerbFitnessMean,
		"carn_fitness_mean", s.CarnFitnessMean,
	)
}
