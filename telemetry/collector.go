package telemetry

// Sample is the raw per-cycle state handed to the collector by the driver.
type Sample struct {
	Year int

	HerbWeights []float64
	CarnWeights []float64
	HerbFitness []float64
	CarnFitness []float64
}

// Collector aggregates samples into cycle statistics and keeps the history
// of a run.
type Collector struct {
	history []CycleStats
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record aggregates one sample, appends it to the history and returns the
// resulting stats.
func (c *Collector) Record(s Sample) CycleStats {
	stats := CycleStats{
		Year:       s.Year,
		Herbivores: len(s.HerbWeights),
		Carnivores: len(s.CarnWeights),
	}
	stats.HerbWeightMean, stats.HerbWeightStd = meanStd(s.HerbWeights)
	stats.CarnWeightMean, stats.CarnWeightStd = meanStd(s.CarnWeights)
	stats.HerbFitnessMean, _ = meanStd(s.HerbFitness)
	stats.CarnFitnessMean, _ = meanStd(s.CarnFitness)

	c.history = append(c.history, stats)
	return stats
}

// History returns all recorded cycle stats in order.
func (c *Collector) History() []CycleStats {
	return c.history
}

// Latest returns the most recent cycle stats, if any.
func (c *Collector) Latest() (CycleStats, bool) {
	if len(c.history) == 0 {
		return CycleStats{}, false
	}
	return c.history[len(c.history)-1], true
}
