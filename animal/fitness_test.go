package animal

import (
	"math"
	"testing"

	"github.com/pthm-cable/island/config"
)

func TestQFactor(t *testing.T) {
	tests := []struct {
		name           string
		phi, x, xHalf  float64
		want           float64
	}{
		{"zero phi", 0, 17, 3, 0.5},
		{"at half point", 0.2, 40, 40, 0.5},
		{"far below half point", 0.2, 0, 40, 1 / (1 + math.Exp(-8))},
		{"negative phi", -0.1, 40, 10, 1 / (1 + math.Exp(-3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QFactor(tt.phi, tt.x, tt.xHalf)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("QFactor(%v, %v, %v) = %v, want %v", tt.phi, tt.x, tt.xHalf, got, tt.want)
			}
		})
	}
}

func TestFitnessAtHalfPoints(t *testing.T) {
	p := &config.Default().Herbivore

	// Age and weight both at their half points: each factor is 0.5.
	got := FitnessOf(p, int(p.AHalf), p.WHalf)
	if math.Abs(got-0.25) > 1e-12 {
		t.Errorf("fitness at half points = %v, want 0.25", got)
	}
}

func TestFitnessStaysInUnitInterval(t *testing.T) {
	cfg := config.Default()

	for _, p := range []*config.SpeciesParams{&cfg.Herbivore, &cfg.Carnivore} {
		for _, age := range []int{0, 1, 5, 40, 60, 1000, 100000} {
			for _, weight := range []float64{0.001, 1, 10, 40, 500, 1e6} {
				fit := FitnessOf(p, age, weight)
				if fit < 0 || fit > 1 {
					t.Errorf("fitness(age=%d, weight=%v) = %v, outside [0,1]", age, weight, fit)
				}
			}
		}
	}
}
