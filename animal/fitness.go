package animal

import (
	"math"

	"github.com/pthm-cable/island/config"
)

// QFactor is the logistic factor used by the fitness model.
func QFactor(phi, x, xHalf float64) float64 {
	return 1 / (1 + math.Exp(phi*(x-xHalf)))
}

// FitnessOf combines the age and weight logistic factors into a single
// score in [0,1]. Higher values favor survival, feeding priority and
// reproduction.
func FitnessOf(p *config.SpeciesParams, age int, weight float64) float64 {
	return QFactor(p.PhiAge, float64(age), p.AHalf) *
		QFactor(-p.PhiWeight, weight, p.WHalf)
}
