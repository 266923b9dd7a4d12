package island

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/island/animal"
	"github.com/pthm-cable/island/config"
)

// probabilitySumTolerance bounds the floating point error accepted when
// checking that destination probabilities sum to one. A larger mismatch is
// a programming error, not bad input.
const probabilitySumTolerance = 1e-15

// migrate runs the migration phase for the whole grid. Each species moves
// in two passes: every cell decides and stages its emigrants first, then
// every cell commits its staged immigrants. Herbivores finish both passes
// before carnivores decide, because carnivore destination attractiveness
// depends on where the herbivores ended up.
func (w *World) migrate() {
	cells := w.shuffledInterior()

	for _, c := range cells {
		c.migrateSpecies(w.rng, animal.Herbivore, w.neighbors(c))
	}
	for _, c := range cells {
		c.CommitImmigrants()
	}

	for _, c := range cells {
		c.migrateSpecies(w.rng, animal.Carnivore, w.neighbors(c))
	}
	for _, c := range cells {
		c.CommitImmigrants()
	}
}

// migrateSpecies gives every resident of a species one migration attempt.
// Movers are removed from the residents and staged at their destination;
// an animal with nowhere habitable to go stays.
func (c *Cell) migrateSpecies(rng *rand.Rand, k animal.Kind, neighbors [4]*Cell) {
	residents := c.Animals(k)
	remaining := make([]*animal.Animal, 0, len(residents))

	for _, a := range residents {
		if rng.Float64() >= a.MigrationPropensity() {
			remaining = append(remaining, a)
			continue
		}

		probs, ok := destinationProbabilities(neighbors, k, c.paramsFor(k))
		if !ok {
			// Surrounded by uninhabitable terrain only.
			remaining = append(remaining, a)
			continue
		}
		neighbors[pickDestination(rng, probs)].ReceiveImmigrant(a)
	}

	if k == animal.Carnivore {
		c.carn = remaining
	} else {
		c.herb = remaining
	}
}

// relativeAbundance is the fodder in a neighbor cell relative to what its
// population (plus the newcomer) would want to eat.
func relativeAbundance(n *Cell, k animal.Kind, appetite float64) float64 {
	return n.AvailableFodder(k) / (float64(n.Count(k)+1) * appetite)
}

// destinationProbabilities returns the normalized probabilities of moving
// to each of the four neighbors, in north, east, south, west order. It
// reports ok=false when every neighbor is uninhabitable, in which case no
// migration is possible.
func destinationProbabilities(neighbors [4]*Cell, k animal.Kind, p *config.SpeciesParams) ([4]float64, bool) {
	var propensity [4]float64
	for i, n := range neighbors {
		if !n.Habitable() {
			continue
		}
		propensity[i] = math.Exp(p.Lambda * relativeAbundance(n, k, p.F))
	}

	total := floats.Sum(propensity[:])
	if total == 0 {
		return [4]float64{}, false
	}

	var probs [4]float64
	for i, prop := range propensity {
		probs[i] = prop / total
	}
	if sum := floats.Sum(probs[:]); math.Abs(sum-1) > probabilitySumTolerance {
		panic(fmt.Sprintf("island: destination probabilities sum to %v, want 1", sum))
	}
	return probs, true
}

// pickDestination samples a neighbor index from the cumulative probability
// ranges.
func pickDestination(rng *rand.Rand, probs [4]float64) int {
	var cum [4]float64
	floats.CumSum(cum[:], probs[:])

	rnd := rng.Float64()
	for i, c := range cum {
		if rnd < c {
			return i
		}
	}
	return len(cum) - 1
}
