// Package animal implements the organisms of the ecosystem: their fitness
// model, feeding, stochastic birth and death, and migration propensity.
package animal

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/island/config"
)

// Animal is one individual. It is owned by the cell holding it; ownership
// moves with the animal when it migrates.
//
// Fitness is cached and recomputed lazily; any weight or age mutation
// invalidates the cache.
type Animal struct {
	kind   Kind
	params *config.SpeciesParams

	weight float64
	age    int

	fitness      float64
	fitnessKnown bool
}

// New creates an animal. Weight must be strictly positive and age
// non-negative.
func New(kind Kind, weight float64, age int, p *config.SpeciesParams) (*Animal, error) {
	if weight <= 0 {
		return nil, fmt.Errorf("animal: weight has to be positive, got %v", weight)
	}
	if age < 0 {
		return nil, fmt.Errorf("animal: age has to be non-negative, got %d", age)
	}
	return &Animal{kind: kind, params: p, weight: weight, age: age}, nil
}

// Kind returns the species of the animal.
func (a *Animal) Kind() Kind { return a.kind }

// Weight returns the current weight of the animal.
func (a *Animal) Weight() float64 { return a.weight }

// Age returns the age of the animal in years.
func (a *Animal) Age() int { return a.age }

func (a *Animal) setWeight(w float64) {
	a.weight = w
	a.fitnessKnown = false
}

// Fitness returns the [0,1] fitness score, recomputing it if a weight or
// age change invalidated the cached value.
func (a *Animal) Fitness() float64 {
	if !a.fitnessKnown {
		a.fitness = FitnessOf(a.params, a.age, a.weight)
		a.fitnessKnown = true
	}
	return a.fitness
}

// AgeOneYear makes the animal one year older.
func (a *Animal) AgeOneYear() {
	a.age++
	a.fitnessKnown = false
}

// LoseWeight applies the yearly weight decay.
func (a *Animal) LoseWeight() {
	a.setWeight(a.weight - a.params.Eta*a.weight)
}

// BirthProbability returns the probability of giving birth given the number
// of same-species animals in the cell. A lone animal never gives birth.
func (a *Animal) BirthProbability(numSameSpecies int) float64 {
	if a.weight < a.params.Zeta*(a.params.WBirth+a.params.SigmaBirth) {
		return 0
	}
	prob := a.params.Gamma * a.Fitness() * float64(numSameSpecies-1)
	if prob > 1 {
		prob = 1
	}
	return prob
}

// GiveBirth rolls for a birth and, on success, returns the newborn with the
// mother's weight reduced by xi times the newborn weight. It returns nil
// when no birth happens. The newborn weight is drawn from the species birth
// weight distribution; a draw that is non-positive, at least the mother's
// weight, or that would leave the mother at non-positive weight produces no
// birth and leaves the mother untouched.
func (a *Animal) GiveBirth(rng *rand.Rand, numSameSpecies int) *Animal {
	if rng.Float64() >= a.BirthProbability(numSameSpecies) {
		return nil
	}

	normal := distuv.Normal{Mu: a.params.WBirth, Sigma: a.params.SigmaBirth, Src: rng}
	w := normal.Rand()
	if w <= 0 || w >= a.weight {
		return nil
	}
	motherAfter := a.weight - a.params.Xi*w
	if motherAfter <= 0 {
		return nil
	}

	a.setWeight(motherAfter)
	return &Animal{kind: a.kind, params: a.params, weight: w}
}

// Dies rolls for death: true with probability omega * (1 - fitness).
func (a *Animal) Dies(rng *rand.Rand) bool {
	return rng.Float64() < a.params.Omega*(1-a.Fitness())
}

// MigrationPropensity returns the probability that the animal attempts to
// migrate this cycle.
func (a *Animal) MigrationPropensity() float64 {
	return a.params.Mu * a.Fitness()
}

// Graze lets a herbivore eat up to its appetite from the available fodder
// and returns the amount consumed.
func (a *Animal) Graze(availableFodder float64) (float64, error) {
	if availableFodder < 0 {
		return 0, fmt.Errorf("animal: available fodder can not be negative, got %v", availableFodder)
	}

	eaten := a.params.F
	if availableFodder < eaten {
		eaten = availableFodder
	}
	a.setWeight(a.weight + a.params.Beta*eaten)
	return eaten, nil
}

// KillProbability returns the probability that this carnivore kills a
// herbivore of the given fitness.
func (a *Animal) KillProbability(preyFitness float64) float64 {
	return (a.Fitness() - preyFitness) / a.params.DeltaPhiMax
}

// AttemptsKill rolls for a kill. A carnivore that is not strictly fitter
// than its prey never kills; a fitness gap of DeltaPhiMax or more kills with
// certainty; anything in between is a draw against KillProbability.
func (a *Animal) AttemptsKill(rng *rand.Rand, prey *Animal) bool {
	gap := a.Fitness() - prey.Fitness()
	if gap <= 0 {
		return false
	}
	if gap >= a.params.DeltaPhiMax {
		return true
	}
	return rng.Float64() < a.KillProbability(prey.Fitness())
}

// Hunt lets a carnivore eat from prey sorted by ascending fitness and
// returns the surviving prey in order. Hunting stops at the first prey at
// least as fit as the hunter or once the yearly appetite is reached; all
// later prey are spared. Weight gain is beta times the consumed prey
// weight, clipped to the remaining appetite.
func (a *Animal) Hunt(rng *rand.Rand, prey []*Animal) []*Animal {
	var eaten float64
	survivors := make([]*Animal, 0, len(prey))

	for i, herb := range prey {
		if a.Fitness() <= herb.Fitness() || eaten >= a.params.F {
			survivors = append(survivors, prey[i:]...)
			break
		}

		if !a.AttemptsKill(rng, herb) {
			survivors = append(survivors, herb)
			continue
		}

		if eaten+herb.Weight() > a.params.F {
			a.setWeight(a.weight + (a.params.F-eaten)*a.params.Beta)
			eaten = a.params.F
		} else {
			a.setWeight(a.weight + herb.Weight()*a.params.Beta)
			eaten += herb.Weight()
		}
	}

	return survivors
}
