package island

import (
	"math"
	"testing"

	"github.com/pthm-cable/island/animal"
	"github.com/pthm-cable/island/config"
)

// zeroTurnoverConfig disables birth and death so only migration changes
// where animals are.
func zeroTurnoverConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	for _, p := range []*config.SpeciesParams{&cfg.Herbivore, &cfg.Carnivore} {
		if err := p.Apply(map[string]float64{"gamma": 0, "omega": 0}); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func TestDestinationProbabilities(t *testing.T) {
	cfg := config.Default()
	w := testWorld(t, smallMap, cfg)

	// Jungle at (1,1): neighbors are ocean, savannah, desert, ocean.
	probs, ok := destinationProbabilities(w.neighbors(w.Cell(1, 1)), animal.Herbivore, &cfg.Herbivore)
	if !ok {
		t.Fatal("habitable neighbors reported as none")
	}

	if probs[0] != 0 || probs[3] != 0 {
		t.Errorf("ocean neighbors got probability %v and %v, want 0", probs[0], probs[3])
	}
	if probs[1] <= 0 || probs[2] <= 0 {
		t.Errorf("habitable neighbors got probability %v and %v, want > 0", probs[1], probs[2])
	}
	// Savannah holds fodder, desert none: the savannah must be the more
	// attractive destination.
	if probs[1] <= probs[2] {
		t.Errorf("savannah probability %v not above desert probability %v", probs[1], probs[2])
	}

	sum := probs[0] + probs[1] + probs[2] + probs[3]
	if math.Abs(sum-1) > probabilitySumTolerance {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
}

func TestDestinationProbabilitiesNowhereToGo(t *testing.T) {
	const landlocked = `
OOOOO
OOMOO
OMJMO
OOMOO
OOOOO`

	cfg := config.Default()
	w := testWorld(t, landlocked, cfg)

	_, ok := destinationProbabilities(w.neighbors(w.Cell(2, 2)), animal.Herbivore, &cfg.Herbivore)
	if ok {
		t.Error("mountain-locked cell reported habitable destinations")
	}
}

func TestPickDestinationEdgeProbabilities(t *testing.T) {
	tests := []struct {
		name  string
		probs [4]float64
		want  int
	}{
		{"all mass on first", [4]float64{1, 0, 0, 0}, 0},
		{"all mass on last", [4]float64{0, 0, 0, 1}, 3},
		{"all mass in the middle", [4]float64{0, 1, 0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := testRNG()
			for range 100 {
				if got := pickDestination(rng, tt.probs); got != tt.want {
					t.Fatalf("pickDestination(%v) = %d, want %d", tt.probs, got, tt.want)
				}
			}
		})
	}
}

func TestPickDestinationStaysInRange(t *testing.T) {
	rng := testRNG()
	probs := [4]float64{0.25, 0.25, 0.25, 0.25}
	for range 1000 {
		if got := pickDestination(rng, probs); got < 0 || got > 3 {
			t.Fatalf("pickDestination = %d, outside [0,3]", got)
		}
	}
}

func TestMigrationSpreadsPopulation(t *testing.T) {
	const allJungle = `
OOOOO
OJJJO
OJJJO
OJJJO
OOOOO`

	w := testWorld(t, allJungle, zeroTurnoverConfig(t))
	if err := w.PlacePopulations([]PopulationRecord{
		{Loc: [2]int{3, 3}, Population: herbEntries(100, 5, 20)},
	}); err != nil {
		t.Fatal(err)
	}

	for range 50 {
		w.AnnualCycle()
	}

	occupied := 0
	grid := w.CountGrid(animal.Herbivore)
	for _, row := range grid {
		for _, n := range row {
			if n > 0 {
				occupied++
			}
		}
	}
	if occupied < 2 {
		t.Errorf("population occupies %d cells after 50 years, want at least 2", occupied)
	}
}

func TestMigrationConservesAnimals(t *testing.T) {
	const mixedMap = `
OOOOO
OJSMO
ODJDO
OSMJO
OOOOO`

	// Decrepit hunters: zero fitness, so they never make a kill but are
	// still part of the migration phase.
	elders := make([]PopulationEntry, 10)
	for i := range elders {
		elders[i] = PopulationEntry{Species: "Carnivore", Age: 1000, Weight: 14}
	}

	w := testWorld(t, mixedMap, zeroTurnoverConfig(t))
	if err := w.PlacePopulations([]PopulationRecord{
		{Loc: [2]int{2, 2}, Population: herbEntries(20, 5, 20)},
		{Loc: [2]int{3, 3}, Population: elders},
		{Loc: [2]int{4, 4}, Population: herbEntries(15, 5, 20)},
	}); err != nil {
		t.Fatal(err)
	}

	wantHerb, wantCarn := w.NumAnimals()
	if wantHerb != 35 || wantCarn != 10 {
		t.Fatalf("initial counts = %d/%d, want 35/10", wantHerb, wantCarn)
	}

	for year := range 100 {
		w.AnnualCycle()
		numHerb, numCarn := w.NumAnimals()
		if numHerb != wantHerb || numCarn != wantCarn {
			t.Fatalf("year %d: counts = %d/%d, want %d/%d",
				year+1, numHerb, numCarn, wantHerb, wantCarn)
		}
	}
}
