// Package island implements the grid of landscape cells and the annual
// cycle that drives feeding, reproduction, migration, aging and death
// across it.
package island

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/pthm-cable/island/animal"
	"github.com/pthm-cable/island/config"
)

// Cell is one grid location. It owns its resident populations and the
// staging lists for incoming migrants.
type Cell struct {
	terrain  Terrain
	row, col int
	fodder   float64

	herb []*animal.Animal
	carn []*animal.Animal

	// Staged migrants, merged into the residents by CommitImmigrants once
	// every cell has finished its migration decisions for the species.
	herbImmigrants []*animal.Animal
	carnImmigrants []*animal.Animal

	cfg *config.Config
}

func newCell(t Terrain, row, col int, cfg *config.Config) *Cell {
	c := &Cell{terrain: t, row: row, col: col, cfg: cfg}
	// Fodder-bearing cells start at capacity.
	switch t {
	case Jungle:
		c.fodder = cfg.Jungle.FMax
	case Savannah:
		c.fodder = cfg.Savannah.FMax
	}
	return c
}

// Terrain returns the landscape kind of the cell.
func (c *Cell) Terrain() Terrain { return c.terrain }

// Habitable reports whether animals can live in the cell.
func (c *Cell) Habitable() bool { return c.terrain.Habitable() }

// Fodder returns the plant food currently available in the cell.
func (c *Cell) Fodder() float64 { return c.fodder }

func (c *Cell) paramsFor(k animal.Kind) *config.SpeciesParams {
	if k == animal.Carnivore {
		return &c.cfg.Carnivore
	}
	return &c.cfg.Herbivore
}

// PopulationEntry describes one animal to place.
type PopulationEntry struct {
	Species string  `yaml:"species"`
	Age     int     `yaml:"age"`
	Weight  float64 `yaml:"weight"`
}

// PlacePopulation constructs animals from the entries and adds them to the
// resident populations. The whole batch is validated before any animal is
// placed; on error the cell is left untouched.
func (c *Cell) PlacePopulation(entries []PopulationEntry) error {
	if !c.Habitable() {
		return fmt.Errorf("island: animals can not live on %s at (%d, %d)", c.terrain, c.row+1, c.col+1)
	}

	var herbs, carns []*animal.Animal
	for _, e := range entries {
		kind, err := animal.ParseKind(e.Species)
		if err != nil {
			return err
		}
		a, err := animal.New(kind, e.Weight, e.Age, c.paramsFor(kind))
		if err != nil {
			return err
		}
		if kind == animal.Carnivore {
			carns = append(carns, a)
		} else {
			herbs = append(herbs, a)
		}
	}

	c.herb = append(c.herb, herbs...)
	c.carn = append(c.carn, carns...)
	return nil
}

// Count returns the number of animals of a species in the cell, staged
// immigrants included.
func (c *Cell) Count(k animal.Kind) int {
	if k == animal.Carnivore {
		return len(c.carn) + len(c.carnImmigrants)
	}
	return len(c.herb) + len(c.herbImmigrants)
}

// Animals returns the resident animals of a species. The slice is owned by
// the cell and must not be mutated by callers.
func (c *Cell) Animals(k animal.Kind) []*animal.Animal {
	if k == animal.Carnivore {
		return c.carn
	}
	return c.herb
}

// AvailableFodder returns the food relevant to a species: plant fodder for
// herbivores, the total living weight of resident herbivores for
// carnivores.
func (c *Cell) AvailableFodder(k animal.Kind) float64 {
	if k == animal.Carnivore {
		var total float64
		for _, h := range c.herb {
			total += h.Weight()
		}
		return total
	}
	return c.fodder
}

// GrowFodder applies the landscape regrowth rule. Jungle resets to
// capacity, savannah closes a fixed fraction of the deficit, everything
// else bears no fodder.
func (c *Cell) GrowFodder() {
	switch c.terrain {
	case Jungle:
		c.fodder = c.cfg.Jungle.FMax
	case Savannah:
		c.fodder += c.cfg.Savannah.Alpha * (c.cfg.Savannah.FMax - c.fodder)
	}
}

// sortByFitness sorts animals by fitness. The sort is stable so equally fit
// animals keep their insertion order.
func sortByFitness(animals []*animal.Animal, descending bool) {
	sort.SliceStable(animals, func(i, j int) bool {
		if descending {
			return animals[i].Fitness() > animals[j].Fitness()
		}
		return animals[i].Fitness() < animals[j].Fitness()
	})
}

// FeedHerbivores lets the herbivores graze in descending fitness order
// while fodder remains.
func (c *Cell) FeedHerbivores() {
	sortByFitness(c.herb, true)
	for _, h := range c.herb {
		if c.fodder <= 0 {
			break
		}
		eaten, err := h.Graze(c.fodder)
		if err != nil {
			// Fodder is only reduced by what was eaten, so it cannot go
			// negative between iterations.
			panic(fmt.Sprintf("island: %v", err))
		}
		c.fodder -= eaten
	}
}

// FeedCarnivores lets the carnivores hunt in descending fitness order over
// the herbivores sorted weakest first. When the weakest remaining herbivore
// is at least as fit as the current carnivore, feeding stops for the whole
// cell: no later (less fit) carnivore can hunt either.
func (c *Cell) FeedCarnivores(rng *rand.Rand) {
	sortByFitness(c.herb, false)
	sortByFitness(c.carn, true)

	for _, hunter := range c.carn {
		if len(c.herb) == 0 {
			break
		}
		if c.herb[0].Fitness() >= hunter.Fitness() {
			break
		}
		c.herb = hunter.Hunt(rng, c.herb)
	}
}

// newborns gives every animal in the snapshot one birth attempt against the
// pre-birth population count and returns the offspring.
func newborns(rng *rand.Rand, procreating []*animal.Animal) []*animal.Animal {
	var born []*animal.Animal
	for _, a := range procreating {
		if child := a.GiveBirth(rng, len(procreating)); child != nil {
			born = append(born, child)
		}
	}
	return born
}

// Births runs the birth phase for both species. Attempts are made against a
// snapshot of the population taken before the phase, so newborns neither
// procreate nor count toward their siblings' same-species count.
func (c *Cell) Births(rng *rand.Rand) {
	c.herb = append(c.herb, newborns(rng, c.herb)...)
	c.carn = append(c.carn, newborns(rng, c.carn)...)
}

// AgeAnimals makes every resident animal one year older.
func (c *Cell) AgeAnimals() {
	for _, h := range c.herb {
		h.AgeOneYear()
	}
	for _, cn := range c.carn {
		cn.AgeOneYear()
	}
}

// LoseWeight applies the yearly weight decay to every resident animal.
func (c *Cell) LoseWeight() {
	for _, h := range c.herb {
		h.LoseWeight()
	}
	for _, cn := range c.carn {
		cn.LoseWeight()
	}
}

// Deaths rolls for death for every resident animal and keeps the survivors
// in order.
func (c *Cell) Deaths(rng *rand.Rand) {
	c.herb = surviving(rng, c.herb)
	c.carn = surviving(rng, c.carn)
}

func surviving(rng *rand.Rand, animals []*animal.Animal) []*animal.Animal {
	alive := animals[:0]
	for _, a := range animals {
		if !a.Dies(rng) {
			alive = append(alive, a)
		}
	}
	return alive
}

// ReceiveImmigrant stages an incoming migrant. It joins the residents only
// when CommitImmigrants runs.
func (c *Cell) ReceiveImmigrant(a *animal.Animal) {
	if a.Kind() == animal.Carnivore {
		c.carnImmigrants = append(c.carnImmigrants, a)
	} else {
		c.herbImmigrants = append(c.herbImmigrants, a)
	}
}

// CommitImmigrants merges the staged migrants into the resident populations
// and clears the staging lists.
func (c *Cell) CommitImmigrants() {
	c.herb = append(c.herb, c.herbImmigrants...)
	c.herbImmigrants = nil

	c.carn = append(c.carn, c.carnImmigrants...)
	c.carnImmigrants = nil
}
