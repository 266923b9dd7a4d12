package island

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pthm-cable/island/animal"
	"github.com/pthm-cable/island/config"
)

// World is a rectangular grid of cells surrounded by ocean on all four
// edges, so every interior cell has exactly four well-defined neighbors.
type World struct {
	cells      [][]*Cell
	rows, cols int

	cfg *config.Config
	rng *rand.Rand
}

// New builds a world from a textual map: one glyph per cell, rows separated
// by whitespace. Valid glyphs are J, S, D, M and O; the map must be
// rectangular and its border must be ocean.
func New(geography string, cfg *config.Config, rng *rand.Rand) (*World, error) {
	lines := strings.Fields(geography)
	if len(lines) == 0 {
		return nil, fmt.Errorf("island: map is empty")
	}

	cols := len(lines[0])
	for _, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("island: map has to be rectangular")
		}
	}

	for _, line := range []string{lines[0], lines[len(lines)-1]} {
		if strings.Trim(line, "O") != "" {
			return nil, fmt.Errorf("island: map must be surrounded by ocean")
		}
	}
	for _, line := range lines {
		if line[0] != 'O' || line[len(line)-1] != 'O' {
			return nil, fmt.Errorf("island: map must be surrounded by ocean")
		}
	}

	w := &World{rows: len(lines), cols: cols, cfg: cfg, rng: rng}
	w.cells = make([][]*Cell, w.rows)
	for r, line := range lines {
		w.cells[r] = make([]*Cell, cols)
		for col, glyph := range line {
			terrain, err := ParseTerrain(glyph)
			if err != nil {
				return nil, fmt.Errorf("%w at (%d, %d)", err, r+1, col+1)
			}
			w.cells[r][col] = newCell(terrain, r, col, cfg)
		}
	}
	return w, nil
}

// Rows returns the number of rows in the grid.
func (w *World) Rows() int { return w.rows }

// Cols returns the number of columns in the grid.
func (w *World) Cols() int { return w.cols }

// Cell returns the cell at the given 0-indexed coordinate.
func (w *World) Cell(row, col int) *Cell { return w.cells[row][col] }

// PopulationRecord places a batch of animals at a 1-indexed location.
type PopulationRecord struct {
	Loc        [2]int            `yaml:"loc"`
	Population []PopulationEntry `yaml:"population"`
}

// PlacePopulations places each record's animals at its location. Placement
// fails fast: an out-of-bounds or uninhabitable location, or an invalid
// animal, aborts with no animal of the offending record placed.
func (w *World) PlacePopulations(records []PopulationRecord) error {
	for _, rec := range records {
		row, col := rec.Loc[0]-1, rec.Loc[1]-1
		if row < 0 || row >= w.rows || col < 0 || col >= w.cols {
			return fmt.Errorf("island: position (%d, %d) does not exist on the map", rec.Loc[0], rec.Loc[1])
		}
		if err := w.cells[row][col].PlacePopulation(rec.Population); err != nil {
			return err
		}
	}
	return nil
}

// AnnualCycle simulates one year: growth, herbivore feeding, carnivore
// feeding, birth, migration, aging, weight loss, death.
func (w *World) AnnualCycle() {
	w.eachCell(func(c *Cell) { c.GrowFodder() })
	w.eachCell(func(c *Cell) { c.FeedHerbivores() })
	w.eachCell(func(c *Cell) { c.FeedCarnivores(w.rng) })
	w.eachCell(func(c *Cell) { c.Births(w.rng) })
	w.migrate()
	w.eachCell(func(c *Cell) { c.AgeAnimals() })
	w.eachCell(func(c *Cell) { c.LoseWeight() })
	w.eachCell(func(c *Cell) { c.Deaths(w.rng) })
}

func (w *World) eachCell(fn func(c *Cell)) {
	for _, row := range w.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// EachCell calls fn for every cell in row-major order.
func (w *World) EachCell(fn func(c *Cell)) { w.eachCell(fn) }

// NumAnimals returns the total herbivore and carnivore counts.
func (w *World) NumAnimals() (numHerb, numCarn int) {
	w.eachCell(func(c *Cell) {
		numHerb += c.Count(animal.Herbivore)
		numCarn += c.Count(animal.Carnivore)
	})
	return numHerb, numCarn
}

// CountGrid returns the per-cell population counts for a species, indexed
// [row][col].
func (w *World) CountGrid(k animal.Kind) [][]int {
	grid := make([][]int, w.rows)
	for r := range grid {
		grid[r] = make([]int, w.cols)
		for col := range grid[r] {
			grid[r][col] = w.cells[r][col].Count(k)
		}
	}
	return grid
}

// shuffledInterior returns the interior cells (the ocean border excluded)
// in a fresh random order.
func (w *World) shuffledInterior() []*Cell {
	cells := make([]*Cell, 0, (w.rows-2)*(w.cols-2))
	for r := 1; r < w.rows-1; r++ {
		for col := 1; col < w.cols-1; col++ {
			cells = append(cells, w.cells[r][col])
		}
	}
	w.rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	return cells
}

// neighbors returns the four neighbors of a cell in fixed order: north,
// east, south, west. Only called for interior cells, whose neighbors always
// exist thanks to the ocean border.
func (w *World) neighbors(c *Cell) [4]*Cell {
	return [4]*Cell{
		w.cells[c.row-1][c.col],
		w.cells[c.row][c.col+1],
		w.cells[c.row+1][c.col],
		w.cells[c.row][c.col-1],
	}
}
