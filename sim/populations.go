package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/island/island"
)

// LoadPopulations reads population records from a YAML file. The format is
// a list of records with a 1-indexed location and the animals to place:
//
//	- loc: [2, 2]
//	  population:
//	    - {species: Herbivore, age: 5, weight: 20.0}
func LoadPopulations(path string) ([]island.PopulationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading population file: %w", err)
	}

	var records []island.PopulationRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing population file: %w", err)
	}
	return records, nil
}
