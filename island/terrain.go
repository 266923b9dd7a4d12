package island

import "fmt"

// Terrain is the landscape kind of a cell.
type Terrain uint8

const (
	Ocean Terrain = iota
	Mountain
	Desert
	Savannah
	Jungle
)

func (t Terrain) String() string {
	switch t {
	case Ocean:
		return "Ocean"
	case Mountain:
		return "Mountain"
	case Desert:
		return "Desert"
	case Savannah:
		return "Savannah"
	case Jungle:
		return "Jungle"
	default:
		return fmt.Sprintf("Terrain(%d)", uint8(t))
	}
}

// Habitable reports whether animals can live on the terrain.
func (t Terrain) Habitable() bool {
	switch t {
	case Jungle, Savannah, Desert:
		return true
	default:
		return false
	}
}

// ParseTerrain maps a map glyph to its terrain.
func ParseTerrain(glyph rune) (Terrain, error) {
	switch glyph {
	case 'J':
		return Jungle, nil
	case 'S':
		return Savannah, nil
	case 'D':
		return Desert, nil
	case 'M':
		return Mountain, nil
	case 'O':
		return Ocean, nil
	default:
		return 0, fmt.Errorf("island: unknown terrain glyph %q", glyph)
	}
}
