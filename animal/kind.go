package animal

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Kind identifies a species.
type Kind uint8

const (
	Herbivore Kind = iota
	Carnivore
)

func (k Kind) String() string {
	switch k {
	case Herbivore:
		return "Herbivore"
	case Carnivore:
		return "Carnivore"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// kindNames are the accepted species tags, in Kind order.
var kindNames = []string{"Herbivore", "Carnivore"}

// ParseKind parses a species tag, case-insensitively. Unknown tags produce
// an error that names the closest accepted tag when the input looks like a
// misspelling.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}

	best := ""
	bestDist := len(s) + 1
	for _, name := range kindNames {
		dist := levenshtein.ComputeDistance(strings.ToLower(s), strings.ToLower(name))
		if dist < bestDist {
			best = name
			bestDist = dist
		}
	}
	if bestDist <= 3 {
		return 0, fmt.Errorf("animal: unknown species %q (did you mean %q?)", s, best)
	}
	return 0, fmt.Errorf("animal: unknown species %q", s)
}
