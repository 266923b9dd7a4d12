// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all biological and landscape parameters for a simulation run.
// Parameters are fixed while a run is in progress; the Apply methods exist to
// retune between runs.
type Config struct {
	Herbivore SpeciesParams   `yaml:"herbivore"`
	Carnivore SpeciesParams   `yaml:"carnivore"`
	Jungle    LandscapeParams `yaml:"jungle"`
	Savannah  LandscapeParams `yaml:"savannah"`
}

// SpeciesParams holds the biological constants for one species.
type SpeciesParams struct {
	Eta        float64 `yaml:"eta"`         // Yearly weight decay fraction [0,1]
	Omega      float64 `yaml:"omega"`       // Death rate scalar [0,1]
	AHalf      float64 `yaml:"a_half"`      // Age at half fitness
	WHalf      float64 `yaml:"w_half"`      // Weight at half fitness
	PhiAge     float64 `yaml:"phi_age"`     // Age fitness curve steepness
	PhiWeight  float64 `yaml:"phi_weight"`  // Weight fitness curve steepness
	Gamma      float64 `yaml:"gamma"`       // Birth probability scalar [0,1]
	WBirth     float64 `yaml:"w_birth"`     // Newborn weight distribution mean
	SigmaBirth float64 `yaml:"sigma_birth"` // Newborn weight distribution stddev
	Zeta       float64 `yaml:"zeta"`        // Minimum-weight-for-birth scalar
	Xi         float64 `yaml:"xi"`          // Mother weight loss per unit newborn weight
	Beta       float64 `yaml:"beta"`        // Feeding conversion efficiency [0,1]
	Mu         float64 `yaml:"mu"`          // Migration propensity scalar [0,1]
	Lambda     float64 `yaml:"lambda"`      // Migration abundance sensitivity
	F          float64 `yaml:"f"`           // Yearly appetite

	// DeltaPhiMax is the fitness gap at which a kill becomes certain.
	// Only meaningful for carnivores; must be strictly positive there.
	DeltaPhiMax float64 `yaml:"delta_phi_max,omitempty"`
}

// LandscapeParams holds fodder regrowth constants for one habitable terrain.
type LandscapeParams struct {
	FMax  float64 `yaml:"f_max"`           // Fodder capacity
	Alpha float64 `yaml:"alpha,omitempty"` // Regrowth fraction of the deficit [0,1]
}

type bound struct {
	lower    float64
	upper    float64
	hasUpper bool
}

var speciesBounds = map[string]bound{
	"eta":           {lower: 0, upper: 1, hasUpper: true},
	"omega":         {lower: 0, upper: 1, hasUpper: true},
	"a_half":        {lower: 0},
	"w_half":        {lower: 0},
	"phi_age":       {lower: 0},
	"phi_weight":    {lower: 0},
	"gamma":         {lower: 0, upper: 1, hasUpper: true},
	"w_birth":       {lower: 0},
	"sigma_birth":   {lower: 0},
	"zeta":          {lower: 0},
	"xi":            {lower: 0},
	"beta":          {lower: 0, upper: 1, hasUpper: true},
	"mu":            {lower: 0, upper: 1, hasUpper: true},
	"lambda":        {lower: 0},
	"f":             {lower: 0},
	"delta_phi_max": {lower: 0}, // additionally must be non-zero, checked in Apply/Validate
}

var landscapeBounds = map[string]bound{
	"f_max": {lower: 0},
	"alpha": {lower: 0, upper: 1, hasUpper: true},
}

// Default returns a fresh config populated from the embedded defaults.
// Each call returns an independent value, so tests can mutate freely.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every parameter against its documented range.
func (c *Config) Validate() error {
	if err := c.Herbivore.validate("herbivore"); err != nil {
		return err
	}
	if err := c.Carnivore.validate("carnivore"); err != nil {
		return err
	}
	if c.Carnivore.DeltaPhiMax <= 0 {
		return fmt.Errorf("config: carnivore delta_phi_max must be strictly positive, got %v", c.Carnivore.DeltaPhiMax)
	}
	if err := c.Jungle.validate("jungle"); err != nil {
		return err
	}
	return c.Savannah.validate("savannah")
}

func (p *SpeciesParams) validate(name string) error {
	for key, value := range p.asMap() {
		if err := checkBound(speciesBounds, key, value); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

func (l *LandscapeParams) validate(name string) error {
	if err := checkBound(landscapeBounds, "f_max", l.FMax); err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	if err := checkBound(landscapeBounds, "alpha", l.Alpha); err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	return nil
}

func checkBound(bounds map[string]bound, key string, value float64) error {
	b, ok := bounds[key]
	if !ok {
		return fmt.Errorf("unknown parameter %q", key)
	}
	if value < b.lower {
		return fmt.Errorf("parameter %q can not be lower than %v, got %v", key, b.lower, value)
	}
	if b.hasUpper && value > b.upper {
		return fmt.Errorf("parameter %q can not be higher than %v, got %v", key, b.upper, value)
	}
	return nil
}

// Apply updates species parameters by key. Every key must exist and every
// value must be in range before anything is committed; on error the receiver
// is left untouched.
func (p *SpeciesParams) Apply(updates map[string]float64) error {
	for key, value := range updates {
		if err := checkBound(speciesBounds, key, value); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if key == "delta_phi_max" && value == 0 {
			return fmt.Errorf("config: parameter %q can not be zero", key)
		}
	}
	for key, value := range updates {
		p.set(key, value)
	}
	return nil
}

// Apply updates landscape parameters by key with the same all-or-nothing
// semantics as SpeciesParams.Apply.
func (l *LandscapeParams) Apply(updates map[string]float64) error {
	for key, value := range updates {
		if err := checkBound(landscapeBounds, key, value); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	for key, value := range updates {
		switch key {
		case "f_max":
			l.FMax = value
		case "alpha":
			l.Alpha = value
		}
	}
	return nil
}

func (p *SpeciesParams) asMap() map[string]float64 {
	return map[string]float64{
		"eta":           p.Eta,
		"omega":         p.Omega,
		"a_half":        p.AHalf,
		"w_half":        p.WHalf,
		"phi_age":       p.PhiAge,
		"phi_weight":    p.PhiWeight,
		"gamma":         p.Gamma,
		"w_birth":       p.WBirth,
		"sigma_birth":   p.SigmaBirth,
		"zeta":          p.Zeta,
		"xi":            p.Xi,
		"beta":          p.Beta,
		"mu":            p.Mu,
		"lambda":        p.Lambda,
		"f":             p.F,
		"delta_phi_max": p.DeltaPhiMax,
	}
}

func (p *SpeciesParams) set(key string, value float64) {
	switch key {
	case "eta":
		p.Eta = value
	case "omega":
		p.Omega = value
	case "a_half":
		p.AHalf = value
	case "w_half":
		p.WHalf = value
	case "phi_age":
		p.PhiAge = value
	case "phi_weight":
		p.PhiWeight = value
	case "gamma":
		p.Gamma = value
	case "w_birth":
		p.WBirth = value
	case "sigma_birth":
		p.SigmaBirth = value
	case "zeta":
		p.Zeta = value
	case "xi":
		p.Xi = value
	case "beta":
		p.Beta = value
	case "mu":
		p.Mu = value
	case "lambda":
		p.Lambda = value
	case "f":
		p.F = value
	case "delta_phi_max":
		p.DeltaPhiMax = value
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
