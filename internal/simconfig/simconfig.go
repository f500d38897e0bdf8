// Package simconfig loads and saves the simulation run configuration.
package simconfig

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file path, relative to the process working
// directory (repo root when run via go run ./cmd/sim).
const DefaultPath = "config/sim.yaml"

// Config holds every tunable of a simulation run. The octree fields mirror
// the tree's constructor parameters; the rest feed the sim loop and spawner.
type Config struct {
	Bodies        int     `yaml:"bodies"`
	Theta         float64 `yaml:"theta"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxForce      float64 `yaml:"max_force"`
	LeafThreshold int     `yaml:"leaf_threshold"`
	Gravity       float64 `yaml:"gravity"`
	Dt            float64 `yaml:"dt"`
	Seed          int64   `yaml:"seed"`
	Workers       int     `yaml:"workers"`
	SpawnRadius   float64 `yaml:"spawn_radius"`
	MinMass       float64 `yaml:"min_mass"`
	MaxMass       float64 `yaml:"max_mass"`
	CentralMass   float64 `yaml:"central_mass"`
}

// Default returns the default run configuration: 500 bodies in a 100-unit
// ball around a heavy central body, theta 0.5.
func Default() Config {
	return Config{
		Bodies:        500,
		Theta:         0.5,
		MinDistance:   0.1,
		MaxForce:      1e4,
		LeafThreshold: 4,
		Gravity:       6.674e-2,
		Dt:            1.0 / 60.0,
		Seed:          42,
		SpawnRadius:   100,
		MinMass:       1,
		MaxMass:       10,
		CentralMass:   1e5,
	}
}

// Load reads a run configuration from path. A missing or invalid file
// returns Default() and does not create a file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
