// Package config loads and validates the simulator's run configuration:
// fleet scale, dispatch policy, park geometry, horizon, and RNG seed.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scale names the three fixed fleet sizes.
type Scale string

const (
	ScaleSmall  Scale = "small"
	ScaleMedium Scale = "medium"
	ScaleLarge  Scale = "large"
)

// ScaleParams is (robots, batteries, vehicles-per-hour) for a Scale.
type ScaleParams struct {
	Robots          int
	Batteries       int
	VehiclesPerHour int
}

var scaleTable = map[Scale]ScaleParams{
	ScaleSmall:  {Robots: 8, Batteries: 20, VehiclesPerHour: 10},
	ScaleMedium: {Robots: 25, Batteries: 50, VehiclesPerHour: 30},
	ScaleLarge:  {Robots: 60, Batteries: 120, VehiclesPerHour: 60},
}

// Params returns the fleet sizing for s, or an error for an unknown scale.
func (s Scale) Params() (ScaleParams, error) {
	p, ok := scaleTable[s]
	if !ok {
		return ScaleParams{}, fmt.Errorf("unknown scale %q", s)
	}
	return p, nil
}

// Policy names a dispatch policy by the identifiers spec's external
// interface uses.
type Policy string

const (
	PolicyNearestFirst      Policy = "nearest_first"
	PolicyMaxChargeNeed     Policy = "max_charge_need_first"
	PolicyEarliestDeadline  Policy = "earliest_deadline_first"
	PolicyMostUrgentFirst   Policy = "most_urgent_first"
	PolicyHybridStrategy    Policy = "hybrid_strategy"
	PolicyRL                Policy = "rl"
)

// AllPolicies lists every known policy name, in the order cmd/evsim's
// comparison mode runs them.
func AllPolicies() []Policy {
	return []Policy{
		PolicyNearestFirst,
		PolicyMaxChargeNeed,
		PolicyEarliestDeadline,
		PolicyMostUrgentFirst,
		PolicyHybridStrategy,
		PolicyRL,
	}
}

func (p Policy) valid() bool {
	for _, known := range AllPolicies() {
		if p == known {
			return true
		}
	}
	return false
}

// DefaultHorizon is 300 simulated hours, in minutes.
const DefaultHorizon = 300 * 60

// ViewerHorizon is the truncation the interactive viewer applies.
const ViewerHorizon = 24 * 60

// Park is the rectangular park's dimensions.
type Park struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Config is the full run configuration, loadable from YAML with defaults
// applied the way brianmickel-battery-backtest/internal/config.Load does:
// unmarshal, then fill anything left zero, then Validate.
type Config struct {
	Scale   Scale  `yaml:"scale"`
	Policy  Policy `yaml:"policy"`
	Park    Park   `yaml:"park"`
	Horizon int    `yaml:"horizon"`
	Seed    int64  `yaml:"seed"`
}

// Default returns a Config with the reference defaults: medium scale,
// hybrid_strategy policy, a 1000x1000 park, the full horizon, seed 0.
func Default() Config {
	return Config{
		Scale:   ScaleMedium,
		Policy:  PolicyHybridStrategy,
		Park:    Park{Width: 1000, Height: 1000},
		Horizon: DefaultHorizon,
		Seed:    0,
	}
}

// Load reads a YAML config file, applies defaults for anything left
// unset, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Horizon == 0 {
		c.Horizon = DefaultHorizon
	}
	if c.Park.Width == 0 {
		c.Park.Width = 1000
	}
	if c.Park.Height == 0 {
		c.Park.Height = 1000
	}
}

// Validate rejects an unknown scale or policy as a fatal configuration
// error, per spec.md §7.
func (c Config) Validate() error {
	if _, err := c.Scale.Params(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if !c.Policy.valid() {
		return fmt.Errorf("configuration error: unknown policy %q", c.Policy)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("configuration error: horizon must be positive, got %d", c.Horizon)
	}
	if c.Park.Width <= 0 || c.Park.Height <= 0 {
		return fmt.Errorf("configuration error: park dimensions must be positive")
	}
	return nil
}
