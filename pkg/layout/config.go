package layout

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds every tuning constant of the force field. The values jointly
// encode a VSEPR-like approximation: repulsion sized against spring stiffness
// so that bonded neighbors spread into wide angles instead of collapsing.
// The relative magnitudes matter more than the absolute ones - override the
// set as a whole, not single knobs in isolation.
type Config struct {
	// Repulsion scales the inverse-square force between every atom pair.
	Repulsion float64 `toml:"repulsion"`

	// Spring is the Hookean constant pulling bonded pairs toward their
	// rest length.
	Spring float64 `toml:"spring"`

	// Damping is applied to velocities each step (0-1, critically damped).
	Damping float64 `toml:"damping"`

	// Gravity is the weak centering pull toward the origin. It only exists
	// to bound drift and must stay small enough not to distort geometry.
	Gravity float64 `toml:"gravity"`

	// Rest lengths per bond order. Higher order, shorter bond.
	RestSingle float64 `toml:"rest_single"`
	RestDouble float64 `toml:"rest_double"`
	RestTriple float64 `toml:"rest_triple"`

	// InitialTemp is the baseline starting velocity ceiling of the
	// annealing schedule; Cooling is the geometric decay factor applied
	// per step. Inputs whose spatial extent exceeds the implied travel
	// budget raise the starting ceiling proportionally.
	InitialTemp float64 `toml:"initial_temp"`
	Cooling     float64 `toml:"cooling"`

	// TempFloor and VelocityFloor define the frozen state: the loop exits
	// early once the temperature is below TempFloor and the maximum squared
	// velocity is below VelocityFloor.
	TempFloor     float64 `toml:"temp_floor"`
	VelocityFloor float64 `toml:"velocity_floor"`

	// MaxIterations caps the simulation loop.
	MaxIterations int `toml:"max_iterations"`

	// ScrambleRadius is the sphere radius for the symmetry-breaking
	// explosion applied to flat or collinear inputs.
	ScrambleRadius float64 `toml:"scramble_radius"`

	// FlatThreshold is the z-range below which an input with more than two
	// atoms is classified as flat/linear and scrambled.
	FlatThreshold float64 `toml:"flat_threshold"`

	// Epsilon floors squared distances before any division.
	Epsilon float64 `toml:"epsilon"`

	// Jitter is the magnitude of the per-coordinate random offset applied
	// to non-degenerate inputs to avoid exact coincidence.
	Jitter float64 `toml:"jitter"`
}

// DefaultConfig returns the canonical parameter set. The tuning targets
// bond-length-scale geometry: a lone single bond relaxes to within ~0.2
// units of RestSingle while unbonded pairs are kept a few units apart.
func DefaultConfig() Config {
	return Config{
		Repulsion:      0.9,
		Spring:         0.6,
		Damping:        0.85,
		Gravity:        0.01,
		RestSingle:     3.0,
		RestDouble:     2.6,
		RestTriple:     2.3,
		InitialTemp:    4.0,
		Cooling:        0.97,
		TempFloor:      0.005,
		VelocityFloor:  1e-4,
		MaxIterations:  500,
		ScrambleRadius: 4.5,
		FlatThreshold:  0.5,
		Epsilon:        0.05,
		Jitter:         0.05,
	}
}

// RestLength maps a bond order to its target rest length.
// Out-of-range orders fall back to the single-bond length.
func (c Config) RestLength(order int) float64 {
	switch order {
	case 2:
		return c.RestDouble
	case 3:
		return c.RestTriple
	default:
		return c.RestSingle
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.Repulsion <= 0:
		return fmt.Errorf("repulsion must be positive, got %v", c.Repulsion)
	case c.Spring <= 0:
		return fmt.Errorf("spring must be positive, got %v", c.Spring)
	case c.Damping <= 0 || c.Damping >= 1:
		return fmt.Errorf("damping must be in (0, 1), got %v", c.Damping)
	case c.Cooling <= 0 || c.Cooling >= 1:
		return fmt.Errorf("cooling must be in (0, 1), got %v", c.Cooling)
	case c.RestSingle <= 0 || c.RestDouble <= 0 || c.RestTriple <= 0:
		return fmt.Errorf("rest lengths must be positive")
	case c.RestSingle < c.RestDouble || c.RestDouble < c.RestTriple:
		return fmt.Errorf("rest lengths must decrease with bond order")
	case c.MaxIterations <= 0:
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	case c.Epsilon <= 0:
		return fmt.Errorf("epsilon must be positive, got %v", c.Epsilon)
	case c.ScrambleRadius <= 0:
		return fmt.Errorf("scramble_radius must be positive, got %v", c.ScrambleRadius)
	}
	return nil
}

// LoadConfig reads a TOML force-field file and merges it over the defaults:
// keys absent from the file keep their default value.
// Returns an error for unreadable files, TOML syntax errors or a merged
// configuration that fails [Config.Validate].
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load force field %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("force field %s: %w", path, err)
	}
	return cfg, nil
}
