// Package config holds the translator's tunable constants: tolerances,
// diaphragm mass assumptions, column orientation policy, rigid-end
// treatment and section fallback defaults. Values load from YAML over
// the documented defaults and are validated before a run starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dmirandah/e2kops/internal/props"
)

// validate is a singleton validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Rigid-end treatment modes.
const (
	ModeOffsets = "offsets"
	ModeSplit   = "split"
)

// Tolerances are the geometric comparison thresholds.
type Tolerances struct {
	// Eps compares story elevations and plane membership.
	Eps float64 `yaml:"eps" validate:"gt=0"`
	// PlaneTol admits interface nodes onto a diaphragm plane.
	PlaneTol float64 `yaml:"plane_tol" validate:"gt=0"`
	// MinLength rejects members between coincident nodes.
	MinLength float64 `yaml:"min_member_length" validate:"gt=0"`
}

// Diaphragms holds the slab mass proxy constants.
type Diaphragms struct {
	SlabThickness   float64 `yaml:"slab_thickness" validate:"gt=0"`
	ConcreteDensity float64 `yaml:"concrete_density" validate:"gt=0"`
	RZMassFactor    float64 `yaml:"rz_mass_factor" validate:"gte=0"`
}

// Columns holds the column orientation policy.
type Columns struct {
	// EnforceIAtBottom reorients columns so the I node is the lower one.
	EnforceIAtBottom bool `yaml:"enforce_i_at_bottom"`
}

// RigidEnds selects how ETABS end offsets are realized.
type RigidEnds struct {
	// Mode is "offsets" (joint offsets on the transform) or "split"
	// (explicit rigid segments at the ends).
	Mode string `yaml:"mode" validate:"oneof=offsets split"`
	// Scale multiplies A, Iy, Iz and J on rigid segments.
	Scale float64 `yaml:"scale" validate:"gte=1"`
}

// SectionDefaults is the fallback rectangle used when a member's
// section cannot be resolved. Units are meters and Pa.
type SectionDefaults struct {
	Width       float64 `yaml:"width" validate:"gt=0"`
	ColumnDepth float64 `yaml:"column_depth" validate:"gt=0"`
	BeamDepth   float64 `yaml:"beam_depth" validate:"gt=0"`
	E           float64 `yaml:"elastic_modulus" validate:"gt=0"`
	Poisson     float64 `yaml:"poisson" validate:"gt=0,lt=0.5"`
}

// Config is the full translator configuration.
type Config struct {
	Tolerances Tolerances      `yaml:"tolerances"`
	Diaphragms Diaphragms      `yaml:"diaphragms"`
	Columns    Columns         `yaml:"columns"`
	RigidEnds  RigidEnds       `yaml:"rigid_ends"`
	Sections   SectionDefaults `yaml:"section_defaults"`
}

// Default returns the configuration the upstream translator ships with.
func Default() Config {
	return Config{
		Tolerances: Tolerances{
			Eps:       1e-9,
			PlaneTol:  1e-6,
			MinLength: 1e-6,
		},
		Diaphragms: Diaphragms{
			SlabThickness:   0.10,
			ConcreteDensity: 2500.0,
			RZMassFactor:    100.0,
		},
		Columns: Columns{
			EnforceIAtBottom: true,
		},
		RigidEnds: RigidEnds{
			Mode:  ModeOffsets,
			Scale: 1e6,
		},
		Sections: SectionDefaults{
			Width:       0.40,
			ColumnDepth: 0.40,
			BeamDepth:   0.50,
			E:           2.5e10,
			Poisson:     0.2,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return fmt.Errorf("invalid config: %w", err)
}

// PropsDefaults adapts the section fallbacks for the property resolver.
func (c Config) PropsDefaults() props.Defaults {
	return props.Defaults{
		Width:       c.Sections.Width,
		ColumnDepth: c.Sections.ColumnDepth,
		BeamDepth:   c.Sections.BeamDepth,
		E:           c.Sections.E,
		Poisson:     c.Sections.Poisson,
	}
}
