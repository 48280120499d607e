package prefabs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/kinematic"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EngineSpec mirrors kinematic.Config. Omitted keys keep the engine defaults.
type EngineSpec struct {
	Gravity              *float64 `yaml:"gravity"`
	RayGap               *float64 `yaml:"ray_gap"`
	SkinThickness        *float64 `yaml:"skin_thickness"`
	JumpTolerance        *float64 `yaml:"jump_tolerance"`
	SlopeEpsilonVelocity *float64 `yaml:"slope_epsilon_velocity"`
	TickRate             int      `yaml:"tick_rate"`
}

func LoadEngineSpec() (*EngineSpec, error) {
	spec, err := LoadSpec[EngineSpec]("engine.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config applies the spec on top of kinematic.DefaultConfig and validates it.
func (s *EngineSpec) Config() (kinematic.Config, error) {
	cfg := kinematic.DefaultConfig()
	if s == nil {
		return cfg, nil
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.Gravity, s.Gravity)
	set(&cfg.RayGap, s.RayGap)
	set(&cfg.SkinThickness, s.SkinThickness)
	set(&cfg.JumpTolerance, s.JumpTolerance)
	set(&cfg.SlopeEpsilon, s.SlopeEpsilonVelocity)
	if err := cfg.Validate(); err != nil {
		return kinematic.Config{}, fmt.Errorf("prefabs: engine.yaml: %w", err)
	}
	return cfg, nil
}

// CharacterSpec describes a controllable body.
type CharacterSpec struct {
	Name      string       `yaml:"name"`
	Collider  ColliderSpec `yaml:"collider"`
	MoveSpeed float64      `yaml:"move_speed"`
	JumpSpeed float64      `yaml:"jump_speed"`
	Health    int          `yaml:"health"`
	// Resolver is "slope" (default) or "axis".
	Resolver string `yaml:"resolver"`
	// Script names a tengo control script under prefabs/scripts. Without one
	// the character patrols.
	Script string     `yaml:"script"`
	Patrol PatrolSpec `yaml:"patrol"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// HalfExtents converts the collider size to half extents.
func (c ColliderSpec) HalfExtents() cp.Vector {
	return cp.Vector{X: c.Width / 2, Y: c.Height / 2}
}

type PatrolSpec struct {
	// StartLeft makes the walker head left first.
	StartLeft bool `yaml:"start_left"`
	// JumpOnTurn makes the walker hop whenever it reverses.
	JumpOnTurn bool `yaml:"jump_on_turn"`
}

func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Collider.Width <= 0 || spec.Collider.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: collider %vx%v: %w", filename, spec.Collider.Width, spec.Collider.Height, kinematic.ErrInvalidExtents)
	}
	if spec.Name == "" {
		spec.Name = filename
	}
	return &spec, nil
}

// Handler returns the collision strategy named by Resolver.
func (s *CharacterSpec) Handler() (kinematic.CollisionHandler, error) {
	switch s.Resolver {
	case "", "slope":
		return kinematic.SlopeAware{}, nil
	case "axis":
		return kinematic.AxisAligned{}, nil
	}
	return nil, fmt.Errorf("prefabs: %s: unknown resolver %q", s.Name, s.Resolver)
}
