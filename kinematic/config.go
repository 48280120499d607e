package kinematic

import "fmt"

const (
	DefaultGravity       = -30.0
	DefaultRayGap        = 0.2
	DefaultSkinThickness = 0.01
	DefaultJumpTolerance = 30.0
	DefaultSlopeEpsilon  = 0.01

	// MinRayGap bounds the number of rays a sweep casts per edge.
	MinRayGap = 0.001
)

// Config holds the tunable constants shared by every body in a simulation.
type Config struct {
	// Gravity is the vertical acceleration in units/s². It must not be positive.
	Gravity float64
	// RayGap is the spacing between parallel rays in a sweep. It must be at
	// least MinRayGap and no smaller than SkinThickness.
	RayGap float64
	// SkinThickness insets ray origins and keeps resolved bodies off surfaces.
	SkinThickness float64
	// JumpTolerance is the |velocity.y| deadband inside which a jump is accepted.
	JumpTolerance float64
	// SlopeEpsilon is the horizontal speed left on a body redirected along a
	// slope. Zero would read as "not walking" to the presentation layer.
	SlopeEpsilon float64

	// Logf, when set, receives one line per collision event.
	Logf func(format string, args ...any)
}

func DefaultConfig() Config {
	return Config{
		Gravity:       DefaultGravity,
		RayGap:        DefaultRayGap,
		SkinThickness: DefaultSkinThickness,
		JumpTolerance: DefaultJumpTolerance,
		SlopeEpsilon:  DefaultSlopeEpsilon,
	}
}

// Validate rejects configurations the engine cannot simulate.
func (c Config) Validate() error {
	switch {
	case c.Gravity > 0:
		return fmt.Errorf("%w: gravity %v must be <= 0", ErrInvalidConfig, c.Gravity)
	case c.RayGap < MinRayGap:
		return fmt.Errorf("%w: ray gap %v must be >= %v", ErrInvalidConfig, c.RayGap, MinRayGap)
	case c.RayGap < c.SkinThickness:
		return fmt.Errorf("%w: ray gap %v must be >= skin thickness %v", ErrInvalidConfig, c.RayGap, c.SkinThickness)
	case c.SkinThickness < 0:
		return fmt.Errorf("%w: skin thickness %v must be >= 0", ErrInvalidConfig, c.SkinThickness)
	case c.JumpTolerance < 0:
		return fmt.Errorf("%w: jump tolerance %v must be >= 0", ErrInvalidConfig, c.JumpTolerance)
	case c.SlopeEpsilon < 0:
		return fmt.Errorf("%w: slope epsilon %v must be >= 0", ErrInvalidConfig, c.SlopeEpsilon)
	}
	return nil
}
