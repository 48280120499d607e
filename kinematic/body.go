package kinematic

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/common"
)

// Body is a kinematic box that moves by ray sweeps. Position is the center of
// its bounding box and is only written during the body's own Tick.
type Body struct {
	Position cp.Vector
	Velocity cp.Vector

	// Listener, when set, is told about every event after it is resolved.
	Listener func(b *Body, e Event)

	cfg       Config
	half      cp.Vector
	query     GeometryQuery
	detector  *Detector
	handler   CollisionHandler
	character *Character

	platform *Platform
	normal   cp.Vector

	dt      float64
	ticking bool
}

// NewBody creates a body centered at position. A nil handler selects
// AxisAligned resolution.
func NewBody(cfg Config, query GeometryQuery, position, halfExtents cp.Vector, handler CollisionHandler) (*Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Body{
		Position: position,
		cfg:      cfg,
		handler:  handler,
		normal:   common.Up,
	}
	if b.handler == nil {
		b.handler = AxisAligned{}
	}
	if err := b.SetHalfExtents(halfExtents); err != nil {
		return nil, err
	}
	if err := b.SetQuery(query); err != nil {
		return nil, err
	}
	return b, nil
}

// SetQuery attaches the geometry capability the body sweeps against.
func (b *Body) SetQuery(query GeometryQuery) error {
	if query == nil {
		return ErrNoGeometry
	}
	b.query = query
	b.detector = NewDetector(query, b.cfg.RayGap)
	return nil
}

// SetHalfExtents resizes the collider. Corners are derived from it every tick.
func (b *Body) SetHalfExtents(half cp.Vector) error {
	if half.X <= 0 || half.Y <= 0 {
		return ErrInvalidExtents
	}
	b.half = half
	return nil
}

// SetConfig swaps the tunables, e.g. after a hot reload. It is ignored while
// the body is ticking.
func (b *Body) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if b.ticking {
		return ErrReentrantTick
	}
	b.cfg = cfg
	b.detector = NewDetector(b.query, cfg.RayGap)
	return nil
}

func (b *Body) Config() Config {
	return b.cfg
}

func (b *Body) HalfExtents() cp.Vector {
	return b.half
}

func (b *Body) Handler() CollisionHandler {
	return b.handler
}

func (b *Body) Character() *Character {
	return b.character
}

// Box returns the skin-inset bounding box at the current position.
func (b *Body) Box() Box {
	return Box{Center: b.Position, Half: b.half, Skin: b.cfg.SkinThickness}
}

// Platform returns the platform the body rests on, or nil.
func (b *Body) Platform() *Platform {
	return b.platform
}

// SurfaceNormal is the normal of the supporting surface. It is Up while the
// body is not on a platform.
func (b *Body) SurfaceNormal() cp.Vector {
	if b.platform == nil {
		return common.Up
	}
	return b.normal
}

// TickDelta is the dt of the tick in progress, or of the last tick.
func (b *Body) TickDelta() float64 {
	return b.dt
}

func (b *Body) IsMovingRight() bool { return b.Velocity.X > 0 }
func (b *Body) IsMovingLeft() bool  { return b.Velocity.X < 0 }
func (b *Body) IsMovingUp() bool    { return b.Velocity.Y > 0 }
func (b *Body) IsMovingDown() bool  { return b.Velocity.Y < 0 }

func (b *Body) AddVelocity(v cp.Vector) {
	b.Velocity = b.Velocity.Add(v)
}

func (b *Body) attach(p *Platform, normal cp.Vector) {
	b.platform = p
	if normal.Length() < common.Epsilon {
		normal = common.Up
	}
	b.normal = normal
}

// Detach drops the supporting platform; gravity resumes on the next integration.
func (b *Body) Detach() {
	b.platform = nil
	b.normal = common.Up
}
