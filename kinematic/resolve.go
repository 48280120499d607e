package kinematic

import (
	"math"

	"github.com/milk9111/raysweep/common"
)

// CollisionHandler receives the geometry of every hit a body's sweeps find
// and owns the response: it mutates the body's velocity, position and
// platform support.
type CollisionHandler interface {
	OnCollision(b *Body, e Event)
}

// CollisionHandlerFunc adapts a function to CollisionHandler.
type CollisionHandlerFunc func(b *Body, e Event)

func (f CollisionHandlerFunc) OnCollision(b *Body, e Event) {
	f(b, e)
}

// AxisAligned stops the body flush against whatever it hits. Used for simple
// actors and projectiles.
type AxisAligned struct{}

func (AxisAligned) OnCollision(b *Body, e Event) {
	Dispatch(b, e, Stop)
}

// SlopeAware redirects horizontal travel along floor-facing slopes instead
// of stopping. Ceiling-facing slopes stop the body like walls. Used for
// player-controlled characters.
type SlopeAware struct{}

func (SlopeAware) OnCollision(b *Body, e Event) {
	Dispatch(b, e, slide)
}

// Dispatch records platform support for downward platform hits and then runs
// the generic resolution, so generic can rely on b.Platform() already naming
// the new support.
func Dispatch(b *Body, e Event, generic func(b *Body, e Event)) {
	if e.Surface.Kind == SurfacePlatform && e.Surface.Platform != nil && e.Direction == DirDown {
		b.attach(e.Surface.Platform, e.Normal)
	}
	generic(b, e)
}

// Stop zeroes the velocity on the event axis and moves the body so its edge
// rests SkinThickness short of the surface.
func Stop(b *Body, e Event) {
	skin := b.cfg.SkinThickness
	// ray origins sit one skin inside the edge
	travel := e.Distance - 2*skin

	if e.Direction.Horizontal() {
		b.Velocity.X = 0
	} else {
		b.Velocity.Y = 0
	}
	b.Position = b.Position.Add(e.Direction.Vector().Mult(travel))

	if e.Direction == DirDown {
		land(b)
	}
}

// slide handles a horizontal hit against a floor-facing slope by moving the
// body the full intended horizontal distance plus the slope's rise over it.
// Walls and vertical hits fall back to Stop, and so do ceiling-facing slopes
// (normal.Y < 0): a body walking into an overhang stops against it.
func slide(b *Body, e Event) {
	if !e.Direction.Horizontal() || math.Abs(e.Normal.Y) < common.Epsilon || e.Normal.Y < 0 {
		Stop(b, e)
		return
	}

	incoming := e.Direction.Vector()
	angle := common.AngleBetween(incoming, e.Normal) - 90
	slope := math.Tan(angle*math.Pi/180) * common.Sign(incoming.X)

	// The hit distance only says a slope is ahead; travel is the distance the
	// body wanted to cover this tick.
	h := b.Velocity.X * b.dt
	v := slope * h

	// Keep a sliver of horizontal speed so the body still reads as walking.
	b.Velocity.X = b.cfg.SlopeEpsilon * common.Sign(incoming.X)
	b.Position.X += h
	b.Position.Y += v
}

func land(b *Body) {
	if c := b.character; c != nil {
		c.Grounded = true
		c.Jumping = false
	}
}
