package kinematic

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/common"
)

// Tick advances the body by dt: gravity and platform support first, then the
// horizontal axis, then the vertical axis. Hits are handed to the body's
// CollisionHandler as they are found.
func (b *Body) Tick(dt float64) error {
	if b.query == nil || b.detector == nil {
		return ErrNoGeometry
	}
	if b.ticking {
		return ErrReentrantTick
	}
	b.ticking = true
	defer func() { b.ticking = false }()

	b.dt = dt
	if dt <= 0 {
		return nil
	}

	b.integrate(dt)
	b.moveHorizontal(dt)
	b.moveVertical(dt)
	return nil
}

// tangent rotates the incoming horizontal direction onto the surface the body
// stands on.
func tangent(normal cp.Vector, incoming Direction) cp.Vector {
	if incoming == DirRight {
		return cp.Vector{X: normal.Y, Y: -normal.X}
	}
	return cp.Vector{X: -normal.Y, Y: normal.X}
}

func (b *Body) moveHorizontal(dt float64) {
	incoming := horizontalDirection(b.Velocity.X)
	if incoming == DirNone {
		return
	}
	distance := b.Velocity.X * dt
	travel := math.Abs(distance)
	rayLength := travel + 2*b.cfg.SkinThickness
	box := b.Box()

	dir := incoming.Vector()
	if b.platform != nil {
		dir = tangent(b.normal, incoming).Normalize()
	}

	if math.Abs(dir.Y) < common.Epsilon {
		if hit, ok := b.detector.SweepEdge(box, incoming, BottomToTop, incoming.Vector(), rayLength); ok {
			b.notify(hit, incoming, 1)
			return
		}
		b.Position.X += distance
		return
	}

	// Sloped support: scan the leading face along the tangent, then the face
	// the tangent is climbing into or descending from.
	front := BottomToTop
	lateral, face := DirUp, DirUp
	if dir.Y < 0 {
		front = TopToBottom
		lateral, face = DirDown, DirDown
	}
	if hit, ok := b.detector.SweepEdge(box, incoming, front, dir, rayLength); ok {
		b.notify(hit, incoming, math.Abs(dir.X))
		return
	}

	o := RightToLeft
	if incoming == DirLeft {
		o = LeftToRight
	}
	if hit, ok := b.detector.SweepEdge(box, face, o, dir, rayLength); ok {
		b.notify(hit, lateral, math.Abs(dir.Y))
		return
	}
	b.Position = b.Position.Add(dir.Mult(travel))
}

func (b *Body) moveVertical(dt float64) {
	incoming := verticalDirection(b.Velocity.Y)
	if incoming == DirNone {
		return
	}
	distance := b.Velocity.Y * dt
	rayLength := math.Abs(distance) + 2*b.cfg.SkinThickness

	o := RightToLeft
	if incoming == DirUp {
		o = LeftToRight
	}
	if hit, ok := b.detector.SweepEdge(b.Box(), incoming, o, incoming.Vector(), rayLength); ok {
		b.notify(hit, incoming, 1)
		return
	}
	b.Position.Y += distance
}

// notify builds the event for a hit, projecting the ray distance onto the
// event axis, and hands it to the handler.
func (b *Body) notify(hit Hit, incoming Direction, axisScale float64) {
	e := Event{
		Surface:   hit.Surface,
		Direction: incoming,
		Distance:  hit.Distance * axisScale,
		Normal:    hit.Normal,
	}
	if b.cfg.Logf != nil {
		b.cfg.Logf("kinematic: hit %s surface=%s kind=%s distance=%.4f normal=(%.3f, %.3f)",
			e.Direction, e.Surface.ID, e.Surface.Kind, e.Distance, e.Normal.X, e.Normal.Y)
	}
	b.handler.OnCollision(b, e)
	if b.Listener != nil {
		b.Listener(b, e)
	}
}
