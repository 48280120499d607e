package kinematic

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/common"
)

// integrate runs before movement each tick. A body still standing on its
// platform rides the platform's last displacement and ignores gravity;
// otherwise the platform is dropped and gravity accumulates this same tick.
func (b *Body) integrate(dt float64) {
	if b.platform != nil {
		b.carry(b.platform.Delta())

		if b.stillSupported(dt) {
			b.refreshSurfaceNormal()
			return
		}
		b.Detach()
	}

	b.Velocity.Y += b.cfg.Gravity * dt
}

// carry moves the body by its platform's displacement. The horizontal part
// is swept and stops one skin short of anything in the way; the vertical
// part follows the platform as is.
func (b *Body) carry(delta cp.Vector) {
	b.Position.Y += delta.Y
	face := horizontalDirection(delta.X)
	if face == DirNone {
		return
	}
	skin := b.cfg.SkinThickness
	travel := math.Abs(delta.X)
	if hit, ok := b.detector.SweepEdge(b.Box(), face, BottomToTop, face.Vector(), travel+2*skin); ok {
		travel = math.Max(0, math.Min(travel, hit.Distance-2*skin))
	}
	b.Position.X += travel * common.Sign(delta.X)
}

// stillSupported sweeps the base of the box against the inverse surface
// normal for as far as gravity would pull the body this tick.
func (b *Body) stillSupported(dt float64) bool {
	skin := b.cfg.SkinThickness
	distance := math.Abs(b.cfg.Gravity*dt) + 2*skin
	dir := b.normal.Neg()

	o := RightToLeft
	if b.IsMovingLeft() {
		o = LeftToRight
	}
	hit, ok := b.detector.SweepEdge(b.Box(), DirDown, o, dir, distance)
	if !ok {
		return false
	}
	return hit.Surface.Platform == b.platform
}

// refreshSurfaceNormal probes straight down from the center of the box.
func (b *Body) refreshSurfaceNormal() {
	hit, ok := b.query.RayCast(b.Position, common.Down, b.half.Y*2)
	if !ok || hit.Normal.Length() < common.Epsilon {
		return
	}
	b.normal = hit.Normal
}
