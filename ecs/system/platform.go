package system

import (
	"math"

	"github.com/milk9111/raysweep/common"
	"github.com/milk9111/raysweep/ecs"
	"github.com/milk9111/raysweep/ecs/component"
	"github.com/milk9111/raysweep/kinematic"
)

// PlatformSyncer pushes a moved platform's collider back into the geometry.
type PlatformSyncer interface {
	SyncPlatform(p *kinematic.Platform) error
}

// PlatformSystem drives moving platforms along their routes. It runs before
// characters so riders see this tick's platform delta.
type PlatformSystem struct {
	Geometry PlatformSyncer
}

func NewPlatformSystem(geometry PlatformSyncer) *PlatformSystem {
	return &PlatformSystem{Geometry: geometry}
}

func (s *PlatformSystem) Update(w *ecs.World, dt float64) error {
	if w == nil || dt <= 0 {
		return nil
	}

	var err error
	ecs.ForEach(w, component.PlatformComponent.Kind(), func(e ecs.Entity, p *kinematic.Platform) {
		if err != nil || p == nil {
			return
		}
		if route, ok := ecs.Get(w, e, component.RouteComponent.Kind()); ok && p.Body != nil {
			steer(p.Body, route, dt)
		}
		if err = p.Tick(dt); err != nil {
			return
		}
		if s.Geometry != nil && p.Body != nil {
			err = s.Geometry.SyncPlatform(p)
		}
	})
	return err
}

// steer sets the body's velocity so it reaches the route target without
// overshooting, flipping direction once it arrives.
func steer(b *kinematic.Body, r *component.Route, dt float64) {
	if r.Speed <= 0 {
		b.Velocity = b.Velocity.Mult(0)
		return
	}
	to := r.Target().Sub(b.Position)
	dist := to.Length()
	if dist <= common.Epsilon {
		r.Returning = !r.Returning
		to = r.Target().Sub(b.Position)
		dist = to.Length()
		if dist <= common.Epsilon {
			b.Velocity = b.Velocity.Mult(0)
			return
		}
	}
	step := math.Min(r.Speed*dt, dist)
	b.Velocity = to.Mult(step / dist / dt)
}
