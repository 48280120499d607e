package system

import (
	"github.com/milk9111/raysweep/ecs"
	"github.com/milk9111/raysweep/ecs/component"
	"github.com/milk9111/raysweep/kinematic"
)

// MovementSystem ticks free bodies. Bodies owned by a character or a
// platform are ticked by those systems instead.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World, dt float64) error {
	if w == nil {
		return nil
	}

	var err error
	ecs.ForEach(w, component.BodyComponent.Kind(), func(e ecs.Entity, b *kinematic.Body) {
		if err != nil || b == nil {
			return
		}
		if ecs.Has(w, e, component.CharacterComponent.Kind()) || ecs.Has(w, e, component.PlatformComponent.Kind()) {
			return
		}
		err = b.Tick(dt)
	})
	return err
}
