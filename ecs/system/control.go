package system

import (
	"github.com/milk9111/raysweep/ecs"
	"github.com/milk9111/raysweep/ecs/component"
	"github.com/milk9111/raysweep/kinematic"
)

// ControlSystem ticks every character: intent, then its body's movement.
type ControlSystem struct{}

func NewControlSystem() *ControlSystem {
	return &ControlSystem{}
}

func (s *ControlSystem) Update(w *ecs.World, dt float64) error {
	if w == nil {
		return nil
	}

	var err error
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, c *kinematic.Character) {
		if err != nil || c == nil {
			return
		}
		err = c.Tick(dt)
	})
	return err
}
