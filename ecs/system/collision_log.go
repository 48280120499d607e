package system

import (
	"log"

	"github.com/milk9111/raysweep/ecs"
	"github.com/milk9111/raysweep/ecs/component"
)

// CollisionLogSystem drains the collision events queued this tick and keeps
// a running count per surface.
type CollisionLogSystem struct {
	Debug bool

	counts map[string]int
}

func NewCollisionLogSystem(debug bool) *CollisionLogSystem {
	return &CollisionLogSystem{Debug: debug, counts: make(map[string]int)}
}

func (s *CollisionLogSystem) Update(w *ecs.World, _ float64) error {
	if w == nil {
		return nil
	}
	if s.counts == nil {
		s.counts = make(map[string]int)
	}

	for _, evt := range w.Events().Drain() {
		hit, ok := evt.Data.(ecs.CollisionEvent)
		if evt.Type != ecs.EventCollision || !ok {
			continue
		}
		s.counts[hit.Event.Surface.ID]++
		if !s.Debug {
			continue
		}
		name := hit.Entity.String()
		if n, ok := ecs.Get(w, hit.Entity, component.NameComponent.Kind()); ok {
			name = *n
		}
		log.Printf("collision: %s hit %s (%s) dir=%s dist=%.3f", name, hit.Event.Surface.ID, hit.Event.Surface.Kind, hit.Event.Direction, hit.Event.Distance)
	}
	return nil
}

// Count is the number of collisions seen against a surface ID.
func (s *CollisionLogSystem) Count(surfaceID string) int {
	return s.counts[surfaceID]
}
