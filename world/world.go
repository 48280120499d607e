package world

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/raysweep/control"
	"github.com/milk9111/raysweep/ecs"
	"github.com/milk9111/raysweep/ecs/component"
	"github.com/milk9111/raysweep/ecs/system"
	"github.com/milk9111/raysweep/kinematic"
	"github.com/milk9111/raysweep/levels"
	"github.com/milk9111/raysweep/space"
)

// World owns the loaded level, its geometry, and the ECS that simulates it.
type World struct {
	Level *levels.Level
	Space *space.Space
	ECS   *ecs.World

	Debug bool

	cfg       kinematic.Config
	scheduler *ecs.Scheduler
	logs      *system.CollisionLogSystem
	spawned   []spawnedCharacter
	scripts   map[string][]*control.Script
	ticks     uint64
}

type spawnedCharacter struct {
	spec      string
	character *kinematic.Character
}

// New creates a world and loads the named level.
func New(levelName string, cfg kinematic.Config, debug bool) (*World, error) {
	w := &World{Debug: debug}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w.cfg = w.withLogging(cfg)
	if err := w.Load(levelName); err != nil {
		return nil, err
	}
	return w, nil
}

// Load replaces the current level, geometry and entities.
func (w *World) Load(levelName string) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	if !strings.HasSuffix(levelName, ".json") {
		levelName += ".json"
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		return fmt.Errorf("world: load %s: %w", levelName, err)
	}
	return w.LoadLevel(lvl)
}

// LoadLevel builds the world from an already parsed level.
func (w *World) LoadLevel(lvl *levels.Level) error {
	s, err := space.FromLevel(lvl)
	if err != nil {
		return fmt.Errorf("world: build geometry: %w", err)
	}
	s.Debug = w.Debug

	w.Level = lvl
	w.Space = s
	w.ECS = ecs.NewWorld()
	w.spawned = nil
	w.scripts = make(map[string][]*control.Script)
	w.ticks = 0
	w.logs = system.NewCollisionLogSystem(w.Debug)
	w.scheduler = ecs.NewScheduler(
		system.NewPlatformSystem(s),
		system.NewControlSystem(),
		system.NewMovementSystem(),
		w.logs,
	)

	if err := w.SpawnEntities(); err != nil {
		return err
	}
	if w.Debug {
		log.Printf("world: loaded %dx%d level, %d shapes, %d characters", lvl.Width, lvl.Height, s.Len(), len(w.spawned))
	}
	return nil
}

// Step advances the simulation by one fixed tick.
func (w *World) Step(dt float64) error {
	if err := w.scheduler.Update(w.ECS, dt); err != nil {
		return fmt.Errorf("world: tick %d: %w", w.ticks, err)
	}
	w.ticks++
	return nil
}

func (w *World) Ticks() uint64 {
	return w.ticks
}

// Config is the tunable set characters are currently running with.
func (w *World) Config() kinematic.Config {
	return w.cfg
}

// ApplyConfig swaps the tunables of every character and free body. Moving
// platforms keep zero gravity.
func (w *World) ApplyConfig(cfg kinematic.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	w.cfg = w.withLogging(cfg)

	var err error
	ecs.ForEach(w.ECS, component.CharacterComponent.Kind(), func(_ ecs.Entity, c *kinematic.Character) {
		if err == nil {
			err = c.Body.SetConfig(w.cfg)
		}
	})
	ecs.ForEach(w.ECS, component.BodyComponent.Kind(), func(_ ecs.Entity, b *kinematic.Body) {
		if err == nil {
			err = b.SetConfig(w.cfg)
		}
	})
	ecs.ForEach(w.ECS, component.PlatformComponent.Kind(), func(_ ecs.Entity, p *kinematic.Platform) {
		if err == nil && p.Body != nil {
			err = p.Body.SetConfig(platformConfig(w.cfg))
		}
	})
	return err
}

func (w *World) withLogging(cfg kinematic.Config) kinematic.Config {
	if w.Debug && cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	return cfg
}

// platformConfig is cfg without gravity, so routed platforms hold height.
func platformConfig(cfg kinematic.Config) kinematic.Config {
	cfg.Gravity = 0
	cfg.Logf = nil
	return cfg
}

// Characters returns every spawned character in spawn order.
func (w *World) Characters() []*kinematic.Character {
	out := make([]*kinematic.Character, 0, len(w.spawned))
	for _, s := range w.spawned {
		out = append(out, s.character)
	}
	return out
}

// Character looks up a spawned character by name.
func (w *World) Character(name string) *kinematic.Character {
	for _, s := range w.spawned {
		if s.character.Name == name {
			return s.character
		}
	}
	return nil
}

// Collisions is the number of collisions resolved against a surface so far.
func (w *World) Collisions(surfaceID string) int {
	if w.logs == nil {
		return 0
	}
	return w.logs.Count(surfaceID)
}
