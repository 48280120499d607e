package world

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/milk9111/raysweep/prefabs"
)

// Apply reacts to an edited prefab file between ticks. engine.yaml swaps
// the tunables; character specs update speeds and health in place; scripts
// are recompiled, keeping their state. A failed reload leaves the previous
// values running.
func (w *World) Apply(change prefabs.Change) error {
	switch change.Kind {
	case prefabs.ChangeScript:
		return w.reloadScript(change.Name)
	case prefabs.ChangeSpec:
		if filepath.Base(change.Name) == "engine.yaml" {
			return w.reloadEngine()
		}
		return w.reloadCharacterSpec(change.Name)
	}
	return nil
}

func (w *World) reloadEngine() error {
	spec, err := prefabs.LoadEngineSpec()
	if err != nil {
		return fmt.Errorf("world: reload engine: %w", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}
	if err := w.ApplyConfig(cfg); err != nil {
		return err
	}
	log.Printf("world: engine config reloaded: gravity=%v ray_gap=%v skin=%v", cfg.Gravity, cfg.RayGap, cfg.SkinThickness)
	return nil
}

func (w *World) reloadCharacterSpec(name string) error {
	base := filepath.Base(name)
	var spec *prefabs.CharacterSpec
	for _, s := range w.spawned {
		if s.spec != base {
			continue
		}
		if spec == nil {
			loaded, err := prefabs.LoadCharacterSpec(base)
			if err != nil {
				return fmt.Errorf("world: reload %s: %w", base, err)
			}
			spec = loaded
		}
		s.character.MoveSpeed = spec.MoveSpeed
		s.character.JumpSpeed = spec.JumpSpeed
		s.character.Health = spec.Health
		if err := s.character.Body.SetHalfExtents(spec.Collider.HalfExtents()); err != nil {
			return err
		}
	}
	if spec != nil {
		log.Printf("world: %s reloaded", base)
	}
	return nil
}

// reloadScript recompiles every running copy of a script. Copies share the
// source, so the first compile error stops the reload.
func (w *World) reloadScript(name string) error {
	key := filepath.Base(name)
	scripts := w.scripts[key]
	if len(scripts) == 0 {
		return nil
	}
	src, err := prefabs.LoadScript(key)
	if err != nil {
		return fmt.Errorf("world: reload %s: %w", key, err)
	}
	for _, sc := range scripts {
		if err := sc.Reload(src); err != nil {
			return err
		}
	}
	log.Printf("world: %s reloaded for %d characters", key, len(scripts))
	return nil
}
