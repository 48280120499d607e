package world

import (
	"fmt"
	"path/filepath"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/control"
	"github.com/milk9111/raysweep/ecs"
	"github.com/milk9111/raysweep/ecs/component"
	"github.com/milk9111/raysweep/kinematic"
	"github.com/milk9111/raysweep/levels"
	"github.com/milk9111/raysweep/prefabs"
)

// Level entity types.
const (
	EntityPlayer   = "player"
	EntityWalker   = "walker"
	EntityPlatform = "platform"
)

// SpawnEntities spawns platforms first so characters placed on them find
// their colliders, then characters. Unknown entity types are an error.
func (w *World) SpawnEntities() error {
	if w == nil || w.Level == nil || len(w.Level.Entities) == 0 {
		return nil
	}
	remaining, err := w.spawnPlatformsFromEntities(w.Level.Entities)
	if err != nil {
		return err
	}
	remaining, err = w.spawnCharactersFromEntities(remaining)
	if err != nil {
		return err
	}
	if len(remaining) > 0 {
		return fmt.Errorf("world: unknown entity type %q at %d,%d", remaining[0].Type, remaining[0].X, remaining[0].Y)
	}
	return nil
}

func (w *World) spawnPlatformsFromEntities(entities []levels.Entity) ([]levels.Entity, error) {
	remaining := make([]levels.Entity, 0, len(entities))
	for _, pe := range entities {
		if pe.Type != EntityPlatform {
			remaining = append(remaining, pe)
			continue
		}
		spec, err := prefabs.DecodeComponentSpec[prefabs.PlatformSpec](pe.Props)
		if err != nil {
			return nil, fmt.Errorf("world: platform at %d,%d: %w", pe.X, pe.Y, err)
		}
		if err := w.spawnPlatform(pe, spec); err != nil {
			return nil, err
		}
	}
	return remaining, nil
}

// spawnPlatform places a platform of W x H tiles with its bottom-left corner
// on the entity's tile. A nonzero speed gives it a route to (ToX, ToY).
func (w *World) spawnPlatform(pe levels.Entity, spec prefabs.PlatformSpec) error {
	if spec.W <= 0 {
		spec.W = 1
	}
	if spec.H <= 0 {
		spec.H = 1
	}
	half := cp.Vector{X: spec.W / 2, Y: spec.H / 2}
	from := w.Level.TileOrigin(pe.X, pe.Y).Add(half)

	if spec.Speed == 0 {
		p := kinematic.NewPlatform(spec.ID)
		return w.Space.AddPlatform(p, from, half)
	}

	body, err := kinematic.NewBody(platformConfig(w.cfg), w.Space, from, half, kinematic.AxisAligned{})
	if err != nil {
		return fmt.Errorf("world: platform %s: %w", spec.ID, err)
	}
	p := kinematic.NewMovingPlatform(spec.ID, body)
	if err := w.Space.AddPlatform(p, from, half); err != nil {
		return err
	}
	if err := body.SetQuery(w.Space.Excluding(p)); err != nil {
		return err
	}

	to := w.Level.TileOrigin(int(spec.ToX), int(spec.ToY)).Add(half)
	e := ecs.CreateEntity(w.ECS)
	if err := ecs.Add(w.ECS, e, component.PlatformComponent.Kind(), p); err != nil {
		return err
	}
	if err := ecs.Add(w.ECS, e, component.NameComponent.Kind(), &p.ID); err != nil {
		return err
	}
	return ecs.Add(w.ECS, e, component.RouteComponent.Kind(), &component.Route{From: from, To: to, Speed: spec.Speed})
}

func (w *World) spawnCharactersFromEntities(entities []levels.Entity) ([]levels.Entity, error) {
	remaining := make([]levels.Entity, 0, len(entities))
	for _, pe := range entities {
		if pe.Type != EntityPlayer && pe.Type != EntityWalker {
			remaining = append(remaining, pe)
			continue
		}
		props, err := prefabs.DecodeComponentSpec[prefabs.SpawnSpec](pe.Props)
		if err != nil {
			return nil, fmt.Errorf("world: %s at %d,%d: %w", pe.Type, pe.X, pe.Y, err)
		}
		if props.Spec == "" {
			props.Spec = pe.Type + ".yaml"
		}
		spec, err := prefabs.LoadCharacterSpec(props.Spec)
		if err != nil {
			return nil, err
		}
		if _, err := w.spawnCharacter(pe, props.Spec, spec); err != nil {
			return nil, err
		}
	}
	return remaining, nil
}

// spawnCharacter stands the character on the bottom of its tile, one skin up.
func (w *World) spawnCharacter(pe levels.Entity, specName string, spec *prefabs.CharacterSpec) (*kinematic.Character, error) {
	handler, err := spec.Handler()
	if err != nil {
		return nil, err
	}
	half := spec.Collider.HalfExtents()
	origin := w.Level.TileOrigin(pe.X, pe.Y)
	pos := cp.Vector{
		X: w.Level.TileCenter(pe.X, pe.Y).X,
		Y: origin.Y + half.Y + w.cfg.SkinThickness,
	}
	body, err := kinematic.NewBody(w.cfg, w.Space, pos, half, handler)
	if err != nil {
		return nil, fmt.Errorf("world: %s: %w", spec.Name, err)
	}

	ctrl, err := w.controllerFor(spec)
	if err != nil {
		return nil, err
	}
	name := spec.Name
	if w.Character(name) != nil {
		name = fmt.Sprintf("%s-%d", spec.Name, len(w.spawned))
	}
	c := kinematic.NewCharacter(name, body, ctrl)
	c.MoveSpeed = spec.MoveSpeed
	c.JumpSpeed = spec.JumpSpeed
	c.Health = spec.Health

	e := ecs.CreateEntity(w.ECS)
	if err := ecs.Add(w.ECS, e, component.CharacterComponent.Kind(), c); err != nil {
		return nil, err
	}
	if err := ecs.Add(w.ECS, e, component.NameComponent.Kind(), &c.Name); err != nil {
		return nil, err
	}
	ecs.ObserveCollisions(w.ECS, e, body)
	w.spawned = append(w.spawned, spawnedCharacter{spec: filepath.Base(specName), character: c})
	return c, nil
}

func (w *World) controllerFor(spec *prefabs.CharacterSpec) (kinematic.Controller, error) {
	if spec.Script == "" {
		return control.NewPatrol(spec.Patrol.StartLeft, spec.Patrol.JumpOnTurn), nil
	}
	sc, err := control.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("world: %s: %w", spec.Name, err)
	}
	key := filepath.Base(spec.Script)
	w.scripts[key] = append(w.scripts[key], sc)
	return sc, nil
}
