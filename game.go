package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/milk9111/raysweep/prefabs"
	"github.com/milk9111/raysweep/world"
)

type Game struct {
	frames int
	dt     float64

	world   *world.World
	watcher *prefabs.Watcher
}

func NewGame(levelName string, dt float64, debug, watch bool) (*Game, error) {
	spec, err := prefabs.LoadEngineSpec()
	if err != nil {
		return nil, fmt.Errorf("load engine spec: %w", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		return nil, err
	}
	if dt <= 0 && spec.TickRate > 0 {
		dt = 1 / float64(spec.TickRate)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("invalid tick length %v", dt)
	}

	w, err := world.New(levelName, cfg, debug)
	if err != nil {
		return nil, err
	}
	g := &Game{dt: dt, world: w}

	if watch {
		watcher, err := prefabs.NewWatcher(prefabs.DiskDir, filepath.Join(prefabs.DiskDir, "scripts"))
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", prefabs.DiskDir, err)
		}
		g.watcher = watcher
	}
	return g, nil
}

// Update applies pending prefab edits, then runs one fixed tick. Reload
// failures are logged and the previous values keep running.
func (g *Game) Update() error {
	g.frames++
	if g.watcher != nil {
		g.drainChanges()
	}
	return g.world.Step(g.dt)
}

func (g *Game) drainChanges() {
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.world.Apply(change); err != nil {
				log.Printf("reload %s: %v", change.Name, err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

// Report logs where every character ended up.
func (g *Game) Report() {
	log.Printf("%d ticks (%.2fs simulated)", g.frames, float64(g.frames)*g.dt)
	for _, c := range g.world.Characters() {
		log.Printf("%s: pos=(%.3f, %.3f) vel=(%.3f, %.3f) grounded=%v jumping=%v walking=%v",
			c.Name, c.Body.Position.X, c.Body.Position.Y, c.Body.Velocity.X, c.Body.Velocity.Y,
			c.Grounded, c.Jumping, c.Walking)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
