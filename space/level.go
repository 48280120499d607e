package space

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/common"
	"github.com/milk9111/raysweep/kinematic"
	"github.com/milk9111/raysweep/levels"
)

// Ids of the four world bound segments.
const (
	BoundBottom = "bounds-bottom"
	BoundTop    = "bounds-top"
	BoundLeft   = "bounds-left"
	BoundRight  = "bounds-right"
)

// LayerPlatformID names the platform shared by all tiles of a platform layer.
func LayerPlatformID(layer int) string {
	return fmt.Sprintf("layer-%d", layer)
}

// FromLevel builds the static geometry of a level: merged solid rectangles
// and ramps for every physics layer, plus the world bounds.
func FromLevel(lvl *levels.Level) (*Space, error) {
	if lvl == nil {
		return nil, fmt.Errorf("%w: nil level", levels.ErrInvalidLevel)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	s := New()
	for i, layer := range lvl.Layers {
		meta := lvl.Meta(i)
		if !meta.Physics {
			continue
		}
		var surface kinematic.Surface
		if meta.Platform {
			p := kinematic.NewPlatform(LayerPlatformID(i))
			s.RegisterPlatform(p)
			surface = p.Surface()
		}
		if err := s.processLayerTiles(lvl, layer, surface); err != nil {
			return nil, fmt.Errorf("space: layer %d: %w", i, err)
		}
	}

	bb := lvl.Bounds()
	s.AddSegment(cp.Vector{X: bb.L, Y: bb.B}, cp.Vector{X: bb.R, Y: bb.B}, kinematic.Surface{ID: BoundBottom})
	s.AddSegment(cp.Vector{X: bb.L, Y: bb.T}, cp.Vector{X: bb.R, Y: bb.T}, kinematic.Surface{ID: BoundTop})
	s.AddSegment(cp.Vector{X: bb.L, Y: bb.B}, cp.Vector{X: bb.L, Y: bb.T}, kinematic.Surface{ID: BoundLeft})
	s.AddSegment(cp.Vector{X: bb.R, Y: bb.B}, cp.Vector{X: bb.R, Y: bb.T}, kinematic.Surface{ID: BoundRight})
	return s, nil
}

func isRamp(v int) bool {
	return v == levels.TileRampRight || v == levels.TileRampLeft
}

// processLayerTiles merges contiguous solid tiles into as few boxes as
// possible (width first, then height). Ramps stay one triangle per tile.
// An empty surface id means each box gets its own generated id.
func (s *Space) processLayerTiles(lvl *levels.Level, layer []int, surface kinematic.Surface) error {
	w, h := lvl.Width, lvl.Height
	processed := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if processed[idx] {
				continue
			}
			v := layer[idx]
			processed[idx] = true
			switch {
			case v == levels.TileEmpty:
				continue
			case isRamp(v):
				if _, err := s.AddRamp(rampVerts(lvl.TileOrigin(x, y), v), surface); err != nil {
					return err
				}
				continue
			case v != levels.TileSolid:
				return fmt.Errorf("unknown tile %d at (%d, %d)", v, x, y)
			}

			rw := 1
			for x+rw < w {
				idx2 := y*w + x + rw
				if processed[idx2] || layer[idx2] != levels.TileSolid {
					break
				}
				rw++
			}

			rh := 1
		heightLoop:
			for y+rh < h {
				for xi := x; xi < x+rw; xi++ {
					idx2 := (y+rh)*w + xi
					if processed[idx2] || layer[idx2] != levels.TileSolid {
						break heightLoop
					}
				}
				rh++
			}

			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*w+xx] = true
				}
			}

			// rows grow downward in the file, so the last row is the lowest
			top := lvl.TileOrigin(x, y).Y + common.TileSize
			bottom := lvl.TileOrigin(x, y+rh-1).Y
			left := float64(x) * common.TileSize
			s.AddSolid(cp.BB{L: left, B: bottom, R: left + float64(rw)*common.TileSize, T: top}, surface)
		}
	}
	return nil
}

// rampVerts returns a counter-clockwise right triangle filling the lower
// half of the tile under its diagonal.
func rampVerts(o cp.Vector, tile int) []cp.Vector {
	size := common.TileSize
	if tile == levels.TileRampRight {
		return []cp.Vector{
			{X: o.X, Y: o.Y},
			{X: o.X + size, Y: o.Y},
			{X: o.X + size, Y: o.Y + size},
		}
	}
	return []cp.Vector{
		{X: o.X, Y: o.Y},
		{X: o.X + size, Y: o.Y},
		{X: o.X, Y: o.Y + size},
	}
}
