package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/common"
)

//go:embed *.json
var LevelsFS embed.FS

// Tile values in a layer.
const (
	TileEmpty = 0
	TileSolid = 1
	// TileRampRight rises from the tile's bottom-left to its top-right.
	TileRampRight = 2
	// TileRampLeft rises from the tile's bottom-right to its top-left.
	TileRampLeft = 3
)

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a tile map. Layers are flat row-major arrays of Width*Height
// values with row 0 at the top, as the editor writes them.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
	// Platform marks the layer's tiles as one platform surface characters
	// can attach to. Otherwise they are generic solids.
	Platform bool `json:"platform,omitempty"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Load reads and validates an embedded level.
func Load(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

// Meta returns the metadata of a layer; layers without an entry have no physics.
func (l *Level) Meta(layer int) LayerMeta {
	if layer < 0 || layer >= len(l.LayerMeta) {
		return LayerMeta{}
	}
	return l.LayerMeta[layer]
}

// TileOrigin converts tile coordinates to the world-space bottom-left corner
// of the tile. World y points up, so row 0 is the highest row.
func (l *Level) TileOrigin(x, y int) cp.Vector {
	return cp.Vector{
		X: float64(x) * common.TileSize,
		Y: float64(l.Height-1-y) * common.TileSize,
	}
}

// TileCenter is the world-space center of a tile.
func (l *Level) TileCenter(x, y int) cp.Vector {
	return l.TileOrigin(x, y).Add(cp.Vector{X: common.TileSize / 2, Y: common.TileSize / 2})
}

// Bounds is the world-space extent of the level.
func (l *Level) Bounds() cp.BB {
	return cp.BB{L: 0, B: 0, R: float64(l.Width) * common.TileSize, T: float64(l.Height) * common.TileSize}
}

// EntitiesOf returns the entities with the given type, in file order.
func (l *Level) EntitiesOf(kind string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

// Float reads a numeric prop, falling back to def.
func (e Entity) Float(key string, def float64) float64 {
	if v, ok := e.Props[key].(float64); ok {
		return v
	}
	return def
}

func (e Entity) String(key, def string) string {
	if v, ok := e.Props[key].(string); ok {
		return v
	}
	return def
}
