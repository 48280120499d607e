package kinematic

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

// segmentWorld is a one-sided segment soup: a segment only blocks rays that
// approach against its normal.
type segmentWorld struct {
	segments []segment
	casts    int
}

type segment struct {
	a, b    cp.Vector
	normal  cp.Vector
	surface Surface
}

func cross(a, b cp.Vector) float64 {
	return a.X*b.Y - a.Y*b.X
}

func (w *segmentWorld) RayCast(origin, dir cp.Vector, maxDistance float64) (Hit, bool) {
	w.casts++
	best := Hit{}
	found := false
	for _, s := range w.segments {
		if dir.Dot(s.normal) >= 0 {
			continue
		}
		e := s.b.Sub(s.a)
		denom := cross(dir, e)
		if math.Abs(denom) < 1e-12 {
			continue
		}
		q := s.a.Sub(origin)
		t := cross(q, e) / denom
		u := cross(q, dir) / denom
		if t < 0 || t > maxDistance || u < 0 || u > 1 {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Surface: s.surface, Distance: t, Normal: s.normal}
			found = true
		}
	}
	return best, found
}

// addBox adds the four outward-facing faces of an axis-aligned box.
func (w *segmentWorld) addBox(minX, minY, maxX, maxY float64, surface Surface) {
	bl := cp.Vector{X: minX, Y: minY}
	br := cp.Vector{X: maxX, Y: minY}
	tl := cp.Vector{X: minX, Y: maxY}
	tr := cp.Vector{X: maxX, Y: maxY}
	w.segments = append(w.segments,
		segment{a: tl, b: tr, normal: cp.Vector{X: 0, Y: 1}, surface: surface},
		segment{a: bl, b: br, normal: cp.Vector{X: 0, Y: -1}, surface: surface},
		segment{a: bl, b: tl, normal: cp.Vector{X: -1, Y: 0}, surface: surface},
		segment{a: br, b: tr, normal: cp.Vector{X: 1, Y: 0}, surface: surface},
	)
}

func (w *segmentWorld) addSegment(a, b, normal cp.Vector, surface Surface) {
	w.segments = append(w.segments, segment{a: a, b: b, normal: normal.Normalize(), surface: surface})
}

func (w *segmentWorld) removeSurface(id string) {
	kept := w.segments[:0]
	for _, s := range w.segments {
		if s.surface.ID != id {
			kept = append(kept, s)
		}
	}
	w.segments = kept
}

func generic(id string) Surface {
	return Surface{ID: id, Kind: SurfaceGeneric}
}

func noGravity() Config {
	cfg := DefaultConfig()
	cfg.Gravity = 0
	return cfg
}

func mustBody(t *testing.T, cfg Config, q GeometryQuery, pos, half cp.Vector, h CollisionHandler) *Body {
	t.Helper()
	b, err := NewBody(cfg, q, pos, half, h)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}
