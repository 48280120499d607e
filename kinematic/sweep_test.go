package kinematic

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestSweepOrigins(t *testing.T) {
	cases := []struct {
		name       string
		start, end cp.Vector
		max        float64
		wantCasts  []cp.Vector
	}{
		{"single_point", vec(1, 1), vec(1, 1), 1, []cp.Vector{vec(1, 1)}},
		{"exact_multiple", vec(0, 0), vec(0, 0.4), 1, []cp.Vector{vec(0, 0), vec(0, 0.2), vec(0, 0.4)}},
		{"includes_end", vec(0, 0), vec(0.5, 0), 1, []cp.Vector{vec(0, 0), vec(0.2, 0), vec(0.4, 0), vec(0.5, 0)}},
		{"reverse", vec(0.4, 0), vec(0, 0), 1, []cp.Vector{vec(0.4, 0), vec(0.2, 0), vec(0, 0)}},
		{"zero_distance", vec(0, 0), vec(1, 0), 0, nil},
		{"negative_distance", vec(0, 0), vec(1, 0), -1, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var origins []cp.Vector
			q := GeometryQueryFunc(func(origin, dir cp.Vector, maxDistance float64) (Hit, bool) {
				origins = append(origins, origin)
				return Hit{}, false
			})
			d := NewDetector(q, 0.2)
			if _, ok := d.Sweep(c.start, c.end, vec(0, -1), c.max); ok {
				t.Fatalf("expected no hit")
			}
			if len(origins) != len(c.wantCasts) {
				t.Fatalf("expected %d casts, got %d (%v)", len(c.wantCasts), len(origins), origins)
			}
			for i, o := range origins {
				if !approx(o.X, c.wantCasts[i].X) || !approx(o.Y, c.wantCasts[i].Y) {
					t.Fatalf("cast %d: expected %v, got %v", i, c.wantCasts[i], o)
				}
			}
		})
	}
}

func TestSweepReturnsFirstHitInScanOrder(t *testing.T) {
	// Rays low on the edge see a far surface, rays high on the edge a near one.
	q := GeometryQueryFunc(func(origin, dir cp.Vector, maxDistance float64) (Hit, bool) {
		if origin.Y >= 0.35 {
			return Hit{Surface: generic("near"), Distance: 0.1, Normal: vec(-1, 0)}, true
		}
		return Hit{Surface: generic("far"), Distance: 0.5, Normal: vec(-1, 0)}, true
	})
	d := NewDetector(q, 0.2)
	box := Box{Center: vec(0, 0.5), Half: vec(0.5, 0.5)}

	hit, ok := d.SweepEdge(box, DirRight, BottomToTop, vec(1, 0), 1)
	if !ok || hit.Surface.ID != "far" {
		t.Fatalf("bottom-to-top should stop at the first ray, got %+v ok=%v", hit, ok)
	}
	hit, ok = d.SweepEdge(box, DirRight, TopToBottom, vec(1, 0), 1)
	if !ok || hit.Surface.ID != "near" {
		t.Fatalf("top-to-bottom should stop at the first ray, got %+v ok=%v", hit, ok)
	}
}

func TestSweepDegenerateDirection(t *testing.T) {
	w := &segmentWorld{}
	w.addBox(-10, -10, 10, -1, generic("floor"))
	d := NewDetector(w, 0.2)
	if _, ok := d.Sweep(vec(0, 0), vec(1, 0), cp.Vector{}, 5); ok {
		t.Fatalf("zero direction must not hit")
	}
	if w.casts != 0 {
		t.Fatalf("expected no casts, got %d", w.casts)
	}
}

func TestBoxEdges(t *testing.T) {
	b := Box{Center: vec(0, 0), Half: vec(1, 2), Skin: 0.1}
	cases := []struct {
		name       string
		face       Direction
		o          Orientation
		start, end cp.Vector
	}{
		{"right_bottom_to_top", DirRight, BottomToTop, vec(0.9, -1.9), vec(0.9, 1.9)},
		{"right_top_to_bottom", DirRight, TopToBottom, vec(0.9, 1.9), vec(0.9, -1.9)},
		{"left_bottom_to_top", DirLeft, BottomToTop, vec(-0.9, -1.9), vec(-0.9, 1.9)},
		{"up_left_to_right", DirUp, LeftToRight, vec(-0.9, 1.9), vec(0.9, 1.9)},
		{"up_right_to_left", DirUp, RightToLeft, vec(0.9, 1.9), vec(-0.9, 1.9)},
		{"down_right_to_left", DirDown, RightToLeft, vec(0.9, -1.9), vec(-0.9, -1.9)},
		{"down_mismatched_orientation", DirDown, TopToBottom, vec(-0.9, -1.9), vec(0.9, -1.9)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, e := b.Edge(c.face, c.o)
			if !approx(s.X, c.start.X) || !approx(s.Y, c.start.Y) || !approx(e.X, c.end.X) || !approx(e.Y, c.end.Y) {
				t.Fatalf("expected %v -> %v, got %v -> %v", c.start, c.end, s, e)
			}
		})
	}
}
