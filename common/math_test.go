package common

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestAngleBetween(t *testing.T) {
	cases := []struct {
		name string
		a, b cp.Vector
		want float64
	}{
		{"same", Right, Right, 0},
		{"opposite", Right, Left, 180},
		{"perpendicular", Right, Up, 90},
		{"slope_normal", Right, cp.Vector{X: -1, Y: 1}, 135},
		{"zero_length", cp.Vector{}, Up, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AngleBetween(c.a, c.b)
			if !Approx(got, c.want, 1e-9) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestSign(t *testing.T) {
	if Sign(3) != 1 || Sign(-0.5) != -1 || Sign(0) != 0 {
		t.Fatalf("unexpected sign results")
	}
}

