package kinematic

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/common"
)

// Box is an axis-aligned bounding box whose corners are inset by Skin so
// rays start just inside the collider.
type Box struct {
	Center cp.Vector
	Half   cp.Vector
	Skin   float64
}

func (b Box) TopLeft() cp.Vector {
	return cp.Vector{X: b.Center.X - b.Half.X + b.Skin, Y: b.Center.Y + b.Half.Y - b.Skin}
}

func (b Box) TopRight() cp.Vector {
	return cp.Vector{X: b.Center.X + b.Half.X - b.Skin, Y: b.Center.Y + b.Half.Y - b.Skin}
}

func (b Box) BottomLeft() cp.Vector {
	return cp.Vector{X: b.Center.X - b.Half.X + b.Skin, Y: b.Center.Y - b.Half.Y + b.Skin}
}

func (b Box) BottomRight() cp.Vector {
	return cp.Vector{X: b.Center.X + b.Half.X - b.Skin, Y: b.Center.Y - b.Half.Y + b.Skin}
}

// Orientation is the scan order of a sweep along an edge.
type Orientation uint8

const (
	LeftToRight Orientation = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// Edge returns the start and end corners of the given face scanned in
// orientation o. Vertical faces (DirLeft, DirRight) accept TopToBottom or
// BottomToTop; horizontal faces (DirUp, DirDown) accept LeftToRight or
// RightToLeft. An orientation that does not fit the face falls back to the
// face's natural order (bottom-to-top or left-to-right).
func (b Box) Edge(face Direction, o Orientation) (start, end cp.Vector) {
	switch face {
	case DirRight:
		if o == TopToBottom {
			return b.TopRight(), b.BottomRight()
		}
		return b.BottomRight(), b.TopRight()
	case DirLeft:
		if o == TopToBottom {
			return b.TopLeft(), b.BottomLeft()
		}
		return b.BottomLeft(), b.TopLeft()
	case DirUp:
		if o == RightToLeft {
			return b.TopRight(), b.TopLeft()
		}
		return b.TopLeft(), b.TopRight()
	case DirDown:
		if o == RightToLeft {
			return b.BottomRight(), b.BottomLeft()
		}
		return b.BottomLeft(), b.BottomRight()
	}
	return b.Center, b.Center
}

// Detector answers "will this edge hit something if it moves along dir by
// maxDistance" by casting a fan of parallel rays.
type Detector struct {
	query GeometryQuery
	gap   float64
}

func NewDetector(query GeometryQuery, gap float64) *Detector {
	if gap <= 0 {
		gap = DefaultRayGap
	}
	return &Detector{query: query, gap: gap}
}

// Sweep casts rays of length maxDistance along dir from origins stepped every
// gap units from start to end, always including end. It returns the first
// ray in scan order that hits, not the globally nearest one.
func (d *Detector) Sweep(start, end, dir cp.Vector, maxDistance float64) (Hit, bool) {
	if d == nil || d.query == nil || maxDistance <= 0 {
		return Hit{}, false
	}
	if dir.Length() < common.Epsilon {
		return Hit{}, false
	}
	dir = dir.Normalize()

	span := end.Sub(start)
	length := span.Length()
	if length < common.Epsilon {
		return d.query.RayCast(start, dir, maxDistance)
	}

	step := span.Mult(1 / length)
	n := int(math.Floor(length/d.gap + common.Epsilon))
	for i := 0; i <= n; i++ {
		origin := start.Add(step.Mult(float64(i) * d.gap))
		if hit, ok := d.query.RayCast(origin, dir, maxDistance); ok {
			return hit, true
		}
	}
	if float64(n)*d.gap < length-common.Epsilon {
		return d.query.RayCast(end, dir, maxDistance)
	}
	return Hit{}, false
}

// SweepEdge sweeps one face of box in the given scan order.
func (d *Detector) SweepEdge(box Box, face Direction, o Orientation, dir cp.Vector, maxDistance float64) (Hit, bool) {
	start, end := box.Edge(face, o)
	return d.Sweep(start, end, dir, maxDistance)
}
