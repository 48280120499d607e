package kinematic

import "github.com/jakecoffman/cp"

// SurfaceKind tags what a ray hit so resolution can dispatch on it.
type SurfaceKind uint8

const (
	SurfaceGeneric SurfaceKind = iota
	SurfacePlatform
)

func (k SurfaceKind) String() string {
	if k == SurfacePlatform {
		return "platform"
	}
	return "generic"
}

// Surface identifies the collider a ray hit. Platform is set only for
// SurfacePlatform.
type Surface struct {
	ID       string
	Kind     SurfaceKind
	Platform *Platform
}

// Hit is the nearest surface reported by a single ray cast.
type Hit struct {
	Surface  Surface
	Distance float64
	Normal   cp.Vector
}

// GeometryQuery is the ray-cast capability a body needs to move. RayCast
// returns the nearest surface along dir within maxDistance, or false.
// dir is expected to be unit length.
type GeometryQuery interface {
	RayCast(origin, dir cp.Vector, maxDistance float64) (Hit, bool)
}

// GeometryQueryFunc adapts a function to GeometryQuery.
type GeometryQueryFunc func(origin, dir cp.Vector, maxDistance float64) (Hit, bool)

func (f GeometryQueryFunc) RayCast(origin, dir cp.Vector, maxDistance float64) (Hit, bool) {
	return f(origin, dir, maxDistance)
}

// Event is a collision report for one axis of one tick. It lives only for the
// duration of the OnCollision call.
type Event struct {
	Surface   Surface
	Direction Direction
	// Distance from the ray origin to the surface, measured along Direction.
	Distance float64
	Normal   cp.Vector
}
