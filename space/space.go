package space

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/kinematic"
)

var ErrUnknownPlatform = errors.New("space: platform not registered")

// Space is the geometry query service bodies sweep against. It owns a
// Chipmunk space that is only ever queried, never stepped.
type Space struct {
	space *cp.Space

	shapes    map[string][]*cp.Shape
	platforms map[string]*platformEntry
	nextGroup uint

	// Debug logs every shape added or removed.
	Debug bool
}

type platformEntry struct {
	platform *kinematic.Platform
	body     *cp.Body
	group    uint
}

func New() *Space {
	return &Space{
		space:     cp.NewSpace(),
		shapes:    make(map[string][]*cp.Shape),
		platforms: make(map[string]*platformEntry),
	}
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// Len is the number of distinct surfaces.
func (s *Space) Len() int {
	return len(s.shapes)
}

// Has reports whether a surface with the given id is present.
func (s *Space) Has(id string) bool {
	_, ok := s.shapes[id]
	return ok
}

func (s *Space) withID(surface kinematic.Surface) kinematic.Surface {
	if surface.ID == "" {
		surface.ID = uuid.NewString()
	}
	return surface
}

func (s *Space) add(surface kinematic.Surface, shape *cp.Shape) {
	shape.UserData = surface
	s.space.AddShape(shape)
	s.shapes[surface.ID] = append(s.shapes[surface.ID], shape)
	if s.Debug {
		bb := shape.BB()
		log.Printf("space: add %s kind=%s bb=(%.2f,%.2f)-(%.2f,%.2f)", surface.ID, surface.Kind, bb.L, bb.B, bb.R, bb.T)
	}
}

// AddSolid adds a static axis-aligned box. A surface without an id gets a
// generated one; the surface actually stored is returned.
func (s *Space) AddSolid(bb cp.BB, surface kinematic.Surface) kinematic.Surface {
	surface = s.withID(surface)
	s.add(surface, cp.NewBox2(s.space.StaticBody, bb, 0))
	return surface
}

// AddSegment adds a static two-sided line, used for world bounds.
func (s *Space) AddSegment(a, b cp.Vector, surface kinematic.Surface) kinematic.Surface {
	surface = s.withID(surface)
	s.add(surface, cp.NewSegment(s.space.StaticBody, a, b, 0))
	return surface
}

// AddRamp adds a static convex polygon, normally a right triangle whose
// hypotenuse is the walkable slope.
func (s *Space) AddRamp(verts []cp.Vector, surface kinematic.Surface) (kinematic.Surface, error) {
	if len(verts) < 3 {
		return surface, fmt.Errorf("space: ramp needs at least 3 vertices, got %d", len(verts))
	}
	surface = s.withID(surface)
	s.add(surface, cp.NewPolyShapeRaw(s.space.StaticBody, len(verts), verts, 0))
	return surface, nil
}

// AddPlatform registers a platform collider. Static platforms (no Body) are
// a fixed box at center; moving platforms get a kinematic Chipmunk body that
// SyncPlatform keeps at the platform body's position.
func (s *Space) AddPlatform(p *kinematic.Platform, center, half cp.Vector) error {
	if p == nil {
		return ErrUnknownPlatform
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Body == nil {
		s.AddSolid(cp.BB{L: center.X - half.X, B: center.Y - half.Y, R: center.X + half.X, T: center.Y + half.Y}, p.Surface())
		s.platforms[p.ID] = &platformEntry{platform: p}
		return nil
	}

	s.nextGroup++
	body := s.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(p.Body.Position)
	shape := cp.NewBox(body, half.X*2, half.Y*2, 0)
	shape.SetFilter(cp.NewShapeFilter(s.nextGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	s.add(p.Surface(), shape)
	s.platforms[p.ID] = &platformEntry{platform: p, body: body, group: s.nextGroup}
	return nil
}

// SyncPlatform moves a moving platform's collider to its body's position.
func (s *Space) SyncPlatform(p *kinematic.Platform) error {
	if p == nil {
		return ErrUnknownPlatform
	}
	e, ok := s.platforms[p.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlatform, p.ID)
	}
	if e.body == nil {
		return nil
	}
	s.move(p.ID, e)
	return nil
}

// SyncPlatforms moves every registered moving platform.
func (s *Space) SyncPlatforms() {
	for id, e := range s.platforms {
		if e.body == nil {
			continue
		}
		s.move(id, e)
	}
}

// move re-inserts the platform's shapes so the query tree sees the new
// transform.
func (s *Space) move(id string, e *platformEntry) {
	e.body.SetPosition(e.platform.Position())
	for _, shape := range s.shapes[id] {
		s.space.RemoveShape(shape)
		s.space.AddShape(shape)
	}
}

// Remove deletes every shape tagged with id. Bodies resting on a removed
// platform detach on their next tick.
func (s *Space) Remove(id string) bool {
	shapes, ok := s.shapes[id]
	if !ok {
		return false
	}
	for _, shape := range shapes {
		s.space.RemoveShape(shape)
	}
	delete(s.shapes, id)
	if e, ok := s.platforms[id]; ok {
		if e.body != nil {
			s.space.RemoveBody(e.body)
		}
		delete(s.platforms, id)
	}
	if s.Debug {
		log.Printf("space: remove %s (%d shapes)", id, len(shapes))
	}
	return true
}

// Platform looks up a registered platform by id.
func (s *Space) Platform(id string) *kinematic.Platform {
	if e, ok := s.platforms[id]; ok {
		return e.platform
	}
	return nil
}

// RegisterPlatform records a platform whose colliders were added separately,
// e.g. a tile layer, so it can be looked up by id.
func (s *Space) RegisterPlatform(p *kinematic.Platform) {
	if _, ok := s.platforms[p.ID]; !ok {
		s.platforms[p.ID] = &platformEntry{platform: p}
	}
}

// RayCast implements kinematic.GeometryQuery.
func (s *Space) RayCast(origin, dir cp.Vector, maxDistance float64) (kinematic.Hit, bool) {
	return s.rayCast(origin, dir, maxDistance, cp.SHAPE_FILTER_ALL)
}

// Excluding returns a query that cannot see p's own collider, for the body
// that drives a moving platform.
func (s *Space) Excluding(p *kinematic.Platform) kinematic.GeometryQuery {
	filter := cp.SHAPE_FILTER_ALL
	if e, ok := s.platforms[p.ID]; ok && e.body != nil {
		filter = cp.NewShapeFilter(e.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	}
	return kinematic.GeometryQueryFunc(func(origin, dir cp.Vector, maxDistance float64) (kinematic.Hit, bool) {
		return s.rayCast(origin, dir, maxDistance, filter)
	})
}

func (s *Space) rayCast(origin, dir cp.Vector, maxDistance float64, filter cp.ShapeFilter) (kinematic.Hit, bool) {
	if s == nil || s.space == nil || maxDistance <= 0 {
		return kinematic.Hit{}, false
	}
	end := origin.Add(dir.Mult(maxDistance))
	info := s.space.SegmentQueryFirst(origin, end, 0, filter)
	if info.Shape == nil {
		return kinematic.Hit{}, false
	}
	surface, _ := info.Shape.UserData.(kinematic.Surface)
	return kinematic.Hit{
		Surface:  surface,
		Distance: info.Alpha * maxDistance,
		Normal:   info.Normal,
	}, true
}
