package kinematic

import "github.com/jakecoffman/cp"

// Platform is a surface bodies can stand on. A platform with a Body moves;
// riders pick up its displacement through their own platform lookup.
type Platform struct {
	ID   string
	Body *Body

	delta cp.Vector
}

func NewPlatform(id string) *Platform {
	return &Platform{ID: id}
}

// NewMovingPlatform wraps body as a platform. The body should be configured
// without gravity unless the platform is meant to fall.
func NewMovingPlatform(id string, body *Body) *Platform {
	return &Platform{ID: id, Body: body}
}

// Surface is the tag geometry services attach to this platform's collider.
func (p *Platform) Surface() Surface {
	return Surface{ID: p.ID, Kind: SurfacePlatform, Platform: p}
}

// Delta is how far the platform moved during its last tick.
func (p *Platform) Delta() cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return p.delta
}

func (p *Platform) Position() cp.Vector {
	if p == nil || p.Body == nil {
		return cp.Vector{}
	}
	return p.Body.Position
}

// Tick moves a moving platform. Static platforms report a zero delta.
func (p *Platform) Tick(dt float64) error {
	if p.Body == nil {
		p.delta = cp.Vector{}
		return nil
	}
	before := p.Body.Position
	if err := p.Body.Tick(dt); err != nil {
		return err
	}
	p.delta = p.Body.Position.Sub(before)
	return nil
}
