package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/kinematic"
)

var (
	BodyComponent      = NewComponent[kinematic.Body]()
	CharacterComponent = NewComponent[kinematic.Character]()
	PlatformComponent  = NewComponent[kinematic.Platform]()
	RouteComponent     = NewComponent[Route]()
	NameComponent      = NewComponent[string]()
)

// Route shuttles a moving platform between From and To at Speed units/s.
type Route struct {
	From  cp.Vector
	To    cp.Vector
	Speed float64

	// Returning is set while heading back to From.
	Returning bool
}

// Target is the end of the route currently being approached.
func (r *Route) Target() cp.Vector {
	if r.Returning {
		return r.From
	}
	return r.To
}
