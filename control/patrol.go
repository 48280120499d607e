package control

import "github.com/milk9111/raysweep/kinematic"

// Patrol walks a character back and forth, turning around whenever a wall
// zeroes its horizontal velocity.
type Patrol struct {
	JumpOnTurn bool

	dir     float64
	started bool
	turns   int
}

func NewPatrol(startLeft, jumpOnTurn bool) *Patrol {
	dir := 1.0
	if startLeft {
		dir = -1
	}
	return &Patrol{dir: dir, JumpOnTurn: jumpOnTurn}
}

// Dir is -1 or 1.
func (p *Patrol) Dir() float64 {
	return p.dir
}

func (p *Patrol) Turns() int {
	return p.turns
}

func (p *Patrol) ComputeIntent(c *kinematic.Character) error {
	if p.started && c.Body.Velocity.X == 0 {
		p.dir = -p.dir
		p.turns++
		if p.JumpOnTurn && c.Grounded {
			c.Jump(1)
		}
	}
	p.started = true
	c.Body.Velocity.X = p.dir * c.MoveSpeed
	return nil
}
