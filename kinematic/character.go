package kinematic

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raysweep/common"
)

// Controller supplies per-tick intent for a character. ComputeIntent runs
// once per tick before gravity and movement and may set the desired velocity
// and call Jump.
type Controller interface {
	ComputeIntent(c *Character) error
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(c *Character) error

func (f ControllerFunc) ComputeIntent(c *Character) error {
	return f(c)
}

// Character is the control-layer state attached to a body. Grounded and
// Walking are rederived every tick; Jumping is cleared by landing.
type Character struct {
	Name       string
	Body       *Body
	Controller Controller

	MoveSpeed float64
	JumpSpeed float64

	Grounded bool
	Jumping  bool
	Walking  bool
	Facing   cp.Vector

	Health int
	Coins  int

	ticks uint64
}

// NewCharacter binds character state to body so collision resolution can
// update its flags.
func NewCharacter(name string, body *Body, controller Controller) *Character {
	c := &Character{
		Name:       name,
		Body:       body,
		Controller: controller,
		Facing:     common.Right,
	}
	if body != nil {
		body.character = c
	}
	return c
}

// Jump adds JumpSpeed*multiplier to the vertical velocity unless the
// character is already jumping or |velocity.y| is outside the tolerance.
func (c *Character) Jump(multiplier float64) {
	if c == nil || c.Body == nil || c.Jumping {
		return
	}
	if math.Abs(c.Body.Velocity.Y) > c.Body.cfg.JumpTolerance {
		return
	}
	c.Jumping = true
	c.Body.Detach()
	c.Body.Velocity.Y += c.JumpSpeed * multiplier
}

// Ticks is the number of completed ticks.
func (c *Character) Ticks() uint64 {
	return c.ticks
}

// Tick runs intent, then the body's movement, then derives the flags the
// presentation layer reads.
func (c *Character) Tick(dt float64) error {
	if c == nil || c.Body == nil {
		return ErrNoGeometry
	}
	if c.Controller != nil {
		if err := c.Controller.ComputeIntent(c); err != nil {
			return fmt.Errorf("kinematic: %s intent: %w", c.Name, err)
		}
	}

	c.Grounded = false
	if err := c.Body.Tick(dt); err != nil {
		return err
	}
	c.ticks++

	if c.Body.platform != nil {
		c.Grounded = true
		c.Walking = c.Body.Velocity.X != 0
	} else {
		c.Walking = false
	}
	switch {
	case c.Body.Velocity.X > 0:
		c.Facing = common.Right
	case c.Body.Velocity.X < 0:
		c.Facing = common.Left
	}
	return nil
}
