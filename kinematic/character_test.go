package kinematic

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func groundedCharacter(t *testing.T) (*Character, *Platform) {
	t.Helper()
	w := &segmentWorld{}
	floor := NewPlatform("floor")
	w.addBox(-50, -10, 50, -1, floor.Surface())
	b := mustBody(t, DefaultConfig(), w, vec(0, -0.49), vec(0.5, 0.5), SlopeAware{})
	c := NewCharacter("hero", b, nil)
	c.JumpSpeed = 12
	c.MoveSpeed = 5
	if err := c.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if !c.Grounded || b.Platform() != floor {
		t.Fatalf("setup: character should start on the floor")
	}
	return c, floor
}

func TestJump(t *testing.T) {
	c, _ := groundedCharacter(t)
	c.Jump(1)
	if !c.Jumping || c.Body.Platform() != nil {
		t.Fatalf("jump should set jumping and drop the platform")
	}
	if c.Body.Velocity.Y != 12 {
		t.Fatalf("expected vy 12, got %v", c.Body.Velocity.Y)
	}

	c.Jump(1)
	if c.Body.Velocity.Y != 12 {
		t.Fatalf("second jump must be a no-op, vy=%v", c.Body.Velocity.Y)
	}

	if err := c.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if c.Grounded || !c.Jumping {
		t.Fatalf("expected airborne, grounded=%v jumping=%v", c.Grounded, c.Jumping)
	}
	if !approx(c.Body.Velocity.Y, 9) {
		t.Fatalf("expected gravity to apply after the jump, vy=%v", c.Body.Velocity.Y)
	}
}

func TestJumpMultiplier(t *testing.T) {
	c, _ := groundedCharacter(t)
	c.Jump(0.5)
	if c.Body.Velocity.Y != 6 {
		t.Fatalf("expected vy 6, got %v", c.Body.Velocity.Y)
	}
}

func TestJumpDeadband(t *testing.T) {
	cases := []struct {
		name   string
		vy     float64
		accept bool
	}{
		{"at_rest", 0, true},
		{"inside_rising", 29, true},
		{"on_boundary", -30, true},
		{"falling_fast", -31, false},
		{"rising_fast", 45, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := mustBody(t, DefaultConfig(), &segmentWorld{}, vec(0, 0), vec(0.5, 0.5), nil)
			ch := NewCharacter("c", b, nil)
			ch.JumpSpeed = 10
			b.Velocity.Y = c.vy
			ch.Jump(1)
			if ch.Jumping != c.accept {
				t.Fatalf("expected accepted=%v, got jumping=%v", c.accept, ch.Jumping)
			}
			want := c.vy
			if c.accept {
				want += 10
			}
			if b.Velocity.Y != want {
				t.Fatalf("expected vy %v, got %v", want, b.Velocity.Y)
			}
		})
	}
}

func TestLandingEndsJump(t *testing.T) {
	c, floor := groundedCharacter(t)
	c.Jump(1)
	for i := 0; i < 20 && c.Jumping; i++ {
		if err := c.Tick(0.05); err != nil {
			t.Fatal(err)
		}
	}
	if c.Jumping || !c.Grounded || c.Body.Platform() != floor {
		t.Fatalf("character should land back on the floor, jumping=%v grounded=%v", c.Jumping, c.Grounded)
	}
}

func TestRestingOnGenericFloorStaysGrounded(t *testing.T) {
	w := &segmentWorld{}
	w.addBox(-10, -10, 10, -1, generic("ground"))
	b := mustBody(t, DefaultConfig(), w, vec(0, -0.49), vec(0.5, 0.5), SlopeAware{})
	c := NewCharacter("idle", b, nil)

	for i := 0; i < 40; i++ {
		if err := c.Tick(1.0 / 60); err != nil {
			t.Fatal(err)
		}
		if !c.Grounded {
			t.Fatalf("tick %d: resting character lost contact, y=%v vy=%v", i, b.Position.Y, b.Velocity.Y)
		}
		if !approx(b.Position.Y, -0.49) || b.Velocity.Y != 0 {
			t.Fatalf("tick %d: expected y -0.49 at rest, got y=%v vy=%v", i, b.Position.Y, b.Velocity.Y)
		}
	}
}

func TestWalkingAndFacing(t *testing.T) {
	c, _ := groundedCharacter(t)
	dir := 1.0
	c.Controller = ControllerFunc(func(c *Character) error {
		c.Body.Velocity.X = dir * c.MoveSpeed
		return nil
	})
	if err := c.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if !c.Walking || c.Facing != vec(1, 0) {
		t.Fatalf("expected walking right, walking=%v facing=%v", c.Walking, c.Facing)
	}
	if !approx(c.Body.Position.X, 0.5) {
		t.Fatalf("expected x 0.5, got %v", c.Body.Position.X)
	}

	dir = -1
	if err := c.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if c.Facing != vec(-1, 0) {
		t.Fatalf("expected facing left, got %v", c.Facing)
	}

	dir = 0
	if err := c.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if c.Walking {
		t.Fatalf("standing still should clear walking")
	}
	if c.Facing != vec(-1, 0) {
		t.Fatalf("facing should persist while idle, got %v", c.Facing)
	}
	if c.Ticks() != 4 {
		t.Fatalf("expected 4 ticks, got %d", c.Ticks())
	}
}

func TestControllerErrorIsWrapped(t *testing.T) {
	c, _ := groundedCharacter(t)
	boom := errors.New("boom")
	c.Controller = ControllerFunc(func(*Character) error { return boom })
	err := c.Tick(0.1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped controller error, got %v", err)
	}
	if !strings.Contains(err.Error(), "hero") {
		t.Fatalf("error should name the character: %v", err)
	}
}

func TestCollisionLogging(t *testing.T) {
	var lines []string
	cfg := noGravity()
	cfg.Logf = func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	w := &segmentWorld{}
	w.addBox(0.8, -5, 2, 5, generic("wall"))
	b := mustBody(t, cfg, w, vec(0, 0), vec(0.5, 0.5), nil)
	b.Velocity.X = 6
	if err := b.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "surface=wall") || !strings.Contains(lines[0], "+X") {
		t.Fatalf("unexpected log lines %q", lines)
	}
}
