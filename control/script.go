package control

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/raysweep/kinematic"
	"github.com/milk9111/raysweep/prefabs"
)

var ErrNoIntentFunc = errors.New("control: script does not define compute_intent")

const intentDispatchScript = `
if __phase == "intent" {
	compute_intent(__engine, __state)
}
`

// Script is a Controller backed by a tengo script defining
//
//	compute_intent := func(engine, state) { ... }
//
// state is a map that persists across ticks and reloads.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// NewScript compiles src. It fails if the script does not compile or does
// not define compute_intent.
func NewScript(name string, src []byte) (*Script, error) {
	s := &Script{
		name:  name,
		state: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if err := s.Reload(src); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadScript compiles a script from the prefabs scripts directory.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("control: load %s: %w", name, err)
	}
	return NewScript(name, src)
}

func (s *Script) Name() string {
	return s.name
}

// State exposes the persistent script state, mainly for inspection.
func (s *Script) State() map[string]any {
	return objectToAny(s.state).(map[string]any)
}

// Reload swaps in new source. The state map survives; on failure the
// previous program stays active.
func (s *Script) Reload(src []byte) error {
	if err := s.checkIntent(src); err != nil {
		return err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + intentDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("control: compile %s: %w", s.name, err)
	}
	s.compiled = compiled
	return nil
}

// checkIntent compiles and runs src on its own, without the dispatch
// snippet, so a missing compute_intent is reported as such.
func (s *Script) checkIntent(src []byte) error {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("control: compile %s: %w", s.name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("control: load %s: %w", s.name, err)
	}
	fn := compiled.Get("compute_intent")
	if fn == nil || fn.Object() == nil || !fn.Object().CanCall() {
		return fmt.Errorf("%w: %s", ErrNoIntentFunc, s.name)
	}
	return nil
}

// ComputeIntent runs compute_intent for one tick.
func (s *Script) ComputeIntent(c *kinematic.Character) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("control: nil script")
	}
	if err := s.compiled.Set("__phase", "intent"); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", s.engine(c)); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("control: %s: %w", s.name, err)
	}
	return nil
}

func vector(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func (s *Script) engine(c *kinematic.Character) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vector(c.Body.Velocity.X, c.Body.Velocity.Y), nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vector(c.Body.Position.X, c.Body.Position.Y), nil
	}}

	values["set_velocity_x"] = &tengo.UserFunction{Name: "set_velocity_x", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "v", Expected: "float", Found: args[0].TypeName()}
		}
		c.Body.Velocity.X = v
		return tengo.UndefinedValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		mult := 1.0
		if len(args) > 0 {
			v, ok := tengo.ToFloat64(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "multiplier", Expected: "float", Found: args[0].TypeName()}
			}
			mult = v
		}
		before := c.Jumping
		c.Jump(mult)
		return boolObject(!before && c.Jumping), nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(c.Grounded), nil
	}}

	values["jumping"] = &tengo.UserFunction{Name: "jumping", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(c.Jumping), nil
	}}

	values["walking"] = &tengo.UserFunction{Name: "walking", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(c.Walking), nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(c.Ticks())}, nil
	}}

	values["move_speed"] = &tengo.UserFunction{Name: "move_speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: c.MoveSpeed}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("control: %s: %s", c.Name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
