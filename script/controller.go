// Package script runs tengo animation controllers. A controller script
// defines update(engine, state); it is called once per tick and may ask for a
// different animation through engine.set. state is a map that survives
// between ticks, so a script can pick up where it left off.
package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/animtable/anim"
)

const dispatchScript = `
if __phase == "update" {
	update(__engine, __state)
}
`

// Controller is one compiled script bound to one playback cursor. Use Clone
// to drive several cursors from the same source.
type Controller struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	initial  string
	started  bool
	pending  string
}

// NewController compiles src. The optional global initial_animation is
// applied before the first update.
func NewController(name string, src []byte) (*Controller, error) {
	full := string(src) + "\n" + dispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	c := &Controller{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}

	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := c.run("noop", noop); err != nil {
		return nil, fmt.Errorf("script: init %s: %w", name, err)
	}
	if compiled.IsDefined("initial_animation") {
		c.initial = strings.TrimSpace(compiled.Get("initial_animation").String())
	}
	return c, nil
}

// Name returns the name the controller was compiled under.
func (c *Controller) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Clone returns a controller sharing the compiled program with fresh state.
func (c *Controller) Clone() *Controller {
	if c == nil {
		return nil
	}
	return &Controller{
		name:     c.name,
		compiled: c.compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		initial:  c.initial,
	}
}

// Run executes one tick of the script against a. params are exposed to the
// script through engine.param(name). An animation requested with engine.set
// is applied through Table.Set after the script returns.
func (c *Controller) Run(tbl *anim.Table, a *anim.Asset, params map[string]any) error {
	if c == nil || c.compiled == nil {
		return fmt.Errorf("script: nil controller")
	}
	if !c.started {
		if c.initial != "" && !tbl.Set(a, c.initial) {
			anim.Logger().Warn("script: unknown initial animation", "script", c.name, "animation", c.initial)
		}
		c.started = true
	}

	c.pending = ""
	if err := c.run("update", c.engine(tbl, a, params)); err != nil {
		return fmt.Errorf("script: run %s: %w", c.name, err)
	}
	if c.pending != "" {
		tbl.Set(a, c.pending)
		c.pending = ""
	}
	return nil
}

func (c *Controller) run(phase string, engine *tengo.ImmutableMap) error {
	if err := c.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := c.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := c.compiled.Set("__state", c.state); err != nil {
		return err
	}
	return c.compiled.Run()
}

func (c *Controller) engine(tbl *anim.Table, a *anim.Asset, params map[string]any) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["animation"] = &tengo.UserFunction{Name: "animation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: tbl.AnimationName(*a)}, nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: tbl.FrameName(a.Frame())}, nil
	}}

	values["elapsed"] = &tengo.UserFunction{Name: "elapsed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: a.Elapsed()}, nil
	}}

	values["set"] = &tengo.UserFunction{Name: "set", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		c.pending = name
		return tengo.TrueValue, nil
	}}

	values["param"] = &tengo.UserFunction{Name: "param", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 || params == nil {
			return tengo.UndefinedValue, nil
		}
		v, ok := params[objectAsString(args[0])]
		if !ok {
			return tengo.UndefinedValue, nil
		}
		obj, err := tengo.FromInterface(v)
		if err != nil {
			return tengo.UndefinedValue, nil
		}
		return obj, nil
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
