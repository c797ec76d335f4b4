package script

import (
	"testing"

	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/prefabs"
)

func heroTable(t *testing.T) *anim.Table {
	t.Helper()
	b := anim.Begin(anim.NewArena(16), nil)
	steps := []func() error{
		func() error { return b.AddEntity("Hero") },
		func() error { return b.AddAnimation("idle") },
		func() error { return b.AddFrame("idle_0") },
		func() error { return b.AddFrame("idle_1") },
		func() error { return b.AddAnimation("walk") },
		func() error { return b.AddFrame("walk_0") },
		func() error { return b.AddAnimation("run") },
		func() error { return b.AddFrame("run_0") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("build: %v", err)
		}
	}
	tbl, err := b.End()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	return tbl
}

func TestControllerPatrol(t *testing.T) {
	src, err := prefabs.LoadScript("patrol")
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	proto, err := NewController("patrol", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	cases := []struct {
		name   string
		params map[string]any
		want   string
	}{
		{"no_params", nil, "idle"},
		{"stopped", map[string]any{"speed": 0}, "idle"},
		{"walking", map[string]any{"speed": 1.5}, "walk"},
		{"running", map[string]any{"speed": 4}, "run"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tbl := heroTable(t)
			a, err := tbl.Get("Hero")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			ctrl := proto.Clone()
			if err := ctrl.Run(tbl, &a, c.params); err != nil {
				t.Fatalf("run: %v", err)
			}
			if got := tbl.AnimationName(a); got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestControllerInitialAnimationAndState(t *testing.T) {
	src := []byte(`
initial_animation := "walk"
update := func(engine, state) {
	if state.n == undefined {
		state.n = 0
	}
	state.n += 1
	if state.n == 3 {
		engine.set("run")
	}
}
`)
	ctrl, err := NewController("inline", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	tbl := heroTable(t)
	a, _ := tbl.Get("Hero")

	want := []string{"walk", "walk", "run", "run"}
	for i, w := range want {
		if err := ctrl.Run(tbl, &a, nil); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if got := tbl.AnimationName(a); got != w {
			t.Fatalf("tick %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestControllerReadsFrame(t *testing.T) {
	src := []byte(`
update := func(engine, state) {
	if engine.frame() == "idle_1" && engine.elapsed() == 0 {
		engine.set("walk")
	}
}
`)
	ctrl, err := NewController("frame", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	tbl := heroTable(t)
	a, _ := tbl.Get("Hero")

	if err := ctrl.Run(tbl, &a, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := tbl.AnimationName(a); got != "idle" {
		t.Fatalf("expected idle before the frame changes, got %s", got)
	}
	tbl.Update(&a, anim.FrameDuration)
	if err := ctrl.Run(tbl, &a, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := tbl.AnimationName(a); got != "walk" {
		t.Fatalf("expected walk on idle_1, got %s", got)
	}
}

func TestControllerErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `update := func(engine, state) {`},
		{"missing_update", `x := 1`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl, err := NewController(c.name, []byte(c.src))
			if err == nil {
				tbl := heroTable(t)
				a, _ := tbl.Get("Hero")
				err = ctrl.Run(tbl, &a, nil)
			}
			if err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
