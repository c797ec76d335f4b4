package systems

import (
	"testing"

	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/ecs"
	"github.com/milk9111/animtable/script"
)

func buildTable(t *testing.T, arena *anim.Arena, withRun bool) *anim.Table {
	t.Helper()
	b := anim.Begin(arena, nil)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("build: %v", err)
		}
	}
	must(b.AddEntity("Hero"))
	must(b.AddAnimation("idle"))
	must(b.AddFrame("idle_0"))
	must(b.AddFrame("idle_1"))
	must(b.AddAnimation("walk"))
	must(b.AddFrame("walk_0"))
	must(b.AddFrame("walk_1"))
	if withRun {
		must(b.AddAnimation("run"))
		must(b.AddFrame("run_0"))
	}
	tbl, err := b.End()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	return tbl
}

func spawn(w *ecs.World, name string) ecs.Entity {
	e := w.CreateEntity()
	w.Transforms().Set(e, ecs.Transform{})
	w.Animators().Set(e, ecs.Animator{Name: name})
	return e
}

func TestAnimationSystemAdvances(t *testing.T) {
	tbl := buildTable(t, anim.NewArena(8), false)
	w := ecs.NewWorld()
	e := spawn(w, "Hero")
	missing := spawn(w, "Dragon")

	sys := NewAnimationSystem(tbl, 0.25)
	w.AddSystem(sys)

	for i := 0; i < 4; i++ {
		w.Update()
	}
	a, _ := w.Animators().Get(e)
	if got := tbl.FrameName(a.Asset.Frame()); got != "idle_1" {
		t.Fatalf("expected idle_1 after one second, got %s", got)
	}
	if a.Clip != "idle" {
		t.Fatalf("expected clip idle, got %q", a.Clip)
	}

	m, _ := w.Animators().Get(missing)
	if m.Asset.Valid() {
		t.Fatalf("animator for unknown entity should stay detached")
	}
}

func TestAnimationSystemPlayAndRebind(t *testing.T) {
	arena := anim.NewArena(8)
	tbl := buildTable(t, arena, true)
	w := ecs.NewWorld()
	e1 := spawn(w, "Hero")
	e2 := spawn(w, "Hero")

	sys := NewAnimationSystem(tbl, 0.5)
	w.AddSystem(sys)
	w.Update()

	if n := sys.Play(w, "run"); n != 2 {
		t.Fatalf("expected 2 animators switched, got %d", n)
	}
	if n := sys.Play(w, "fly"); n != 0 {
		t.Fatalf("expected no animator to switch to an unknown animation, got %d", n)
	}

	cases := []struct {
		name     string
		withRun  bool
		wantClip string
	}{
		{"clip_survives", true, "run"},
		{"clip_dropped_falls_back_to_first", false, "idle"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fresh := buildTable(t, arena, c.withRun)
			sys.Rebind(w, fresh)
			for _, e := range []ecs.Entity{e1, e2} {
				a, _ := w.Animators().Get(e)
				if !a.Asset.Valid() {
					t.Fatalf("animator should be attached after rebind")
				}
				if got := fresh.AnimationName(a.Asset); got != c.wantClip {
					t.Fatalf("expected %s, got %s", c.wantClip, got)
				}
			}
			w.Update()
		})
	}
}

func TestAnimationSystemRunsControllers(t *testing.T) {
	tbl := buildTable(t, anim.NewArena(8), false)
	ctrl, err := script.NewController("walker", []byte(`
update := func(engine, state) {
	if engine.param("moving") {
		engine.set("walk")
	}
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	w := ecs.NewWorld()
	e := w.CreateEntity()
	w.Animators().Set(e, ecs.Animator{Name: "Hero", Controller: ctrl, Params: map[string]any{"moving": true}})
	w.AddSystem(NewAnimationSystem(tbl, 0.1))
	w.Update()

	a, _ := w.Animators().Get(e)
	if a.Clip != "walk" {
		t.Fatalf("expected controller to switch to walk, got %q", a.Clip)
	}

	broken, err := script.NewController("broken", []byte(`
update := func(engine, state) {
	x := 1 / 0
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	a.Controller = broken
	w.Update()
	if a.Controller != nil {
		t.Fatalf("failing controller should be dropped")
	}
}
