package anim

import (
	"errors"
	"testing"
)

func gridLookup(names ...string) RectLookup {
	rects := make(map[string]Rect, len(names))
	for i, n := range names {
		rects[n] = Rect{X: float32(i * 32), Y: 0, Width: 32, Height: 32}
	}
	return RectLookupFunc(func(name string) (Rect, bool) {
		r, ok := rects[name]
		return r, ok
	})
}

func TestBuilderPreconditions(t *testing.T) {
	cases := []struct {
		name  string
		steps func(b *Builder) error
		want  error
	}{
		{"empty_entity_name", func(b *Builder) error { return b.AddEntity("") }, ErrEmptyName},
		{"animation_without_entity", func(b *Builder) error { return b.AddAnimation("idle") }, ErrNoEntity},
		{"frame_without_animation", func(b *Builder) error {
			if err := b.AddEntity("Hero"); err != nil {
				return err
			}
			return b.AddFrame("idle_0")
		}, ErrNoAnimation},
		{"unknown_sprite", func(b *Builder) error {
			if err := b.AddEntity("Hero"); err != nil {
				return err
			}
			if err := b.AddAnimation("idle"); err != nil {
				return err
			}
			return b.AddFrame("missing")
		}, ErrUnknownSprite},
		{"add_after_end", func(b *Builder) error {
			if _, err := b.End(); err != nil {
				return err
			}
			return b.AddEntity("Hero")
		}, ErrBuilderClosed},
		{"empty_animation_at_end", func(b *Builder) error {
			if err := b.AddEntity("Hero"); err != nil {
				return err
			}
			if err := b.AddAnimation("idle"); err != nil {
				return err
			}
			_, err := b.End()
			return err
		}, ErrEmptyAnimation},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := Begin(NewArena(8), gridLookup("idle_0"))
			err := c.steps(b)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestBuilderFrameRectsFromLookup(t *testing.T) {
	b := Begin(NewArena(8), gridLookup("a", "b"))
	mustAdd(t, b.AddEntity("E"))
	mustAdd(t, b.AddAnimation("loop"))
	mustAdd(t, b.AddFrame("a"))
	mustAdd(t, b.AddFrame("b"))
	tbl, err := b.End()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	frames := tbl.Frames("E", "loop")
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if r := tbl.FrameRect(frames[1]); r.X != 32 || r.Width != 32 {
		t.Fatalf("unexpected rect for b: %+v", r)
	}
}

func TestBuilderCircularFrames(t *testing.T) {
	cases := []struct {
		name   string
		frames []string
	}{
		{"single", []string{"f0"}},
		{"two", []string{"f0", "f1"}},
		{"five", []string{"f0", "f1", "f2", "f3", "f4"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := Begin(NewArena(8), nil)
			mustAdd(t, b.AddEntity("E"))
			mustAdd(t, b.AddAnimation("A"))
			for i, f := range c.frames {
				mustAdd(t, b.AddFrame(f))
				// the loop is closed after every insertion, not only the last
				ids := b.table.Frames("E", "A")
				if len(ids) != i+1 {
					t.Fatalf("expected %d frames, got %d", i+1, len(ids))
				}
				if b.table.Next(ids[i]) != ids[0] {
					t.Fatalf("last frame does not wrap to the head after %d inserts", i+1)
				}
			}
			tbl, err := b.End()
			if err != nil {
				t.Fatalf("end: %v", err)
			}

			ids := tbl.Frames("E", "A")
			for start := range ids {
				id := ids[start]
				for step := 0; step < len(c.frames); step++ {
					id = tbl.Next(id)
				}
				if id != ids[start] {
					t.Fatalf("walk of %d steps from %s did not return", len(c.frames), tbl.FrameName(ids[start]))
				}
			}
		})
	}
}

func TestBeginInvalidatesPreviousTable(t *testing.T) {
	arena := NewArena(8)
	old := buildTable(t, arena, map[string]map[string][]string{"Hero": {"idle": {"idle_0"}}})
	asset, err := old.Get("Hero")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	fresh := buildTable(t, arena, map[string]map[string][]string{"Slime": {"bounce": {"b0"}}})
	if old.Valid() {
		t.Fatalf("old table should be invalid after Begin")
	}
	if _, err := old.Get("Hero"); !errors.Is(err, ErrStaleTable) {
		t.Fatalf("expected ErrStaleTable, got %v", err)
	}
	if fresh.Update(&asset, 1) {
		t.Fatalf("asset from an old table must not advance on a new one")
	}
	if e, _, f := arena.Len(); e != 1 || f != 1 {
		t.Fatalf("arena should only hold the new build, got %d entities %d frames", e, f)
	}
}

func TestBeginClosesPreviousBuilder(t *testing.T) {
	arena := NewArena(8)
	stale := Begin(arena, nil)
	mustAdd(t, stale.AddEntity("Old"))
	mustAdd(t, stale.AddAnimation("idle"))
	mustAdd(t, stale.AddFrame("old_0"))

	live := buildTable(t, arena, map[string]map[string][]string{"Hero": {"idle": {"idle_0", "idle_1"}}})

	steps := map[string]func() error{
		"AddEntity":    func() error { return stale.AddEntity("Ghost") },
		"AddAnimation": func() error { return stale.AddAnimation("float") },
		"AddFrame":     func() error { return stale.AddFrame("ghost_0") },
		"End": func() error {
			_, err := stale.End()
			return err
		},
	}
	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			if err := step(); !errors.Is(err, ErrBuilderClosed) {
				t.Fatalf("expected ErrBuilderClosed, got %v", err)
			}
		})
	}

	if got := live.Entities(); len(got) != 1 || got[0] != "Hero" {
		t.Fatalf("live entities = %v, want [Hero]", got)
	}
	if got := len(live.Frames("Hero", "idle")); got != 2 {
		t.Fatalf("live idle frames = %d, want 2", got)
	}
	if e, a, f := arena.Len(); e != 1 || a != 1 || f != 2 {
		t.Fatalf("arena holds %d/%d/%d nodes, want 1/1/2", e, a, f)
	}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
}

// buildTable builds one animation per map entry. Map iteration order is
// irrelevant as long as each entity has a single animation.
func buildTable(t *testing.T, arena *Arena, def map[string]map[string][]string) *Table {
	t.Helper()
	b := Begin(arena, nil)
	for ent, anims := range def {
		mustAdd(t, b.AddEntity(ent))
		for an, frames := range anims {
			mustAdd(t, b.AddAnimation(an))
			for _, f := range frames {
				mustAdd(t, b.AddFrame(f))
			}
		}
	}
	tbl, err := b.End()
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	return tbl
}
