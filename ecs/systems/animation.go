package systems

import (
	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/ecs"
)

// AnimationSystem runs animator controllers and advances playback by a fixed
// step every tick.
type AnimationSystem struct {
	Table *anim.Table
	Step  float64
}

// NewAnimationSystem creates an AnimationSystem advancing by step seconds per
// tick (1/60 for ebiten's default tick rate).
func NewAnimationSystem(tbl *anim.Table, step float64) *AnimationSystem {
	return &AnimationSystem{Table: tbl, Step: step}
}

// Update runs controllers first so a switch made this tick starts counting
// immediately.
func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil || s.Table == nil {
		return
	}
	set := w.Animators()
	for _, e := range set.Entities() {
		a, ok := set.Get(e)
		if !ok {
			continue
		}
		if !a.Asset.Valid() && !s.attach(a) {
			continue
		}
		if a.Controller != nil {
			if err := a.Controller.Run(s.Table, &a.Asset, a.Params); err != nil {
				anim.Logger().Warn("animation: controller disabled", "entity", e.String(), "script", a.Controller.Name(), "err", err)
				a.Controller = nil
			}
		}
		s.Table.Update(&a.Asset, s.Step)
		a.Clip = s.Table.AnimationName(a.Asset)
	}
}

// Play switches every animator that has an animation called name and
// returns how many did.
func (s *AnimationSystem) Play(w *ecs.World, name string) int {
	if w == nil || s.Table == nil {
		return 0
	}
	n := 0
	set := w.Animators()
	for _, e := range set.Entities() {
		a, _ := set.Get(e)
		if s.Table.Set(&a.Asset, name) {
			a.Clip = name
			n++
		}
	}
	return n
}

// Rebind points every animator at tbl, keeping its current animation when
// the new table still has it. Animators whose entity vanished are detached
// and return to playing once it reappears.
func (s *AnimationSystem) Rebind(w *ecs.World, tbl *anim.Table) {
	s.Table = tbl
	if w == nil {
		return
	}
	set := w.Animators()
	for _, e := range set.Entities() {
		a, _ := set.Get(e)
		a.Asset = anim.Asset{}
		s.attach(a)
	}
}

func (s *AnimationSystem) attach(a *ecs.Animator) bool {
	asset, err := s.Table.Get(a.Name)
	if err != nil {
		return false
	}
	if a.Clip != "" {
		s.Table.Set(&asset, a.Clip)
	}
	a.Asset = asset
	a.Clip = s.Table.AnimationName(asset)
	return true
}
