package anim

import "fmt"

// Table is a built animation registry. It is a view over one generation of
// an Arena and stops answering queries once the arena is reset.
type Table struct {
	arena *Arena
	gen   uint32
	head  EntityID
}

// Valid reports whether the backing arena still holds this table.
func (t *Table) Valid() bool {
	return t != nil && t.arena != nil && t.arena.gen == t.gen
}

// Get returns a cursor on the first frame of the first animation of the
// entity called name.
func (t *Table) Get(name string) (Asset, error) {
	if !t.Valid() {
		return Asset{}, ErrStaleTable
	}
	id := t.findEntity(name)
	if id == NoEntity {
		return Asset{}, fmt.Errorf("anim: get %s: %w", name, ErrEntityNotFound)
	}
	ent, _ := t.arena.entity(id)
	an, ok := t.arena.animation(ent.head)
	if !ok {
		return Asset{}, fmt.Errorf("anim: get %s: %w", name, ErrEmptyAnimation)
	}
	return Asset{entity: id, frame: an.head, arena: t.arena, gen: t.gen, ok: true}, nil
}

// Set switches the asset to the animation called name and restarts its
// timer. Asking for the animation already playing changes nothing. Unknown
// names leave the asset untouched and report false.
func (t *Table) Set(a *Asset, name string) bool {
	if !t.owns(a) {
		return false
	}
	fr, ok := t.arena.frame(a.frame)
	if !ok {
		return false
	}
	if cur, ok := t.arena.animation(fr.owner); ok && cur.name == name {
		return true
	}

	an, ok := t.arena.animation(t.findAnimation(a.entity, name))
	if !ok {
		ent, _ := t.arena.entity(a.entity)
		Logger().Debug("anim: set: unknown animation", "entity", ent.name, "animation", name)
		return false
	}
	a.frame = an.head
	a.elapsed = 0
	return true
}

// Update adds dt to the asset's timer and moves to the next frame once a full
// FrameDuration has accumulated. Time past the threshold is dropped. It
// reports whether the frame changed.
func (t *Table) Update(a *Asset, dt float64) bool {
	if !t.owns(a) {
		return false
	}
	a.elapsed += dt
	if a.elapsed < FrameDuration {
		return false
	}
	fr, ok := t.arena.frame(a.frame)
	if !ok {
		return false
	}
	a.frame = fr.next
	a.elapsed = 0
	return true
}

// Entities returns entity names in insertion order.
func (t *Table) Entities() []string {
	if !t.Valid() {
		return nil
	}
	var out []string
	for id := t.head; id != NoEntity; {
		ent, _ := t.arena.entity(id)
		out = append(out, ent.name)
		id = ent.next
	}
	return out
}

// Animations returns the animation names of entity in insertion order.
func (t *Table) Animations(entity string) []string {
	if !t.Valid() {
		return nil
	}
	ent, ok := t.arena.entity(t.findEntity(entity))
	if !ok {
		return nil
	}
	var out []string
	for id := ent.head; id != NoAnimation; {
		an, _ := t.arena.animation(id)
		out = append(out, an.name)
		id = an.next
	}
	return out
}

// Frames returns the frames of one animation, starting at its first frame.
func (t *Table) Frames(entity, animation string) []FrameID {
	if !t.Valid() {
		return nil
	}
	an, ok := t.arena.animation(t.findAnimation(t.findEntity(entity), animation))
	if !ok {
		return nil
	}
	out := make([]FrameID, 0, an.frames)
	id := an.head
	for i := 0; i < an.frames; i++ {
		out = append(out, id)
		fr, _ := t.arena.frame(id)
		id = fr.next
	}
	return out
}

// Next returns the frame that follows id.
func (t *Table) Next(id FrameID) FrameID {
	if !t.Valid() {
		return NoFrame
	}
	fr, ok := t.arena.frame(id)
	if !ok {
		return NoFrame
	}
	return fr.next
}

// FrameName returns the sprite name of frame id.
func (t *Table) FrameName(id FrameID) string {
	if !t.Valid() {
		return ""
	}
	if fr, ok := t.arena.frame(id); ok {
		return fr.name
	}
	return ""
}

// FrameRect returns the source rect of frame id.
func (t *Table) FrameRect(id FrameID) Rect {
	if !t.Valid() {
		return Rect{}
	}
	if fr, ok := t.arena.frame(id); ok {
		return fr.rect
	}
	return Rect{}
}

// EntityName returns the name of the entity the asset plays.
func (t *Table) EntityName(a Asset) string {
	if !t.owns(&a) {
		return ""
	}
	ent, _ := t.arena.entity(a.entity)
	return ent.name
}

// AnimationName returns the name of the animation the asset is on.
func (t *Table) AnimationName(a Asset) string {
	if !t.owns(&a) {
		return ""
	}
	fr, ok := t.arena.frame(a.frame)
	if !ok {
		return ""
	}
	an, _ := t.arena.animation(fr.owner)
	return an.name
}

func (t *Table) owns(a *Asset) bool {
	if a == nil || !a.ok || !t.Valid() || a.arena != t.arena || a.gen != t.gen {
		return false
	}
	_, ok := t.arena.entity(a.entity)
	return ok
}

func (t *Table) findEntity(name string) EntityID {
	for id := t.head; id != NoEntity; {
		ent, _ := t.arena.entity(id)
		if ent.name == name {
			return id
		}
		id = ent.next
	}
	return NoEntity
}

func (t *Table) findAnimation(entity EntityID, name string) AnimationID {
	ent, ok := t.arena.entity(entity)
	if !ok {
		return NoAnimation
	}
	for id := ent.head; id != NoAnimation; {
		an, _ := t.arena.animation(id)
		if an.name == name {
			return id
		}
		id = an.next
	}
	return NoAnimation
}
