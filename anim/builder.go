package anim

import "fmt"

// Builder constructs a Table. Each Add call appends to the most recently added
// parent: animations go under the current entity, frames under the current
// animation.
type Builder struct {
	arena  *Arena
	lookup RectLookup
	table  *Table

	entity    EntityID
	animation AnimationID
	frame     FrameID
	closed    bool
}

// Begin resets arena and starts a new build. Tables previously built on the
// same arena become invalid. A nil lookup gives every frame an empty rect.
func Begin(arena *Arena, lookup RectLookup) *Builder {
	if arena == nil {
		arena = NewArena(0)
	}
	arena.Reset()
	return &Builder{
		arena:     arena,
		lookup:    lookup,
		table:     &Table{arena: arena, gen: arena.gen, head: NoEntity},
		entity:    NoEntity,
		animation: NoAnimation,
		frame:     NoFrame,
	}
}

// AddEntity appends a new entity and makes it current.
func (b *Builder) AddEntity(name string) error {
	if !b.open() {
		return ErrBuilderClosed
	}
	if name == "" {
		return fmt.Errorf("anim: add entity: %w", ErrEmptyName)
	}

	id := b.arena.newEntity(name)
	if prev, ok := b.arena.entity(b.entity); ok {
		prev.next = id
	} else {
		b.table.head = id
	}
	b.entity = id
	b.animation = NoAnimation
	b.frame = NoFrame
	return nil
}

// AddAnimation appends a new animation to the current entity.
func (b *Builder) AddAnimation(name string) error {
	if !b.open() {
		return ErrBuilderClosed
	}
	if name == "" {
		return fmt.Errorf("anim: add animation: %w", ErrEmptyName)
	}
	if _, ok := b.arena.entity(b.entity); !ok {
		return fmt.Errorf("anim: add animation %s: %w", name, ErrNoEntity)
	}

	id := b.arena.newAnimation(name, b.entity)
	if prev, ok := b.arena.animation(b.animation); ok {
		prev.next = id
	} else {
		ent, _ := b.arena.entity(b.entity)
		ent.head = id
	}
	b.animation = id
	b.frame = NoFrame
	return nil
}

// AddFrame resolves the sprite rect for name and appends a frame to the
// current animation. The frame list is closed into a loop after every call.
func (b *Builder) AddFrame(name string) error {
	if !b.open() {
		return ErrBuilderClosed
	}
	if name == "" {
		return fmt.Errorf("anim: add frame: %w", ErrEmptyName)
	}
	if _, ok := b.arena.animation(b.animation); !ok {
		return fmt.Errorf("anim: add frame %s: %w", name, ErrNoAnimation)
	}

	var rect Rect
	if b.lookup != nil {
		r, ok := b.lookup.Rect(name)
		if !ok {
			return fmt.Errorf("anim: add frame %s: %w", name, ErrUnknownSprite)
		}
		rect = r
	}

	id := b.arena.newFrame(name, rect, b.animation)
	an, _ := b.arena.animation(b.animation)
	if prev, ok := b.arena.frame(b.frame); ok {
		prev.next = id
	} else {
		an.head = id
	}
	an.frames++

	fr, _ := b.arena.frame(id)
	fr.next = an.head
	b.frame = id
	return nil
}

// End finishes the build and returns the table. Every animation must have at
// least one frame.
func (b *Builder) End() (*Table, error) {
	if !b.open() {
		return nil, ErrBuilderClosed
	}
	b.closed = true

	for i := range b.arena.animations {
		an := &b.arena.animations[i]
		if an.frames == 0 {
			owner := ""
			if ent, ok := b.arena.entity(an.owner); ok {
				owner = ent.name
			}
			return nil, fmt.Errorf("anim: end %s/%s: %w", owner, an.name, ErrEmptyAnimation)
		}
	}

	entities, animations, frames := b.arena.Len()
	Logger().Debug("anim: table built",
		"entities", entities,
		"animations", animations,
		"frames", frames,
	)
	return b.table, nil
}

// open reports whether the builder may still write. A later Begin on the
// same arena closes it.
func (b *Builder) open() bool {
	return !b.closed && b.arena.gen == b.table.gen
}
