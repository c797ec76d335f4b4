package ecs

import "github.com/hajimehoshi/ebiten/v2"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Drawer is a system that also renders.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// World owns entities, their components and the system order.
type World struct {
	entities entityStore
	systems  []System

	transforms SparseSet[Transform]
	animators  SparseSet[Animator]
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false for
// entities that are already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	w.transforms.Remove(e)
	w.animators.Remove(e)
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.count()
}

// Transforms returns the transform storage.
func (w *World) Transforms() *SparseSet[Transform] {
	return &w.transforms
}

// Animators returns the animator storage.
func (w *World) Animators() *SparseSet[Animator] {
	return &w.animators
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once.
func (w *World) Update() {
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Draw calls every system that can draw, in update order.
func (w *World) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	for _, s := range w.systems {
		if d, ok := s.(Drawer); ok {
			d.Draw(w, screen)
		}
	}
}
