package anim

// EntityID indexes an entity node in an Arena.
type EntityID int32

// AnimationID indexes an animation node in an Arena.
type AnimationID int32

// FrameID indexes a frame node in an Arena.
type FrameID int32

const (
	NoEntity    EntityID    = -1
	NoAnimation AnimationID = -1
	NoFrame     FrameID     = -1
)

type entityNode struct {
	name string
	head AnimationID
	next EntityID
}

type animationNode struct {
	name   string
	owner  EntityID
	head   FrameID
	next   AnimationID
	frames int
}

type frameNode struct {
	name  string
	rect  Rect
	next  FrameID
	owner AnimationID
}

// Arena owns every node of a built table. Nodes are stored in flat slices and
// referenced by index; nothing is freed individually. Reset drops everything
// at once and keeps the backing storage for the next build.
type Arena struct {
	entities   []entityNode
	animations []animationNode
	frames     []frameNode
	gen        uint32
}

// NewArena creates an arena with room for roughly hint frames before it grows.
func NewArena(hint int) *Arena {
	if hint < 0 {
		hint = 0
	}
	return &Arena{
		entities:   make([]entityNode, 0, hint/16+1),
		animations: make([]animationNode, 0, hint/4+1),
		frames:     make([]frameNode, 0, hint),
	}
}

// Reset invalidates every table built on this arena.
func (a *Arena) Reset() {
	if a == nil {
		return
	}
	a.entities = a.entities[:0]
	a.animations = a.animations[:0]
	a.frames = a.frames[:0]
	a.gen++
}

// Len returns the number of live nodes of each kind.
func (a *Arena) Len() (entities, animations, frames int) {
	if a == nil {
		return 0, 0, 0
	}
	return len(a.entities), len(a.animations), len(a.frames)
}

func (a *Arena) newEntity(name string) EntityID {
	a.entities = append(a.entities, entityNode{name: name, head: NoAnimation, next: NoEntity})
	return EntityID(len(a.entities) - 1)
}

func (a *Arena) newAnimation(name string, owner EntityID) AnimationID {
	a.animations = append(a.animations, animationNode{name: name, owner: owner, head: NoFrame, next: NoAnimation})
	return AnimationID(len(a.animations) - 1)
}

func (a *Arena) newFrame(name string, rect Rect, owner AnimationID) FrameID {
	a.frames = append(a.frames, frameNode{name: name, rect: rect, next: NoFrame, owner: owner})
	return FrameID(len(a.frames) - 1)
}

func (a *Arena) entity(id EntityID) (*entityNode, bool) {
	if id < 0 || int(id) >= len(a.entities) {
		return nil, false
	}
	return &a.entities[id], true
}

func (a *Arena) animation(id AnimationID) (*animationNode, bool) {
	if id < 0 || int(id) >= len(a.animations) {
		return nil, false
	}
	return &a.animations[id], true
}

func (a *Arena) frame(id FrameID) (*frameNode, bool) {
	if id < 0 || int(id) >= len(a.frames) {
		return nil, false
	}
	return &a.frames[id], true
}
