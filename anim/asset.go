package anim

// FrameDuration is how long every frame is shown, in seconds.
const FrameDuration = 1.0

// Asset is a playback cursor into a Table: the entity being shown, its
// current frame and the time accumulated toward the next frame. The zero
// value is not attached to any table.
type Asset struct {
	entity  EntityID
	frame   FrameID
	elapsed float64
	arena   *Arena
	gen     uint32
	ok      bool
}

// Valid reports whether the asset was obtained from Table.Get.
func (a Asset) Valid() bool {
	return a.ok
}

// Entity returns the entity the asset plays.
func (a Asset) Entity() EntityID {
	if !a.ok {
		return NoEntity
	}
	return a.entity
}

// Frame returns the frame currently shown.
func (a Asset) Frame() FrameID {
	if !a.ok {
		return NoFrame
	}
	return a.frame
}

// Elapsed returns the time spent on the current frame.
func (a Asset) Elapsed() float64 {
	return a.elapsed
}
