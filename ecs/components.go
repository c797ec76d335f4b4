package ecs

import (
	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/script"
)

// Transform places an entity's sprite on screen.
type Transform struct {
	X, Y   float64
	ScaleX float64
	ScaleY float64
	FlipX  bool
}

// Animator plays one table entity. Clip is the animation last seen playing;
// it is what survives a table rebuild.
type Animator struct {
	Name       string
	Clip       string
	Asset      anim.Asset
	Controller *script.Controller
	Params     map[string]any
}
