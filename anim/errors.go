package anim

import "errors"

var (
	ErrEmptyName      = errors.New("anim: empty name")
	ErrNoEntity       = errors.New("anim: no current entity")
	ErrNoAnimation    = errors.New("anim: no current animation")
	ErrUnknownSprite  = errors.New("anim: unknown sprite")
	ErrEmptyAnimation = errors.New("anim: animation has no frames")
	ErrBuilderClosed  = errors.New("anim: builder already ended")
	ErrEntityNotFound = errors.New("anim: entity not found")
	ErrStaleTable     = errors.New("anim: table arena was reset")
)
