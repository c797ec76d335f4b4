// Package atlas is the sprite table of a sheet: it maps sprite names to
// their rectangles so animation frames can be declared by name.
package atlas

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/animtable/anim"
)

var (
	ErrDuplicateSprite = errors.New("atlas: duplicate sprite")
	ErrEmptyRect       = errors.New("atlas: empty rect")
	ErrInvalidGrid     = errors.New("atlas: invalid grid")
)

// Atlas stores named rectangles into one sheet image.
type Atlas struct {
	Image string

	rects map[string]anim.Rect
}

// New creates an empty atlas for the given sheet image path.
func New(image string) *Atlas {
	return &Atlas{Image: image, rects: make(map[string]anim.Rect)}
}

// Add registers a sprite.
func (a *Atlas) Add(name string, r anim.Rect) error {
	if name == "" {
		return fmt.Errorf("atlas: add: %w", anim.ErrEmptyName)
	}
	if r.Empty() {
		return fmt.Errorf("atlas: add %s: %w", name, ErrEmptyRect)
	}
	if a.rects == nil {
		a.rects = make(map[string]anim.Rect)
	}
	if _, ok := a.rects[name]; ok {
		return fmt.Errorf("atlas: add %s: %w", name, ErrDuplicateSprite)
	}
	a.rects[name] = r
	return nil
}

// Rect returns the rect of a sprite. It satisfies anim.RectLookup.
func (a *Atlas) Rect(name string) (anim.Rect, bool) {
	if a == nil || name == "" {
		return anim.Rect{}, false
	}
	r, ok := a.rects[name]
	return r, ok
}

// Names returns all sprite names, sorted.
func (a *Atlas) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.rects))
	for n := range a.rects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (a *Atlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.rects)
}
