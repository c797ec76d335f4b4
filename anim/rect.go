package anim

import (
	"image"
	"math"
)

// Rect is a source rectangle in sprite sheet (atlas) coordinates.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Image returns the integer pixel bounds of r, suitable for SubImage.
func (r Rect) Image() image.Rectangle {
	x0 := int(math.Floor(float64(r.X)))
	y0 := int(math.Floor(float64(r.Y)))
	x1 := int(math.Ceil(float64(r.X + r.Width)))
	y1 := int(math.Ceil(float64(r.Y + r.Height)))
	return image.Rect(x0, y0, x1, y1)
}

// RectLookup resolves a sprite name to its rect in the sheet.
type RectLookup interface {
	Rect(name string) (Rect, bool)
}

// RectLookupFunc adapts a plain function to RectLookup.
type RectLookupFunc func(name string) (Rect, bool)

func (f RectLookupFunc) Rect(name string) (Rect, bool) {
	return f(name)
}
