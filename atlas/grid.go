package atlas

import (
	"fmt"

	"github.com/milk9111/animtable/anim"
)

// Grid describes a run of equally sized frames on a sprite sheet. Frames are
// read left to right starting at (Row, ColStart) and named Prefix_0,
// Prefix_1, ... When Columns is set, frames past the end of a row continue
// at column 0 of the next row.
type Grid struct {
	Prefix   string
	Row      int
	ColStart int
	Count    int
	FrameW   int
	FrameH   int
	Columns  int
}

// AddGrid registers every frame of g.
func (a *Atlas) AddGrid(g Grid) error {
	if g.Prefix == "" || g.Count <= 0 || g.FrameW <= 0 || g.FrameH <= 0 || g.Row < 0 || g.ColStart < 0 {
		return fmt.Errorf("atlas: grid %q: %w", g.Prefix, ErrInvalidGrid)
	}
	if g.Columns > 0 && g.ColStart >= g.Columns {
		return fmt.Errorf("atlas: grid %q: col_start past columns: %w", g.Prefix, ErrInvalidGrid)
	}

	for i := 0; i < g.Count; i++ {
		col := g.ColStart + i
		row := g.Row
		if g.Columns > 0 {
			row += col / g.Columns
			col %= g.Columns
		}
		r := anim.Rect{
			X:      float32(col * g.FrameW),
			Y:      float32(row * g.FrameH),
			Width:  float32(g.FrameW),
			Height: float32(g.FrameH),
		}
		if err := a.Add(fmt.Sprintf("%s_%d", g.Prefix, i), r); err != nil {
			return err
		}
	}
	return nil
}
