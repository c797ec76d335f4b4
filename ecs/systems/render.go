package systems

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/ecs"
)

// RenderSystem draws the current frame of every animator that has a
// transform, cut from one sprite sheet.
type RenderSystem struct {
	Table *anim.Table
	Sheet *ebiten.Image
	Zoom  float64
}

// NewRenderSystem creates a RenderSystem.
func NewRenderSystem(tbl *anim.Table, sheet *ebiten.Image, zoom float64) *RenderSystem {
	return &RenderSystem{Table: tbl, Sheet: sheet, Zoom: zoom}
}

// Update is a no-op (render occurs in Draw).
func (s *RenderSystem) Update(w *ecs.World) {}

// Draw renders animators sorted top to bottom.
func (s *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil || s.Sheet == nil || s.Table == nil {
		return
	}
	zoom := s.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	type item struct {
		e  ecs.Entity
		tx *ecs.Transform
		a  *ecs.Animator
	}

	set := w.Animators()
	items := make([]item, 0, set.Len())
	for _, e := range set.Entities() {
		tx, ok := w.Transforms().Get(e)
		if !ok {
			continue
		}
		a, _ := set.Get(e)
		if !a.Asset.Valid() {
			continue
		}
		items = append(items, item{e: e, tx: tx, a: a})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].tx.Y < items[j].tx.Y })

	for _, it := range items {
		s.drawFrame(screen, it.a, it.tx, zoom)
	}
}

func (s *RenderSystem) drawFrame(screen *ebiten.Image, a *ecs.Animator, tx *ecs.Transform, zoom float64) {
	r := s.Table.FrameRect(a.Asset.Frame())
	if r.Empty() {
		return
	}
	bounds := r.Image().Intersect(s.Sheet.Bounds())
	if bounds.Empty() {
		return
	}
	frame := s.Sheet.SubImage(bounds).(*ebiten.Image)
	w := float64(bounds.Dx())

	scaleX := tx.ScaleX
	if scaleX == 0 {
		scaleX = 1
	}
	scaleY := tx.ScaleY
	if scaleY == 0 {
		scaleY = 1
	}
	fx := 1.0
	if tx.FlipX {
		fx = -1.0
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scaleX*zoom*fx, scaleY*zoom)
	if tx.FlipX {
		op.GeoM.Translate(w*scaleX*zoom, 0)
	}
	op.GeoM.Translate(math.Round(tx.X*zoom), math.Round(tx.Y*zoom))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frame, op)
}
