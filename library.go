package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/assets"
	"github.com/milk9111/animtable/atlas"
	"github.com/milk9111/animtable/prefabs"
)

// library owns the live table and the two arenas tables are built into. A
// rebuild goes into the arena the live table does not use, so a broken
// definition file leaves the previous table playing.
type library struct {
	tablePath string
	atlasPath string

	arenas [2]*anim.Arena
	live   int

	table *anim.Table
	atlas *atlas.Atlas
	sheet *ebiten.Image
}

func newLibrary(tablePath, atlasPath string) *library {
	return &library{
		tablePath: tablePath,
		atlasPath: atlasPath,
		arenas:    [2]*anim.Arena{anim.NewArena(64), anim.NewArena(64)},
	}
}

func (l *library) load() error {
	as, err := prefabs.LoadAtlasSpec(l.atlasPath)
	if err != nil {
		return err
	}
	at, err := prefabs.BuildAtlas(as)
	if err != nil {
		return fmt.Errorf("atlas %s: %w", l.atlasPath, err)
	}
	if l.atlas != nil {
		assets.Forget(at.Image)
	}
	sheet, err := assets.LoadImage(at.Image)
	if err != nil {
		return err
	}

	ts, err := prefabs.LoadTableSpec(l.tablePath)
	if err != nil {
		return err
	}
	next := l.live
	if l.table != nil {
		next = 1 - l.live
	}
	tbl, err := prefabs.BuildTable(l.arenas[next], at, ts)
	if err != nil {
		return fmt.Errorf("table %s: %w", l.tablePath, err)
	}

	l.live = next
	l.table = tbl
	l.atlas = at
	l.sheet = sheet
	return nil
}
