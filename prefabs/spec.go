package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/atlas"
	"gopkg.in/yaml.v3"
)

var ErrNoFrames = errors.New("prefabs: animation lists no frames")

// TableSpec is an animation table definition. Lists keep file order, which
// is the order entities, animations and frames are added to the table.
type TableSpec struct {
	Entities []EntitySpec `yaml:"entities"`
}

type EntitySpec struct {
	Name       string          `yaml:"name"`
	Animations []AnimationSpec `yaml:"animations"`
}

// AnimationSpec lists frame sprite names explicitly, or generates
// Prefix_0 .. Prefix_{Count-1} when Frames is empty.
type AnimationSpec struct {
	Name   string   `yaml:"name"`
	Frames []string `yaml:"frames"`
	Prefix string   `yaml:"prefix"`
	Count  int      `yaml:"count"`
}

// FrameNames returns the sprite names of the animation in play order.
func (s AnimationSpec) FrameNames() []string {
	if len(s.Frames) > 0 || s.Prefix == "" || s.Count <= 0 {
		return s.Frames
	}
	names := make([]string, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		names = append(names, fmt.Sprintf("%s_%d", s.Prefix, i))
	}
	return names
}

type AtlasSpec struct {
	Image   string       `yaml:"image"`
	Sprites []SpriteSpec `yaml:"sprites"`
	Grids   []GridSpec   `yaml:"grids"`
}

type SpriteSpec struct {
	Name string  `yaml:"name"`
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
	W    float32 `yaml:"w"`
	H    float32 `yaml:"h"`
}

type GridSpec struct {
	Prefix     string `yaml:"prefix"`
	Row        int    `yaml:"row"`
	ColStart   int    `yaml:"col_start"`
	FrameCount int    `yaml:"frame_count"`
	FrameW     int    `yaml:"frame_w"`
	FrameH     int    `yaml:"frame_h"`
	Columns    int    `yaml:"columns"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadTableSpec(filename string) (TableSpec, error) {
	return LoadSpec[TableSpec](filename)
}

func LoadAtlasSpec(filename string) (AtlasSpec, error) {
	return LoadSpec[AtlasSpec](filename)
}

// BuildAtlas creates the sprite table described by spec.
func BuildAtlas(spec AtlasSpec) (*atlas.Atlas, error) {
	a := atlas.New(spec.Image)
	for _, s := range spec.Sprites {
		if err := a.Add(s.Name, anim.Rect{X: s.X, Y: s.Y, Width: s.W, Height: s.H}); err != nil {
			return nil, err
		}
	}
	for _, g := range spec.Grids {
		err := a.AddGrid(atlas.Grid{
			Prefix:   g.Prefix,
			Row:      g.Row,
			ColStart: g.ColStart,
			Count:    g.FrameCount,
			FrameW:   g.FrameW,
			FrameH:   g.FrameH,
			Columns:  g.Columns,
		})
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

// BuildTable resets arena and builds the table described by spec, resolving
// frame rects through lookup.
func BuildTable(arena *anim.Arena, lookup anim.RectLookup, spec TableSpec) (*anim.Table, error) {
	b := anim.Begin(arena, lookup)
	for _, ent := range spec.Entities {
		if err := b.AddEntity(ent.Name); err != nil {
			return nil, err
		}
		for _, an := range ent.Animations {
			if err := b.AddAnimation(an.Name); err != nil {
				return nil, err
			}
			frames := an.FrameNames()
			if len(frames) == 0 {
				return nil, fmt.Errorf("prefabs: %s/%s: %w", ent.Name, an.Name, ErrNoFrames)
			}
			for _, f := range frames {
				if err := b.AddFrame(f); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.End()
}
