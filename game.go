package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/common"
	"github.com/milk9111/animtable/ecs"
	"github.com/milk9111/animtable/ecs/systems"
	"github.com/milk9111/animtable/prefabs"
	"github.com/milk9111/animtable/script"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

// Config is the viewer configuration, filled from flags.
type Config struct {
	Table  string
	Atlas  string
	Entity string
	Script string
	Count  int
	Zoom   float64
	Watch  bool
}

type Game struct {
	cfg Config

	lib     *library
	world   *ecs.World
	anims   *systems.AnimationSystem
	render  *systems.RenderSystem
	ui      *ebitenui.UI
	watcher *prefabs.Watcher

	instances  []ecs.Entity
	focus      int
	paused     bool
	zoomTarget float64
	clipboard  bool
	status     string
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.Count <= 0 {
		cfg.Count = 1
	}
	if cfg.Zoom <= 0 {
		cfg.Zoom = 1
	}

	lib := newLibrary(cfg.Table, cfg.Atlas)
	if err := lib.load(); err != nil {
		return nil, err
	}
	if _, err := lib.table.Get(cfg.Entity); err != nil {
		return nil, fmt.Errorf("%w (entities: %s)", err, strings.Join(lib.table.Entities(), ", "))
	}

	g := &Game{
		cfg:        cfg,
		lib:        lib,
		world:      ecs.NewWorld(),
		zoomTarget: cfg.Zoom,
	}
	g.anims = systems.NewAnimationSystem(lib.table, 1.0/float64(ebiten.TPS()))
	g.render = systems.NewRenderSystem(lib.table, lib.sheet, cfg.Zoom)
	g.world.AddSystem(g.anims)
	g.world.AddSystem(g.render)

	proto, err := g.loadController()
	if err != nil {
		return nil, err
	}
	g.spawn(proto)

	g.ui = NewPickerUI(g, lib.table.Animations(cfg.Entity))

	if err := clipboard.Init(); err == nil {
		g.clipboard = true
	} else {
		anim.Logger().Warn("clipboard unavailable", "err", err)
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher(watchDirs()...)
		if err != nil {
			anim.Logger().Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) spawn(proto *script.Controller) {
	const spacing = 40
	for i := 0; i < g.cfg.Count; i++ {
		e := g.world.CreateEntity()
		g.world.Transforms().Set(e, ecs.Transform{
			X:      float64(8 + i*spacing),
			Y:      24,
			ScaleX: 1,
			ScaleY: 1,
			FlipX:  i%2 == 1,
		})
		g.world.Animators().Set(e, ecs.Animator{
			Name:       g.cfg.Entity,
			Controller: proto.Clone(),
			Params:     map[string]any{"speed": float64(i) * 1.5, "index": i},
		})
		g.instances = append(g.instances, e)
	}
}

func (g *Game) loadController() (*script.Controller, error) {
	if g.cfg.Script == "" {
		return nil, nil
	}
	src, err := prefabs.LoadScript(g.cfg.Script)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", g.cfg.Script, err)
	}
	return script.NewController(g.cfg.Script, src)
}

// play switches every instance to name.
func (g *Game) play(name string) {
	n := g.anims.Play(g.world, name)
	g.status = fmt.Sprintf("play %s: %d/%d", name, n, len(g.instances))
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.ui.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.instances) > 0 {
		g.focus = (g.focus + 1) % len(g.instances)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyFocus()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.zoomTarget++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && g.zoomTarget > 1 {
		g.zoomTarget--
	}
	g.render.Zoom = float64(common.Lerp(float32(g.render.Zoom), float32(g.zoomTarget), 0.2))

	if g.paused {
		return nil
	}
	g.world.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	g.world.Draw(screen)
	g.ui.Draw(screen)

	lines := []string{
		fmt.Sprintf("TPS: %.1f  instances: %d", ebiten.ActualTPS(), len(g.instances)),
		g.describeFocus(),
		"space: pause  tab: focus  c: copy  up/down: zoom",
	}
	if g.paused {
		lines = append(lines, "paused")
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 4, common.BaseHeight-16*len(lines)-4)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// focusPath returns entity/animation/frame for the focused instance.
func (g *Game) focusPath() (string, float64, bool) {
	if len(g.instances) == 0 {
		return "", 0, false
	}
	a, ok := g.world.Animators().Get(g.instances[g.focus])
	if !ok || !a.Asset.Valid() {
		return "", 0, false
	}
	tbl := g.lib.table
	path := tbl.EntityName(a.Asset) + "/" + tbl.AnimationName(a.Asset) + "/" + tbl.FrameName(a.Asset.Frame())
	return path, a.Asset.Elapsed(), true
}

func (g *Game) describeFocus() string {
	path, elapsed, ok := g.focusPath()
	if !ok {
		return fmt.Sprintf("#%d detached", g.focus)
	}
	return fmt.Sprintf("#%d %s  %.2fs", g.focus, path, elapsed)
}

func (g *Game) copyFocus() {
	if !g.clipboard {
		g.status = "clipboard unavailable"
		return
	}
	path, _, ok := g.focusPath()
	if !ok {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(path))
	g.status = "copied " + path
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(ch)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			anim.Logger().Warn("watch", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(ch prefabs.Change) {
	if ch.Kind == prefabs.ChangeScript {
		proto, err := g.loadController()
		if err != nil {
			anim.Logger().Warn("reload script", "path", ch.Path, "err", err)
			g.status = "script reload failed"
			return
		}
		set := g.world.Animators()
		for _, e := range set.Entities() {
			a, _ := set.Get(e)
			a.Controller = proto.Clone()
		}
		g.status = "reloaded " + ch.Path
		return
	}

	if err := g.lib.load(); err != nil {
		anim.Logger().Warn("reload table", "path", ch.Path, "err", err)
		g.status = "reload failed, keeping previous table"
		return
	}
	g.anims.Rebind(g.world, g.lib.table)
	g.render.Table = g.lib.table
	g.render.Sheet = g.lib.sheet
	g.ui = NewPickerUI(g, g.lib.table.Animations(g.cfg.Entity))
	g.status = "reloaded " + ch.Path
}

func watchDirs() []string {
	var dirs []string
	for _, d := range []string{"prefabs", "prefabs/scripts", "assets"} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
