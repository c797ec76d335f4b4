package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/assets"
	"github.com/milk9111/animtable/atlas"
	"github.com/milk9111/animtable/prefabs"
	"github.com/milk9111/animtable/script"
)

var errOutOfBounds = errors.New("sprite outside sheet")

type options struct {
	table   string
	atlas   string
	entity  string
	set     string
	script  string
	speed   float64
	seconds float64
	dt      float64
}

func main() {
	var o options
	flag.StringVar(&o.table, "table", "animations.yaml", "animation table definition in prefabs/")
	flag.StringVar(&o.atlas, "atlas", "atlas.yaml", "atlas definition in prefabs/")
	flag.StringVar(&o.entity, "entity", "", "entity to simulate (lists the table when empty)")
	flag.StringVar(&o.set, "set", "", "animation to switch to before simulating")
	flag.StringVar(&o.script, "script", "", "controller script to drive the simulation")
	flag.Float64Var(&o.speed, "speed", 0, "value of the speed param passed to the script")
	flag.Float64Var(&o.seconds, "seconds", 5, "simulated time")
	flag.Float64Var(&o.dt, "dt", 1.0/60, "simulation step")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		anim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(os.Stdout, o); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, o options) error {
	as, err := prefabs.LoadAtlasSpec(o.atlas)
	if err != nil {
		return err
	}
	at, err := prefabs.BuildAtlas(as)
	if err != nil {
		return err
	}
	if err := checkBounds(at); err != nil {
		return err
	}
	ts, err := prefabs.LoadTableSpec(o.table)
	if err != nil {
		return err
	}
	tbl, err := prefabs.BuildTable(anim.NewArena(64), at, ts)
	if err != nil {
		return err
	}

	if o.entity == "" {
		list(w, tbl)
		return nil
	}
	return simulate(w, tbl, o)
}

// checkBounds fails when a sprite rect reaches past the sheet image.
func checkBounds(at *atlas.Atlas) error {
	sw, sh, err := assets.ImageSize(at.Image)
	if err != nil {
		return err
	}
	sheet := image.Rect(0, 0, sw, sh)
	for _, name := range at.Names() {
		r, _ := at.Rect(name)
		if !r.Image().In(sheet) {
			return fmt.Errorf("%s: %w (%dx%d)", name, errOutOfBounds, sw, sh)
		}
	}
	return nil
}

func list(w io.Writer, tbl *anim.Table) {
	for _, ent := range tbl.Entities() {
		fmt.Fprintln(w, ent)
		for _, an := range tbl.Animations(ent) {
			fmt.Fprintf(w, "  %s:", an)
			for _, id := range tbl.Frames(ent, an) {
				r := tbl.FrameRect(id)
				fmt.Fprintf(w, " %s(%g,%g %gx%g)", tbl.FrameName(id), r.X, r.Y, r.Width, r.Height)
			}
			fmt.Fprintln(w)
		}
	}
}

func simulate(w io.Writer, tbl *anim.Table, o options) error {
	if o.dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", o.dt)
	}
	a, err := tbl.Get(o.entity)
	if err != nil {
		return err
	}
	if o.set != "" && !tbl.Set(&a, o.set) {
		return fmt.Errorf("%s has no animation %q", o.entity, o.set)
	}

	var ctrl *script.Controller
	if o.script != "" {
		src, err := prefabs.LoadScript(o.script)
		if err != nil {
			return err
		}
		if ctrl, err = script.NewController(o.script, src); err != nil {
			return err
		}
	}
	params := map[string]any{"speed": o.speed}

	fmt.Fprintf(w, "%8.3f %s/%s\n", 0.0, tbl.AnimationName(a), tbl.FrameName(a.Frame()))
	steps := int(o.seconds / o.dt)
	for i := 1; i <= steps; i++ {
		before := tbl.AnimationName(a)
		if ctrl != nil {
			if err := ctrl.Run(tbl, &a, params); err != nil {
				return err
			}
		}
		advanced := tbl.Update(&a, o.dt)
		if advanced || tbl.AnimationName(a) != before {
			fmt.Fprintf(w, "%8.3f %s/%s\n", float64(i)*o.dt, tbl.AnimationName(a), tbl.FrameName(a.Frame()))
		}
	}
	return nil
}
