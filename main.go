package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animtable/anim"
	"github.com/milk9111/animtable/common"
	"github.com/pkg/profile"
)

func main() {
	tablePath := flag.String("table", "animations.yaml", "animation table definition in prefabs/")
	atlasPath := flag.String("atlas", "atlas.yaml", "atlas definition in prefabs/")
	entity := flag.String("entity", "Hero", "table entity to play")
	scriptName := flag.String("script", "", "controller script in prefabs/scripts (optional)")
	count := flag.Int("count", 3, "number of instances to spawn")
	zoom := flag.Float64("zoom", 3, "initial zoom")
	watch := flag.Bool("watch", true, "reload definitions when files under prefabs/ and assets/ change")
	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	anim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown -profile %q (want cpu or mem)", *prof)
	}

	game, err := NewGame(Config{
		Table:  *tablePath,
		Atlas:  *atlasPath,
		Entity: *entity,
		Script: *scriptName,
		Count:  *count,
		Zoom:   *zoom,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth*2, common.BaseHeight*2)
	ebiten.SetWindowTitle("animtable - " + *entity)

	if err := ebiten.RunGame(game); err != nil {
		log.Print(err)
	}
}
