package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fruitfall/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw the collision shapes")
	watch := flag.Bool("watch", false, "hot-reload shape templates and spawn scripts from prefabs/")
	count := flag.Int("count", common.FruitCount, "number of fruit to drop")
	seed := flag.Int64("seed", 0, "spawn seed (0 = time-based)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(960, 960)
	ebiten.SetWindowTitle("fruitfall")

	game, err := NewGame(*count, *seed, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}

	err = ebiten.RunGame(game)
	game.Dispose()
	if err != nil {
		log.Fatal(err)
	}
}
