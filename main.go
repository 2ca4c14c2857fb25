package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lavaclimb/common"
)

func main() {
	seed := flag.Uint64("seed", 0, "random seed for platform generation (0 picks one)")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "reload prefabs/platforms.yaml and scripts when they change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	common.SetDebug(*debug)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{Seed: *seed, Debug: *debug, Watch: *watch})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.screenW(), game.screenH())
	ebiten.SetWindowTitle("lavaclimb")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
