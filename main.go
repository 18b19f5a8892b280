package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	enemies := flag.Int("enemies", 3, "number of enemies to spawn")
	watch := flag.Bool("watch", false, "reload prefab specs and scripts when they change on disk")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed for spawns and ragdoll forces")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("combatant")

	game, err := NewGame(Options{
		Debug:   *debug,
		Enemies: *enemies,
		Watch:   *watch,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
