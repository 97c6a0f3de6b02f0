//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"brains3d/internal/app"
	"brains3d/internal/sims/briansbrain"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	engine, err := briansbrain.New(cfg.Sim())
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	game := app.New(engine, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("brains3d - " + engine.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
