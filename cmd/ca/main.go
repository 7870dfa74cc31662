//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"growth-medium/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	session, err := cfg.Open()
	if err != nil {
		log.Fatal(err)
	}

	m := session.Engine().Config()
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	gridW, gridH := m.MinCols*cfg.Scale, m.MinRows*cfg.Scale
	game := app.New(session, gridW, gridH, cfg.Seed)

	ebiten.SetWindowTitle("growth medium")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(gridW+app.HUDWidth, gridH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
