package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/desktop"
	"github.com/tomz197/starfall/internal/game"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "starfall"})
	if err := config.Load(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}
	logger.SetLevel(config.GetLogLevel("LOG_LEVEL", log.InfoLevel))

	ebiten.SetWindowSize(int(game.FieldWidth), int(game.FieldHeight))
	ebiten.SetWindowTitle("Starfall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.GetEnvInt("TARGET_FPS", ebiten.DefaultTPS))

	g := desktop.New(desktop.Options{
		Seed:   int64(config.GetEnvInt("GAME_SEED", 0)),
		Logger: logger,
	})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
