package main

import (
	"bufio"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/loop"
	"golang.org/x/term"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("failed to load .env", "err", err)
	}

	// The game owns the terminal, so logs only go to a file when one is configured.
	logger := log.New(io.Discard)
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal("failed to open log file", "path", path, "err", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	}
	logger.SetLevel(config.GetLogLevel("LOG_LEVEL", log.InfoLevel))

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatal("failed to enable raw mode", "err", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.ClientOptions{
		Username: os.Getenv("USER"),
		Profile:  config.GetColorProfile("COLOR_PROFILE", termenv.EnvColorProfile()),
		FPS:      config.GetEnvInt("TARGET_FPS", loop.DefaultFPS),
		Seed:     int64(config.GetEnvInt("GAME_SEED", 0)),
		Logger:   logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		log.Fatal("game error", "err", err)
	}
}
