// Command ssh serves Starfall to remote terminals, one private game per SSH session.
package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDrainTime   = 15 * time.Second
	closeTimeout       = 5 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfall",
	})
	if err := config.Load(); err != nil {
		logger.Fatal("load .env", "err", err)
	}
	logger.SetLevel(config.GetLogLevel("LOG_LEVEL", log.InfoLevel))

	addr := net.JoinHostPort(config.GetEnv("SSH_HOST", defaultHost), config.GetEnv("SSH_PORT", defaultPort))
	hostKey := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	registry := loop.NewRegistry(logger)

	srv, err := newServer(addr, hostKey, registry, logger)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	logger.Info("listening", "addr", addr, "hostKey", hostKey)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("serve", "err", err)
		}
	}()

	sig := <-stop
	logger.Info("stopping", "signal", sig, "players", registry.Count())

	// Players see a countdown before the listener goes away.
	if !registry.Shutdown(config.GetEnvDuration("SHUTDOWN_TIMEOUT", defaultDrainTime)) {
		logger.Warn("drain timed out", "players", registry.Count())
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("close server", "err", err)
	}
}

func newServer(addr, hostKey string, registry *loop.Registry, logger *log.Logger) (*ssh.Server, error) {
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			gameMiddleware(registry, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		ssh.WrapConn(noDelay),
	}
	if hostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKey))
	}
	return wish.NewServer(opts...)
}

// noDelay disables Nagle's algorithm so key presses reach the game immediately.
func noDelay(_ ssh.Context, conn net.Conn) net.Conn {
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}
	return conn
}
