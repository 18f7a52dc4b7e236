package main

import (
	"bufio"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/muesli/termenv"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop"
)

// gameMiddleware runs one game per SSH session.
func gameMiddleware(registry *loop.Registry, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			defer next(sess)

			pty, resizes, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "A terminal is required: connect with ssh -t")
				return
			}

			l := logger.With("user", sess.User())
			l.Info("session started", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)

			size := newWindowSize(pty.Window.Width, pty.Window.Height)
			go size.follow(resizes)

			err := loop.Run(bufio.NewReader(sess), sess, loop.ClientOptions{
				TermSizeFunc: size.get,
				Username:     sess.User(),
				Registry:     registry,
				Profile:      config.GetColorProfile("COLOR_PROFILE", profileForTerm(pty.Term, sess.Environ())),
				FPS:          config.GetEnvInt("TARGET_FPS", loop.DefaultFPS),
				Seed:         int64(config.GetEnvInt("GAME_SEED", 0)),
				Logger:       logger,
			})
			if err != nil {
				l.Error("session failed", "err", err)
				return
			}
			l.Info("session ended")
		}
	}
}

// profileForTerm guesses the colour support of a remote terminal from its TERM and environment.
func profileForTerm(term string, environ []string) termenv.Profile {
	switch {
	case slices.Contains(environ, "COLORTERM=truecolor"), slices.Contains(environ, "COLORTERM=24bit"):
		return termenv.TrueColor
	case term == "" || term == "dumb":
		return termenv.Ascii
	case strings.HasSuffix(term, "256color"):
		return termenv.ANSI256
	}
	return termenv.ANSI
}

// windowSize holds the latest PTY size reported by the client, packed as cols<<32 | rows.
type windowSize struct {
	packed atomic.Uint64
}

var _ draw.TermSizeFunc = (*windowSize)(nil).get

func newWindowSize(cols, rows int) *windowSize {
	w := &windowSize{}
	w.set(cols, rows)
	return w
}

func (w *windowSize) set(cols, rows int) {
	w.packed.Store(uint64(uint32(cols))<<32 | uint64(uint32(rows)))
}

func (w *windowSize) get() (int, int, error) {
	v := w.packed.Load()
	return int(uint32(v >> 32)), int(uint32(v)), nil
}

// follow applies window change events until the session closes the channel.
func (w *windowSize) follow(resizes <-chan ssh.Window) {
	for win := range resizes {
		w.set(win.Width, win.Height)
	}
}
