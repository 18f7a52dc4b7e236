package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/render"
)

// Client runs one game session on a terminal connection.
type Client struct {
	session   *game.Session
	queue     *game.FrameQueue
	canvas    *draw.Canvas
	cw        *draw.ChunkWriter // Accumulates canvas output and UI text for chunked output
	styles    *styles
	writer    io.Writer
	stream    *input.Stream
	readInput func() input.Input
	sizeFunc  draw.TermSizeFunc
	registry  *Registry
	handle    *Handle
	logger    *log.Logger
	now       func() time.Time
	frameTime time.Duration

	running       bool
	stats         game.Stats
	lastInput     time.Time
	lastFrame     time.Time
	inactive      bool
	shutdown      bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	drawn         view    // Screen drawn by the last frame
	redraw        bool    // Clear the terminal before the next frame
}

// view identifies which screen is shown, so a change can clear leftovers of the previous one.
type view struct {
	state    game.State
	inactive bool
	shutdown bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Registry     *Registry       // Optional; receives shutdown notifications
	Profile      termenv.Profile // Colour profile of the terminal
	FPS          int
	Seed         int64 // Zero seeds from the clock
	Logger       *log.Logger
}

var (
	_ object.Surface = (*draw.Canvas)(nil)
	_ game.Observer  = (*Client)(nil)
)

// NewClient creates a client that reads keys from r and draws to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	termWidth, termHeight, _ := draw.TerminalSize(sizeFunc)
	canvas := draw.NewCanvas(termWidth, termHeight, game.FieldWidth, game.FieldHeight, opts.Profile)
	canvas.SetBackground(render.Background)
	canvas.Clear()

	c := &Client{
		queue:     &game.FrameQueue{},
		canvas:    canvas,
		cw:        draw.NewChunkWriter(w),
		styles:    newStyles(w, opts.Profile),
		writer:    w,
		sizeFunc:  sizeFunc,
		registry:  opts.Registry,
		logger:    logger.With("user", opts.Username),
		now:       time.Now,
		frameTime: time.Second / time.Duration(fps),
		running:   true,
		redraw:    true,
	}
	c.stream = input.StartStream(r)
	c.readInput = func() input.Input { return input.ReadInput(c.stream) }

	sessionOpts := []game.Option{
		game.WithScheduler(c.queue),
		game.WithRenderer(render.New(canvas)),
		game.WithObserver(c),
		game.WithLogger(c.logger),
	}
	if opts.Seed != 0 {
		sessionOpts = append(sessionOpts, game.WithSeed(opts.Seed))
	}
	c.session = game.New(sessionOpts...)
	c.stats = c.session.Stats()

	if c.registry != nil {
		c.handle = c.registry.Register(opts.Username)
	}
	return c
}

// Session returns the game session driven by the client.
func (c *Client) Session() *game.Session {
	return c.session
}

// Run starts the client loop. Blocks until the player quits, idles out or the host shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.unregister()

	c.lastInput = c.now()
	c.lastFrame = c.lastInput
	c.session.Render()

	for c.running {
		frameStart := time.Now()
		if err := c.step(c.now()); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

func (c *Client) unregister() {
	if c.registry != nil && c.handle != nil {
		c.registry.Unregister(c.handle.ID)
		c.handle = nil
	}
}

// step runs one host frame: input, host events, resize, game frame, draw.
func (c *Client) step(now time.Time) error {
	delta := now.Sub(c.lastFrame)
	c.lastFrame = now

	c.processInput(now)
	c.processEvents()
	if c.shutdown {
		c.shutdownTimer -= delta.Seconds()
		if c.shutdownTimer <= 0 {
			c.running = false
		}
	}

	resized := c.updateScreen()

	// Frozen screens keep their last frame; the title screen keeps the stars moving.
	if c.queue.RunFrame() == 0 && (resized || c.session.State() == game.StateStart) {
		c.session.Render()
	}

	return c.drawFrame(now)
}

// processInput reads input, tracks inactivity and forwards actions to the session.
func (c *Client) processInput(now time.Time) {
	in := c.readInput()

	if in.Quit {
		c.running = false
		return
	}

	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case in.Any():
		c.lastInput = now
		if c.inactive {
			// The key that dismisses the warning is not a game action.
			c.inactive = false
			c.session.SetInput(in)
			return
		}
	case idle > InactivityDisconnectUser:
		c.logger.Info("disconnecting idle client")
		c.running = false
		return
	case idle > InactivityWarnUser && !c.inactive:
		c.inactive = true
		if c.session.State() == game.StatePlaying {
			c.session.TogglePause()
		}
	}

	if c.shutdown {
		return
	}
	c.session.HandleInput(in)
}

// processEvents handles events from the registry.
func (c *Client) processEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.Events:
			if !ok {
				c.running = false
				return
			}
			if event.Type == EventServerShutdown && !c.shutdown {
				c.shutdown = true
				c.shutdownTimer = ShutdownDisplaySeconds
				if c.session.State() == game.StatePlaying {
					c.session.TogglePause()
				}
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. Reports whether the size changed.
func (c *Client) updateScreen() bool {
	termWidth, termHeight, err := draw.TerminalSize(c.sizeFunc)
	if err != nil {
		return false
	}
	if termWidth == c.canvas.TerminalWidth() && termHeight == c.canvas.TerminalHeight() {
		return false
	}
	c.canvas.Resize(termWidth, termHeight)
	c.canvas.Clear()
	c.redraw = true
	return true
}

// drawFrame writes the changed canvas cells and the UI overlay.
// On screen transitions the terminal is cleared so text from the previous screen doesn't persist.
func (c *Client) drawFrame(now time.Time) error {
	v := view{state: c.session.State(), inactive: c.inactive, shutdown: c.shutdown}
	if v != c.drawn || c.redraw {
		c.cw.WriteString(draw.ClearSequence)
		c.canvas.ForceRedraw()
		c.drawn = v
		c.redraw = false
	}

	if err := c.canvas.Render(c.cw); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	c.drawUI(now)
	if err := c.cw.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// StatsChanged implements game.Observer.
func (c *Client) StatsChanged(s game.Stats) {
	c.stats = s
}

// StateChanged implements game.Observer.
func (c *Client) StateChanged(from, to game.State) {
	if to == game.StatePlaying && from != game.StatePaused {
		input.ResetKeyInput(c.stream)
	}
}

// GameOver implements game.Observer.
func (c *Client) GameOver(final game.Stats) {
	c.logger.Info("game over", "score", final.Score, "level", final.Level)
}
