// Package desktop hosts a game session in an ebiten window at the playfield's native resolution.
package desktop

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/render"
)

const (
	overlayFadeSeconds = 0.4
	overlayShade       = 0.6 // Opacity of the backdrop behind overlay text
	debugGlyphWidth    = 6   // ebitenutil debug font
	debugLineHeight    = 16
)

var overlayColor = render.Background

// Options configures the desktop host.
type Options struct {
	Seed   int64 // Zero seeds from the clock
	Logger *log.Logger
	Keys   KeySource // Defaults to the ebiten keyboard
}

// Game implements ebiten.Game around a session.
type Game struct {
	session *game.Session
	queue   *game.FrameQueue
	surface *Surface
	shade   *Surface // Overlay backdrop
	white   *ebiten.Image
	keys    KeySource
	logger  *log.Logger

	stats        game.Stats
	shown        game.State // State the overlay fade was started for
	fade         *gween.Tween
	overlayAlpha float32
}

var (
	_ ebiten.Game   = (*Game)(nil)
	_ game.Observer = (*Game)(nil)
)

// frameRecorder starts a fresh recording for every rendered frame.
type frameRecorder struct {
	surface  *Surface
	renderer *render.Renderer
}

func (f frameRecorder) Render(scene render.Scene) {
	f.surface.Reset()
	f.renderer.Render(scene)
}

// New creates a desktop game on the title screen.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := opts.Keys
	if keys == nil {
		keys = ebitenKeys{}
	}

	g := &Game{
		queue:        &game.FrameQueue{},
		surface:      NewSurface(),
		shade:        NewSurface(),
		keys:         keys,
		logger:       logger,
		overlayAlpha: 1,
	}
	sessionOpts := []game.Option{
		game.WithScheduler(g.queue),
		game.WithRenderer(frameRecorder{surface: g.surface, renderer: render.New(g.surface)}),
		game.WithObserver(g),
		game.WithLogger(logger),
	}
	if opts.Seed != 0 {
		sessionOpts = append(sessionOpts, game.WithSeed(opts.Seed))
	}
	g.session = game.New(sessionOpts...)
	g.stats = g.session.Stats()
	g.shown = g.session.State()
	g.session.Render()
	return g
}

// Session returns the game session.
func (g *Game) Session() *game.Session {
	return g.session
}

// Update applies input and runs the scheduled game frame. One tick is one game frame.
func (g *Game) Update() error {
	in := readKeys(g.keys)
	if in.Quit {
		return ebiten.Termination
	}
	g.session.HandleInput(in)

	if g.queue.RunFrame() == 0 && g.session.State() == game.StateStart {
		g.session.Render()
	}

	if state := g.session.State(); state != g.shown {
		g.shown = state
		g.fade = gween.New(0, 1, overlayFadeSeconds, ease.OutQuad)
	}
	if g.fade != nil {
		alpha, done := g.fade.Update(1 / float32(ebiten.TPS()))
		g.overlayAlpha = alpha
		if done {
			g.fade = nil
		}
	}
	return nil
}

// Draw replays the last rendered frame and draws the HUD or overlay on top.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.white == nil {
		g.white = ebiten.NewImage(1, 1)
		g.white.Fill(color.White)
	}
	g.surface.Draw(screen, g.white)

	switch g.session.State() {
	case game.StateStart:
		g.drawOverlay(screen, "S T A R F A L L", "",
			"WASD / Arrows: move   SPACE: fire   P: pause   Q: quit", "",
			"Press SPACE or ENTER to start")
	case game.StatePlaying:
		g.drawHUD(screen)
	case game.StatePaused:
		g.drawHUD(screen)
		g.drawOverlay(screen, "PAUSED", "", "Press P to resume")
	case game.StateGameOver:
		final := g.session.FinalStats()
		g.drawOverlay(screen, "GAME OVER", "",
			fmt.Sprintf("Final score: %d", final.Score),
			fmt.Sprintf("Reached level %d", final.Level), "",
			"Press R to restart")
	}
}

// Layout keeps the logical screen at the playfield size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(game.FieldWidth), int(game.FieldHeight)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", g.stats.Score), 10, 8)
	level := fmt.Sprintf("Level: %d", g.stats.Level)
	ebitenutil.DebugPrintAt(screen, level, centredX(level), 8)
	lives := fmt.Sprintf("Lives: %d", g.stats.Lives)
	ebitenutil.DebugPrintAt(screen, lives, int(game.FieldWidth)-10-len(lives)*debugGlyphWidth, 8)
}

// drawOverlay shades the playfield and prints centred lines. The shade fades in after a state change.
func (g *Game) drawOverlay(screen *ebiten.Image, lines ...string) {
	shade := g.shade
	shade.Reset()
	shade.SetFill(overlayColor)
	shade.SetAlpha(overlayShade * float64(g.overlayAlpha))
	shade.FillRect(0, 0, game.FieldWidth, game.FieldHeight)
	shade.Draw(screen, g.white)

	top := int(game.FieldHeight)/2 - len(lines)*debugLineHeight/2
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, centredX(line), top+i*debugLineHeight)
	}
}

func centredX(s string) int {
	return (int(game.FieldWidth) - len(s)*debugGlyphWidth) / 2
}

// StatsChanged implements game.Observer.
func (g *Game) StatsChanged(s game.Stats) {
	g.stats = s
}

// StateChanged implements game.Observer.
func (g *Game) StateChanged(from, to game.State) {}

// GameOver implements game.Observer.
func (g *Game) GameOver(final game.Stats) {
	g.logger.Info("game over", "score", final.Score, "level", final.Level)
}
