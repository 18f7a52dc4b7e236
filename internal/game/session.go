// Package game holds the state of one play session and advances it frame by frame.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/render"
)

// Renderer draws a frame's scene.
type Renderer interface {
	Render(render.Scene)
}

// Session is one player's game: the state machine, counters, player and entity stores.
// A session is driven from a single goroutine.
type Session struct {
	state         State
	score         int
	lives         int
	level         int
	enemySpeed    float64
	spawnInterval int
	frameCount    int
	final         Stats

	field     object.Playfield
	player    *object.Player
	bullets   object.Store[*object.Bullet]
	enemies   object.Store[*object.Enemy]
	particles object.Store[*object.Particle]
	spawner   *object.Spawner
	input     input.Input

	scheduler    Scheduler
	framePending bool
	renderer     Renderer
	observer     Observer
	logger       *log.Logger
	rng          *rand.Rand
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the frame scheduler. Without one the session never advances on its own
// and frames must be driven by calling Frame.
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) {
		sess.scheduler = s
	}
}

// WithRenderer sets the renderer called at the end of every frame.
func WithRenderer(r Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithObserver sets the observer for stat and state changes.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithSeed makes all randomness in the session reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithField overrides the playfield size.
func WithField(width, height float64) Option {
	return func(s *Session) {
		s.field = object.Playfield{Width: width, Height: height}
	}
}

// New creates a session on the start screen.
func New(opts ...Option) *Session {
	s := &Session{
		state:    StateStart,
		field:    object.Playfield{Width: FieldWidth, Height: FieldHeight},
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.spawner = object.NewSpawner(s.rng, s.field)
	s.player = object.NewPlayer(s.field)
	s.reset()
	return s
}

// reset puts every counter and store back to the start-of-session values.
func (s *Session) reset() {
	s.score = 0
	s.lives = InitialLives
	s.level = InitialLevel
	s.enemySpeed = InitialEnemySpeed
	s.spawnInterval = InitialSpawnInterval
	s.frameCount = 0
	s.final = Stats{}
	s.bullets.Clear()
	s.enemies.Clear()
	s.particles.Clear()
	s.player.Reset(s.field)
	s.input = input.Input{}
}

// Start leaves the start screen and begins the first game.
func (s *Session) Start() bool {
	if s.state != StateStart {
		return false
	}
	s.setState(StatePlaying)
	s.observer.StatsChanged(s.Stats())
	s.requestFrame()
	return true
}

// TogglePause pauses a running game or resumes a paused one.
// It does nothing in any other state.
func (s *Session) TogglePause() bool {
	switch s.state {
	case StatePlaying:
		s.setState(StatePaused)
	case StatePaused:
		s.setState(StatePlaying)
		s.requestFrame()
	default:
		return false
	}
	return true
}

// Restart begins a fresh game after a game over.
func (s *Session) Restart() bool {
	if s.state != StateGameOver {
		return false
	}
	s.reset()
	s.setState(StatePlaying)
	s.observer.StatsChanged(s.Stats())
	s.requestFrame()
	return true
}

// Fire launches a bullet from the player's nose. Only works while playing.
func (s *Session) Fire() bool {
	if s.state != StatePlaying {
		return false
	}
	s.bullets.Append(object.NewBullet(s.player))
	return true
}

// SetInput records the held movement keys used by the next frames.
func (s *Session) SetInput(in input.Input) {
	s.input = in
}

// HandleInput applies one frame of input: movement is stored and edge actions are dispatched.
// On the start screen fire also starts the game.
func (s *Session) HandleInput(in input.Input) {
	s.SetInput(in)

	if in.Pause {
		s.TogglePause()
	}
	if in.Start {
		s.Start()
	}
	if in.Restart {
		s.Restart()
	}
	if in.Fire {
		if s.state == StateStart {
			s.Start()
		} else {
			s.Fire()
		}
	}
}

// Frame advances the game by one tick and renders it.
// It is a no-op unless the session is playing. A new frame is requested only if the session
// is still playing at the end of the tick.
func (s *Session) Frame() {
	s.framePending = false
	if s.state != StatePlaying {
		return
	}

	s.frameCount++
	if s.frameCount%s.spawnInterval == 0 {
		s.enemies.Append(s.spawner.Enemy(s.enemySpeed))
	}

	s.updatePlayer()
	s.updateBullets()
	s.updateEnemies()
	s.updateParticles()

	if s.state == StatePlaying {
		s.resolveCollisions()
	}

	s.Render()

	if s.state == StatePlaying {
		s.requestFrame()
	}
}

// Render draws the current scene without advancing the game.
func (s *Session) Render() {
	if s.renderer != nil {
		s.renderer.Render(s.Scene())
	}
}

// requestFrame schedules the next Frame. At most one frame is pending at a time.
func (s *Session) requestFrame() {
	if s.scheduler == nil || s.framePending {
		return
	}
	s.framePending = true
	s.scheduler.RequestFrame(s.Frame)
}

func (s *Session) setState(to State) {
	from := s.state
	if from == to {
		return
	}
	s.state = to
	s.logger.Debug("state change", "from", from, "to", to)
	s.observer.StateChanged(from, to)
}

func (s *Session) gameOver() {
	s.final = s.Stats()
	s.setState(StateGameOver)
	s.logger.Info("game over", "score", s.final.Score, "level", s.final.Level)
	s.observer.GameOver(s.final)
}

// Scene returns a view of the entities for rendering.
func (s *Session) Scene() render.Scene {
	return render.Scene{
		Field:     s.field,
		Player:    s.player,
		Bullets:   s.bullets.Items(),
		Enemies:   s.enemies.Items(),
		Particles: s.particles.Items(),
	}
}

// Stats returns the current HUD values.
func (s *Session) Stats() Stats {
	return Stats{Score: s.score, Lives: s.lives, Level: s.level}
}

// FinalStats returns the values recorded at the last game over.
func (s *Session) FinalStats() Stats { return s.final }

func (s *Session) State() State                           { return s.state }
func (s *Session) Score() int                             { return s.score }
func (s *Session) Lives() int                             { return s.lives }
func (s *Session) Level() int                             { return s.level }
func (s *Session) EnemySpeed() float64                    { return s.enemySpeed }
func (s *Session) SpawnInterval() int                     { return s.spawnInterval }
func (s *Session) FrameCount() int                        { return s.frameCount }
func (s *Session) Field() object.Playfield                { return s.field }
func (s *Session) Player() *object.Player                 { return s.player }
func (s *Session) Bullets() *object.Store[*object.Bullet] { return &s.bullets }
func (s *Session) Enemies() *object.Store[*object.Enemy]  { return &s.enemies }
func (s *Session) Particles() *object.Store[*object.Particle] {
	return &s.particles
}
