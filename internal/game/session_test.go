package game

import (
	"testing"

	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/render"
)

type recordingObserver struct {
	stats       []Stats
	transitions [][2]State
	finals      []Stats
}

func (o *recordingObserver) StatsChanged(s Stats) { o.stats = append(o.stats, s) }
func (o *recordingObserver) StateChanged(from, to State) {
	o.transitions = append(o.transitions, [2]State{from, to})
}
func (o *recordingObserver) GameOver(final Stats) { o.finals = append(o.finals, final) }

type countingRenderer struct {
	scenes []render.Scene
}

func (r *countingRenderer) Render(scene render.Scene) { r.scenes = append(r.scenes, scene) }

// playing returns a seeded session that has left the start screen.
func playing(t *testing.T, opts ...Option) (*Session, *FrameQueue) {
	t.Helper()
	q := &FrameQueue{}
	s := New(append([]Option{WithSeed(1), WithScheduler(q)}, opts...)...)
	if !s.Start() {
		t.Fatal("Start failed on a new session")
	}
	return s, q
}

func TestNewSessionDefaults(t *testing.T) {
	s := New(WithSeed(1))
	if s.State() != StateStart {
		t.Fatalf("state = %v", s.State())
	}
	if s.Score() != 0 || s.Lives() != 3 || s.Level() != 1 || s.EnemySpeed() != 1 || s.SpawnInterval() != 100 {
		t.Fatalf("unexpected defaults: %+v speed=%v interval=%d", s.Stats(), s.EnemySpeed(), s.SpawnInterval())
	}
	if p := s.Player(); p.X != 380 || p.Y != 520 {
		t.Fatalf("player at (%v, %v), want (380, 520)", p.X, p.Y)
	}
	if s.Bullets().Len()+s.Enemies().Len()+s.Particles().Len() != 0 {
		t.Fatal("stores not empty")
	}
}

func TestFrameOnlyAdvancesWhilePlaying(t *testing.T) {
	s := New(WithSeed(1))
	s.Frame()
	if s.FrameCount() != 0 {
		t.Fatal("frame advanced on the start screen")
	}
}

func TestStartSchedulesOneFrame(t *testing.T) {
	s, q := playing(t)
	if q.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", q.Pending())
	}
	if s.Start() {
		t.Fatal("Start succeeded twice")
	}
	if q.Pending() != 1 {
		t.Fatal("second Start scheduled another frame")
	}

	for range 5 {
		if n := q.RunFrame(); n != 1 {
			t.Fatalf("ran %d callbacks, want 1", n)
		}
	}
	if s.FrameCount() != 5 || q.Pending() != 1 {
		t.Fatalf("frameCount=%d pending=%d", s.FrameCount(), q.Pending())
	}
}

func TestPauseFreezesAndResumeDoesNotDoubleSchedule(t *testing.T) {
	s, q := playing(t)
	q.RunFrame()

	if !s.TogglePause() || s.State() != StatePaused {
		t.Fatal("pause failed")
	}
	// Resume before the pending frame has run.
	s.TogglePause()
	if q.Pending() != 1 {
		t.Fatalf("pending = %d after pause+resume, want 1", q.Pending())
	}

	s.TogglePause()
	q.RunFrame()
	if s.FrameCount() != 1 {
		t.Fatalf("paused frame advanced the game: frameCount=%d", s.FrameCount())
	}
	if q.Pending() != 0 {
		t.Fatal("paused session scheduled a frame")
	}

	s.TogglePause()
	if s.State() != StatePlaying || q.Pending() != 1 {
		t.Fatalf("resume: state=%v pending=%d", s.State(), q.Pending())
	}
	q.RunFrame()
	if s.FrameCount() != 2 {
		t.Fatalf("frameCount = %d", s.FrameCount())
	}
}

func TestTogglePauseIgnoredOutsidePlay(t *testing.T) {
	s := New(WithSeed(1))
	if s.TogglePause() || s.State() != StateStart {
		t.Fatal("pause toggled on the start screen")
	}
}

func TestSpawnCadence(t *testing.T) {
	s, _ := playing(t)
	for range 99 {
		s.Frame()
	}
	if s.Enemies().Len() != 0 {
		t.Fatal("enemy spawned before the interval elapsed")
	}
	s.Frame()
	if s.Enemies().Len() != 1 {
		t.Fatalf("enemies = %d at frame 100", s.Enemies().Len())
	}

	e := s.Enemies().At(0)
	if e.Width < 30 || e.Width >= 50 || e.Y != -e.Height+e.Speed {
		t.Fatalf("unexpected spawn %+v", e)
	}
	if e.Speed < 1 || e.Speed >= 1.5 {
		t.Fatalf("speed %v outside [1, 1.5)", e.Speed)
	}
}

func TestBulletKinematics(t *testing.T) {
	s, _ := playing(t)
	s.Fire()
	b := s.Bullets().At(0)
	if b.X != 398 || b.Y != 520 {
		t.Fatalf("bullet fired from (%v, %v)", b.X, b.Y)
	}
	for range 3 {
		s.Frame()
	}
	if b.Y != 520-3*7 {
		t.Fatalf("bullet y = %v", b.Y)
	}
}

func TestBulletLeavesTopEdge(t *testing.T) {
	s, _ := playing(t)
	s.Bullets().Append(&object.Bullet{Y: -7, Width: 4, Height: 15, Speed: 7})
	s.Frame()
	if s.Bullets().Len() != 1 {
		t.Fatal("bullet removed while still visible")
	}
	s.Frame()
	if s.Bullets().Len() != 0 {
		t.Fatal("bullet kept after its bottom edge left the field")
	}
}

func TestEnemyLeavesBottomEdge(t *testing.T) {
	s, _ := playing(t)
	s.Enemies().Append(&object.Enemy{X: 0, Y: 638, Width: 40, Height: 40, Speed: 1, Health: 1})
	s.Frame()
	if s.Enemies().Len() != 1 {
		t.Fatal("enemy removed early")
	}
	s.Frame()
	if s.Enemies().Len() != 0 {
		t.Fatal("enemy kept past the bottom edge")
	}
	if s.Lives() != 3 {
		t.Fatal("escaping enemy cost a life")
	}
}

func TestPlayerMovementIsClamped(t *testing.T) {
	s, _ := playing(t)
	s.SetInput(input.Input{Left: true, Up: true})
	for range 200 {
		s.Frame()
	}
	if p := s.Player(); p.X != 0 || p.Y != 300 {
		t.Fatalf("player at (%v, %v), want (0, 300)", p.X, p.Y)
	}
}

func TestFireOnlyWhilePlaying(t *testing.T) {
	s := New(WithSeed(1))
	if s.Fire() || s.Bullets().Len() != 0 {
		t.Fatal("fired on the start screen")
	}
	s.Start()
	s.TogglePause()
	if s.Fire() {
		t.Fatal("fired while paused")
	}
}

func TestHandleInput(t *testing.T) {
	q := &FrameQueue{}
	s := New(WithSeed(1), WithScheduler(q))

	s.HandleInput(input.Input{Fire: true})
	if s.State() != StatePlaying || s.Bullets().Len() != 0 {
		t.Fatalf("fire on the start screen should only start: state=%v bullets=%d", s.State(), s.Bullets().Len())
	}

	s.HandleInput(input.Input{Fire: true, Right: true})
	if s.Bullets().Len() != 1 {
		t.Fatal("fire did not launch a bullet")
	}
	q.RunFrame()
	if s.Player().X != 385 {
		t.Fatalf("held right not applied: x=%v", s.Player().X)
	}

	s.HandleInput(input.Input{Pause: true})
	if s.State() != StatePaused {
		t.Fatal("pause key ignored")
	}
	s.HandleInput(input.Input{Restart: true})
	if s.State() != StatePaused {
		t.Fatal("restart honoured while paused")
	}
}

func TestRenderEveryFrame(t *testing.T) {
	r := &countingRenderer{}
	s, q := playing(t, WithRenderer(r))
	s.Fire()
	q.RunFrame()
	q.RunFrame()
	if len(r.scenes) != 2 {
		t.Fatalf("rendered %d frames", len(r.scenes))
	}
	last := r.scenes[1]
	if last.Player != s.Player() || len(last.Bullets) != 1 || last.Field.Width != FieldWidth {
		t.Fatalf("unexpected scene %+v", last)
	}
}

func TestSeededSessionsAreReproducible(t *testing.T) {
	a, _ := playing(t)
	b, _ := playing(t)
	for range 350 {
		a.Frame()
		b.Frame()
	}
	if a.Enemies().Len() != 3 || b.Enemies().Len() != 3 {
		t.Fatalf("enemies = %d / %d", a.Enemies().Len(), b.Enemies().Len())
	}
	for i, e := range a.Enemies().All() {
		if *e != *b.Enemies().At(i) {
			t.Fatalf("enemy %d differs: %+v vs %+v", i, *e, *b.Enemies().At(i))
		}
	}
}

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	q := &FrameQueue{}
	calls := 0
	q.RequestFrame(func() {
		calls++
		q.RequestFrame(func() { calls++ })
	})
	if n := q.RunFrame(); n != 1 || calls != 1 {
		t.Fatalf("ran %d, calls %d", n, calls)
	}
	if q.Pending() != 1 {
		t.Fatal("nested request lost")
	}
	q.RunFrame()
	if calls != 2 || q.Pending() != 0 {
		t.Fatalf("calls=%d pending=%d", calls, q.Pending())
	}
}

func TestStateString(t *testing.T) {
	if StateGameOver.String() != "game over" || State(42).String() != "unknown" {
		t.Fatal("unexpected state names")
	}
}
