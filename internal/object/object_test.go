package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/starfall/internal/draw"
)

var testField = Playfield{Width: 800, Height: 600}

// recordingSurface captures the fills issued by Draw methods.
type recordingSurface struct {
	fill   colorful.Color
	alpha  float64
	glow   float64
	rects  [][4]float64
	paths  [][]draw.Point
	alphas []float64
	glows  []float64
}

func (r *recordingSurface) SetFill(c colorful.Color)            { r.fill = c }
func (r *recordingSurface) SetAlpha(a float64)                  { r.alpha = a }
func (r *recordingSurface) SetGlow(b float64, _ colorful.Color) { r.glow = b }
func (r *recordingSurface) FillRect(x, y, w, h float64) {
	r.rects = append(r.rects, [4]float64{x, y, w, h})
	r.alphas = append(r.alphas, r.alpha)
	r.glows = append(r.glows, r.glow)
}
func (r *recordingSurface) FillPath(points []draw.Point) {
	r.paths = append(r.paths, append([]draw.Point(nil), points...))
	r.glows = append(r.glows, r.glow)
}

func TestNewPlayerSpawnPoint(t *testing.T) {
	p := NewPlayer(testField)
	if p.X != 380 || p.Y != 520 {
		t.Fatalf("spawn = (%v, %v), want (380, 520)", p.X, p.Y)
	}
	if p.Width != 40 || p.Height != 40 || p.Speed != 5 {
		t.Fatalf("unexpected player dimensions %+v", p)
	}
}

func TestPlayerUpdateMovesAndClamps(t *testing.T) {
	tests := []struct {
		name         string
		startX       float64
		startY       float64
		in           Input
		wantX, wantY float64
	}{
		{"left", 100, 400, Input{Left: true}, 95, 400},
		{"right", 100, 400, Input{Right: true}, 105, 400},
		{"up", 100, 400, Input{Up: true}, 100, 395},
		{"down", 100, 400, Input{Down: true}, 100, 405},
		{"left wall", 2, 400, Input{Left: true}, 0, 400},
		{"right wall", 758, 400, Input{Right: true}, 760, 400},
		{"midline", 100, 302, Input{Up: true}, 100, 300},
		{"floor", 100, 558, Input{Down: true}, 100, 560},
		{"diagonal", 100, 400, Input{Left: true, Up: true}, 95, 395},
		{"idle", 100, 400, Input{}, 100, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(testField)
			p.X, p.Y = tt.startX, tt.startY
			p.Update(tt.in, testField)
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Fatalf("position = (%v, %v), want (%v, %v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestBulletLeavesFromNose(t *testing.T) {
	p := NewPlayer(testField)
	b := NewBullet(p)
	if b.X != p.X+18 || b.Y != p.Y {
		t.Fatalf("bullet at (%v, %v)", b.X, b.Y)
	}
	if b.Width != 4 || b.Height != 15 || b.Speed != 7 {
		t.Fatalf("unexpected bullet %+v", b)
	}
}

func TestBulletUpdateExpiresAboveTop(t *testing.T) {
	b := &Bullet{Y: 100, Height: 15, Speed: 7}
	for i := 1; i <= 10; i++ {
		if b.Update() {
			t.Fatalf("expired early at step %d", i)
		}
		if want := 100 - 7*float64(i); b.Y != want {
			t.Fatalf("y = %v, want %v", b.Y, want)
		}
	}

	b = &Bullet{Y: -8, Height: 15, Speed: 7}
	if !b.Update() {
		t.Fatalf("bullet with bottom edge at %v should expire", b.Y+b.Height)
	}
}

func TestEnemyUpdateExpiresBelowBottom(t *testing.T) {
	e := &Enemy{Y: 0, Width: 40, Height: 40, Speed: 2}
	for i := 1; i <= 5; i++ {
		if e.Update(testField) {
			t.Fatalf("expired early")
		}
		if want := 2 * float64(i); e.Y != want {
			t.Fatalf("y = %v, want %v", e.Y, want)
		}
	}

	e = &Enemy{Y: 638, Width: 40, Height: 40, Speed: 2}
	if !e.Update(testField) {
		t.Fatal("enemy one full height below the field should expire")
	}
}

func TestEnemyHit(t *testing.T) {
	e := &Enemy{Health: EnemyHealth}
	if !e.Hit(1) {
		t.Fatal("single hit should destroy a fresh enemy")
	}
}

func TestParticleUpdateAndAlpha(t *testing.T) {
	p := &Particle{X: 10, Y: 10, VX: 1, VY: -2, Life: ParticleLife}
	if p.Alpha() != 1 {
		t.Fatalf("fresh alpha = %v", p.Alpha())
	}
	for i := 1; i < ParticleLife; i++ {
		if p.Update() {
			t.Fatalf("expired after %d frames", i)
		}
	}
	if p.X != 10+29 || p.Y != 10-58 {
		t.Fatalf("position = (%v, %v)", p.X, p.Y)
	}
	if math.Abs(p.Alpha()-1.0/30) > 1e-9 {
		t.Fatalf("alpha = %v", p.Alpha())
	}
	if !p.Update() {
		t.Fatal("particle should expire on its 30th frame")
	}
	if p.Alpha() != 0 {
		t.Fatalf("expired alpha = %v", p.Alpha())
	}
}

func TestSpawnerEnemyRanges(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)), testField)
	for range 500 {
		e := s.Enemy(1.6)
		if e.Width < 30 || e.Width >= 50 || e.Width != e.Height {
			t.Fatalf("size out of range: %v x %v", e.Width, e.Height)
		}
		if e.X < 0 || e.X > testField.Width-e.Width {
			t.Fatalf("x out of range: %v (size %v)", e.X, e.Width)
		}
		if e.Y != -e.Height {
			t.Fatalf("y = %v, want %v", e.Y, -e.Height)
		}
		if e.Speed < 1.6 || e.Speed >= 2.1 {
			t.Fatalf("speed out of range: %v", e.Speed)
		}
		if e.Health != 1 || e.Color != EnemyColor {
			t.Fatalf("unexpected enemy %+v", e)
		}
	}
}

func TestSpawnerBurst(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(2)), testField)
	burst := s.Burst(50, 60, EnemyColor)
	if len(burst) != BurstCount {
		t.Fatalf("burst size = %d, want %d", len(burst), BurstCount)
	}
	for _, p := range burst {
		if p.X != 50 || p.Y != 60 {
			t.Fatalf("particle not centred: (%v, %v)", p.X, p.Y)
		}
		if p.VX < -3 || p.VX >= 3 || p.VY < -3 || p.VY >= 3 {
			t.Fatalf("velocity out of range: (%v, %v)", p.VX, p.VY)
		}
		if p.Size < 2 || p.Size >= 5 {
			t.Fatalf("size out of range: %v", p.Size)
		}
		if p.Life != 30 || p.Color != EnemyColor {
			t.Fatalf("unexpected particle %+v", p)
		}
	}
}

func TestSpawnerIsDeterministicForSeed(t *testing.T) {
	a := NewSpawner(rand.New(rand.NewSource(99)), testField).Enemy(1)
	b := NewSpawner(rand.New(rand.NewSource(99)), testField).Enemy(1)
	if *a != *b {
		t.Fatalf("same seed produced %+v and %+v", a, b)
	}
}

func TestDrawShapes(t *testing.T) {
	s := &recordingSurface{alpha: 1}

	NewPlayer(testField).Draw(s)
	(&Enemy{X: 0, Y: 0, Width: 40, Height: 40, Color: EnemyColor}).Draw(s)
	(&Bullet{Width: 4, Height: 15}).Draw(s)
	(&Particle{Life: 15, Size: 3, Color: EnemyColor}).Draw(s)

	if len(s.paths) != 2 || len(s.paths[0]) != 4 || len(s.paths[1]) != enemySides {
		t.Fatalf("paths = %v", s.paths)
	}
	if len(s.rects) != 2 {
		t.Fatalf("rects = %v", s.rects)
	}
	if s.alphas[1] != 0.5 {
		t.Fatalf("particle alpha = %v, want 0.5", s.alphas[1])
	}
	if s.alpha != 1 || s.glow != 0 {
		t.Fatalf("draw state leaked: alpha=%v glow=%v", s.alpha, s.glow)
	}
	for i, g := range s.glows[:3] {
		if g != GlowBlur {
			t.Fatalf("fill %d glow = %v, want %v", i, g, GlowBlur)
		}
	}

	// Octagon vertices lie on the inscribed circle.
	for _, pt := range s.paths[1] {
		if d := math.Hypot(pt.X-20, pt.Y-20); math.Abs(d-20) > 1e-9 {
			t.Fatalf("vertex %v at distance %v", pt, d)
		}
	}
}
