// Package render draws a session's entities onto a Surface each frame.
package render

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/starfall/internal/object"
)

// Star field parameters.
const (
	starCount   = 50
	starAlpha   = 0.5
	starStepX   = 137
	starStepY   = 97
	starDrift   = 0.01 // units per millisecond
	starSizes   = 3
	starMinSize = 1
)

var (
	// Background is the colour of empty space.
	Background = colorful.Color{R: 0, G: 8.0 / 255, B: 20.0 / 255}
	starColor  = colorful.Color{R: 1, G: 1, B: 1}
)

// Scene is a read-only view of everything drawn in one frame.
type Scene struct {
	Field     object.Playfield
	Player    *object.Player
	Bullets   []*object.Bullet
	Enemies   []*object.Enemy
	Particles []*object.Particle
}

// Renderer draws scenes onto a surface.
type Renderer struct {
	surface object.Surface
	now     func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the clock driving the star field drift.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// New creates a renderer for surface.
func New(surface object.Surface, opts ...Option) *Renderer {
	r := &Renderer{surface: surface, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws one frame back to front: background, stars, particles, enemies, bullets, player.
func (r *Renderer) Render(scene Scene) {
	s := r.surface

	s.SetAlpha(1)
	s.SetGlow(0, Background)
	s.SetFill(Background)
	s.FillRect(0, 0, scene.Field.Width, scene.Field.Height)

	r.drawStars(scene.Field)

	for _, p := range scene.Particles {
		p.Draw(s)
	}
	for _, e := range scene.Enemies {
		e.Draw(s)
	}
	for _, b := range scene.Bullets {
		b.Draw(s)
	}
	if scene.Player != nil {
		scene.Player.Draw(s)
	}
}

// drawStars draws a slowly drifting field of background stars.
func (r *Renderer) drawStars(field object.Playfield) {
	if field.Width <= 0 || field.Height <= 0 {
		return
	}
	ms := float64(r.now().UnixMilli())

	r.surface.SetFill(starColor)
	r.surface.SetAlpha(starAlpha)
	for i := range starCount {
		x, y, size := StarAt(i, ms, field)
		r.surface.FillRect(x, y, size, size)
	}
	r.surface.SetAlpha(1)
}

// StarAt returns the position and size of star i at the given time in milliseconds.
func StarAt(i int, ms float64, field object.Playfield) (x, y, size float64) {
	x = math.Mod(float64(i*starStepX)+ms*starDrift, field.Width)
	y = math.Mod(float64(i*starStepY), field.Height)
	size = float64(i%starSizes + starMinSize)
	return x, y, size
}
