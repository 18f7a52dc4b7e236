package object

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// enemySides is the number of vertices of the enemy octagon.
const enemySides = 8

// Enemy is an adversary descending from the top of the playfield.
type Enemy struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Units per frame, downwards
	Color         colorful.Color
	Health        int
}

// Update moves the enemy down. Returns true once it is fully past the bottom of the field.
func (e *Enemy) Update(field Playfield) bool {
	e.Y += e.Speed
	return e.Y >= field.Height+e.Height
}

// Hit applies damage and reports whether the enemy is destroyed.
// Every enemy currently spawns with one health point, so any hit destroys it.
func (e *Enemy) Hit(damage int) bool {
	e.Health -= damage
	return e.Health <= 0
}

// Center returns the enemy's centre point, where destruction bursts originate.
func (e *Enemy) Center() (float64, float64) {
	return e.Bounds().Center()
}

// Bounds returns the enemy's collision box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// Draw renders the enemy as a regular octagon inscribed in its box.
func (e *Enemy) Draw(s Surface) {
	cx, cy := e.Center()
	radius := e.Width / 2

	points := make([]draw.Point, enemySides)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / enemySides
		points[i] = draw.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}

	s.SetFill(e.Color)
	s.SetGlow(GlowBlur, e.Color)
	s.FillPath(points)
	s.SetGlow(0, e.Color)
}
