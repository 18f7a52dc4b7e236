// Package object defines the simulated entities of a session and the stores that hold them.
package object

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/physics"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Playfield is the logical size of the area entities live in.
type Playfield struct {
	Width  float64
	Height float64
}

// Bounds returns the playfield as a rectangle anchored at the origin.
func (p Playfield) Bounds() physics.Rect {
	return physics.Rect{W: p.Width, H: p.Height}
}

// Surface is the drawing target entities render onto.
// Coordinates are logical playfield units; implementations scale as needed.
type Surface interface {
	// SetFill sets the colour used by subsequent fills.
	SetFill(c colorful.Color)
	// SetAlpha sets the global opacity (0..1) applied to subsequent fills.
	SetAlpha(a float64)
	// SetGlow enables a soft halo of the given blur radius around subsequent fills.
	// A blur of 0 disables it.
	SetGlow(blur float64, c colorful.Color)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64)
	// FillPath fills the closed polygon through points.
	FillPath(points []draw.Point)
}

// Entity is anything with a collision box.
type Entity interface {
	Bounds() physics.Rect
}

// mustHex parses a #rrggbb colour literal.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Entity colours.
var (
	PlayerColor = mustHex("#00ff88")
	BulletColor = mustHex("#ffff00")
	EnemyColor  = mustHex("#ff0066")
)

// GlowBlur is the halo radius used for ships and bullets.
const GlowBlur = 10.0
