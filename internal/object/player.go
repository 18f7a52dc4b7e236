package object

import (
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// Player defaults.
const (
	PlayerSize     = 40.0
	PlayerSpeed    = 5.0
	playerNotch    = 10.0 // depth of the notch at the ship's tail
	playerSpawnGap = 80.0 // distance of the spawn point from the bottom edge
)

// Player is the player-controlled craft.
type Player struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64 // Units per frame along each axis
}

// NewPlayer creates a player at the default spawn point of the playfield.
func NewPlayer(field Playfield) *Player {
	p := &Player{
		Width:  PlayerSize,
		Height: PlayerSize,
		Speed:  PlayerSpeed,
	}
	p.Reset(field)
	return p
}

// Reset moves the player back to the spawn point: horizontally centred, near the bottom.
func (p *Player) Reset(field Playfield) {
	p.X = field.Width/2 - p.Width/2
	p.Y = field.Height - playerSpawnGap
}

// Update moves the player according to the held direction keys.
// The player stays inside the playfield and cannot rise above its vertical midpoint.
func (p *Player) Update(in Input, field Playfield) {
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}
	if in.Up {
		p.Y -= p.Speed
	}
	if in.Down {
		p.Y += p.Speed
	}

	p.X = physics.Clamp(p.X, 0, field.Width-p.Width)
	p.Y = physics.Clamp(p.Y, field.Height/2, field.Height-p.Height)
}

// Bounds returns the player's collision box.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Draw renders the ship as an arrowhead pointing up with a notched tail.
func (p *Player) Draw(s Surface) {
	s.SetFill(PlayerColor)
	s.SetGlow(GlowBlur, PlayerColor)
	s.FillPath([]draw.Point{
		{X: p.X + p.Width/2, Y: p.Y},
		{X: p.X + p.Width, Y: p.Y + p.Height},
		{X: p.X + p.Width/2, Y: p.Y + p.Height - playerNotch},
		{X: p.X, Y: p.Y + p.Height},
	})
	s.SetGlow(0, PlayerColor)
}
