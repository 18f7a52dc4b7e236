package object

import "github.com/tomz197/starfall/internal/physics"

// Bullet defaults.
const (
	BulletWidth  = 4.0
	BulletHeight = 15.0
	BulletSpeed  = 7.0
)

// Bullet is a projectile fired straight up by the player.
type Bullet struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
}

// NewBullet creates a bullet leaving the nose of the player's ship.
func NewBullet(p *Player) *Bullet {
	return &Bullet{
		X:      p.X + p.Width/2 - BulletWidth/2,
		Y:      p.Y,
		Width:  BulletWidth,
		Height: BulletHeight,
		Speed:  BulletSpeed,
	}
}

// Update moves the bullet up. Returns true once its bottom edge has left the top of the field.
func (b *Bullet) Update() bool {
	b.Y -= b.Speed
	return b.Y+b.Height <= 0
}

// Bounds returns the bullet's collision box.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Draw renders the bullet as a glowing bar.
func (b *Bullet) Draw(s Surface) {
	s.SetFill(BulletColor)
	s.SetGlow(GlowBlur, BulletColor)
	s.FillRect(b.X, b.Y, b.Width, b.Height)
	s.SetGlow(0, BulletColor)
}
