package object

import "github.com/lucasb-eyer/go-colorful"

// ParticleLife is the number of frames a particle lives.
const ParticleLife = 30

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity per frame
	Life   int     // Frames remaining
	Size   float64
	Color  colorful.Color
}

// Update moves the particle and ages it. Returns true when the particle has expired.
func (p *Particle) Update() bool {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	return p.Life <= 0
}

// Alpha returns the particle's opacity, fading linearly over its life.
func (p *Particle) Alpha() float64 {
	if p.Life <= 0 {
		return 0
	}
	return float64(p.Life) / ParticleLife
}

// Draw renders the particle as a fading square.
func (p *Particle) Draw(s Surface) {
	s.SetFill(p.Color)
	s.SetAlpha(p.Alpha())
	s.FillRect(p.X, p.Y, p.Size, p.Size)
	s.SetAlpha(1)
}
