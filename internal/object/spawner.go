package object

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Spawn parameters.
const (
	EnemyMinSize     = 30.0
	EnemySizeRange   = 20.0 // sizes are drawn from [EnemyMinSize, EnemyMinSize+EnemySizeRange)
	EnemySpeedJitter = 0.5
	EnemyHealth      = 1

	BurstCount        = 10
	ParticleMaxSpeed  = 3.0 // each velocity axis is drawn from [-ParticleMaxSpeed, ParticleMaxSpeed)
	ParticleMinSize   = 2.0
	ParticleSizeRange = 3.0
)

// Spawner creates enemies and particle bursts.
// It draws all randomness from its own source so sessions can be replayed from a seed.
type Spawner struct {
	rng   *rand.Rand
	field Playfield
}

// NewSpawner creates a spawner for the given playfield.
func NewSpawner(rng *rand.Rand, field Playfield) *Spawner {
	return &Spawner{rng: rng, field: field}
}

// Enemy creates an enemy just above the top edge at a random horizontal position.
// baseSpeed is the session's current enemy speed; each enemy gets a small random extra.
func (s *Spawner) Enemy(baseSpeed float64) *Enemy {
	size := EnemyMinSize + s.rng.Float64()*EnemySizeRange
	return &Enemy{
		X:      s.rng.Float64() * (s.field.Width - size),
		Y:      -size,
		Width:  size,
		Height: size,
		Speed:  baseSpeed + s.rng.Float64()*EnemySpeedJitter,
		Color:  EnemyColor,
		Health: EnemyHealth,
	}
}

// Burst creates a destruction burst of particles centred on (x, y).
func (s *Spawner) Burst(x, y float64, c colorful.Color) []*Particle {
	particles := make([]*Particle, BurstCount)
	for i := range particles {
		particles[i] = &Particle{
			X:     x,
			Y:     y,
			VX:    (s.rng.Float64() - 0.5) * 2 * ParticleMaxSpeed,
			VY:    (s.rng.Float64() - 0.5) * 2 * ParticleMaxSpeed,
			Life:  ParticleLife,
			Size:  ParticleMinSize + s.rng.Float64()*ParticleSizeRange,
			Color: c,
		}
	}
	return particles
}
