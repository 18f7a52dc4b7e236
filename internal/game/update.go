package game

import (
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

func (s *Session) updatePlayer() {
	s.player.Update(s.input, s.field)
}

// updateBullets moves bullets up and drops those past the top edge.
func (s *Session) updateBullets() {
	s.bullets.RemoveFunc(func(b *object.Bullet) bool {
		return b.Update()
	})
}

// updateEnemies moves enemies down, drops those past the bottom edge and handles
// contact with the player. A contact destroys the enemy and costs a life.
// Once the game is over no further contacts are counted in the same tick.
func (s *Session) updateEnemies() {
	s.enemies.RemoveFunc(func(e *object.Enemy) bool {
		offscreen := e.Update(s.field)
		if s.state == StatePlaying && physics.Overlaps(s.player.Bounds(), e.Bounds()) {
			s.playerHit(e)
			return true
		}
		return offscreen
	})
}

func (s *Session) updateParticles() {
	s.particles.RemoveFunc(func(p *object.Particle) bool {
		return p.Update()
	})
}

func (s *Session) playerHit(e *object.Enemy) {
	x, y := e.Center()
	s.particles.Append(s.spawner.Burst(x, y, e.Color)...)

	s.lives--
	s.logger.Debug("player hit", "lives", s.lives)
	s.observer.StatsChanged(s.Stats())
	if s.lives <= 0 {
		s.gameOver()
	}
}
