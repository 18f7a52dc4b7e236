package game

import "github.com/tomz197/starfall/internal/physics"

// resolveCollisions tests every bullet against every enemy. A bullet is spent on the first
// live enemy it overlaps; entities already destroyed this pass are not matched again.
func (s *Session) resolveCollisions() {
	bullets := s.bullets.Items()
	enemies := s.enemies.Items()
	if len(bullets) == 0 || len(enemies) == 0 {
		return
	}

	destroyed := make([]bool, len(enemies))
	var spentBullets, deadEnemies []int
	kills := 0

	for i, b := range bullets {
		for j, e := range enemies {
			if destroyed[j] || !physics.Overlaps(b.Bounds(), e.Bounds()) {
				continue
			}
			spentBullets = append(spentBullets, i)
			if e.Hit(bulletDamage) {
				destroyed[j] = true
				deadEnemies = append(deadEnemies, j)
				x, y := e.Center()
				s.particles.Append(s.spawner.Burst(x, y, e.Color)...)
				kills++
			}
			break
		}
	}

	s.bullets.RemoveIndices(spentBullets)
	s.enemies.RemoveIndices(deadEnemies)
	if kills > 0 {
		s.award(kills * KillScore)
	}
}
