package game

// award adds points and levels up once for every LevelScore boundary crossed.
func (s *Session) award(points int) {
	before := s.score / LevelScore
	s.score += points
	for range s.score/LevelScore - before {
		s.levelUp()
	}
	s.observer.StatsChanged(s.Stats())
}

func (s *Session) levelUp() {
	s.level++
	s.enemySpeed += EnemySpeedStep
	s.spawnInterval = max(MinSpawnInterval, s.spawnInterval-SpawnIntervalStep)
	s.logger.Info("level up", "level", s.level, "enemySpeed", s.enemySpeed, "spawnInterval", s.spawnInterval)
}
