package game

// Game tuning constants.

// Playfield
const (
	FieldWidth  = 800.0
	FieldHeight = 600.0
)

// Session start values
const (
	InitialLives         = 3
	InitialLevel         = 1
	InitialEnemySpeed    = 1.0
	InitialSpawnInterval = 100 // Frames between enemy spawns
)

// Scoring and difficulty
const (
	KillScore         = 10
	LevelScore        = 500 // Points per level
	EnemySpeedStep    = 0.3
	SpawnIntervalStep = 10
	MinSpawnInterval  = 50
	bulletDamage      = 1
)
