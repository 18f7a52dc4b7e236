package game

// State is the phase a session is in.
type State int

const (
	StateStart    State = iota // Title screen, waiting for the first start
	StatePlaying               // Frames advance
	StatePaused                // Frozen, waiting for resume
	StateGameOver              // Final score shown, waiting for restart
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	}
	return "unknown"
}

// Stats are the values shown on the HUD.
type Stats struct {
	Score int
	Lives int
	Level int
}

// Observer is notified about changes a host may want to display.
// Callbacks run synchronously on the goroutine driving the session.
type Observer interface {
	StatsChanged(Stats)
	StateChanged(from, to State)
	GameOver(final Stats)
}

type nopObserver struct{}

func (nopObserver) StatsChanged(Stats)          {}
func (nopObserver) StateChanged(from, to State) {}
func (nopObserver) GameOver(Stats)              {}
