package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Best     int  // Best score this session
	Coins    int  // Coins collected in the current run
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Cue is a fire-and-forget notification emitted by a simulation tick.
// The platform maps cues to sounds; games never talk to audio directly.
type Cue int

const (
	CueJump Cue = iota
	CueSpring
	CueBreak
	CueCoin
	CueGameOver
	CueRestart
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueSpring:
		return "spring"
	case CueBreak:
		return "break"
	case CueCoin:
		return "coin"
	case CueGameOver:
		return "game_over"
	case CueRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Cues  []Cue
}
