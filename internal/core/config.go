package core

// RuntimeConfig is passed to the game when a session starts.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Redraws per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status the game reports to the platform.
type GameState struct {
	Score    int
	Rooms    int  // Rooms visited
	GameOver bool // Whether the session has ended
	Won      bool // Whether it ended by reaching the final room
}

// StepResult is returned after the game handles one input frame.
type StepResult struct {
	State    GameState
	Messages []string // Messages produced by this step
}
