package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateInserting GameState = "inserting" // Current player staging/committing an insertion
	GameStateMoving    GameState = "moving"    // Current player moving their token
	GameStateComplete  GameState = "complete"  // A player reached the target score
	GameStateAbandoned GameState = "abandoned" // Game was cancelled
)

// Game represents a single instance of the maze game. The board itself is
// stored separately; Game carries the turn state machine around it.
type Game struct {
	ID        GameID
	LobbyCode LobbyCode
	State     GameState

	// Board configuration at game start
	BoardWidth  int
	BoardHeight int

	// TargetScore is the score a player must reach to win
	TargetScore int

	// Players in this game (snapshot at game start, ascending PlayerID
	// order to match token placement)
	Players []PlayerID

	// CurrentIdx indexes Players for the active player
	CurrentIdx int

	// Winner is set when State is complete
	Winner PlayerID

	// Timing
	TurnStartedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CurrentPlayer returns the PlayerID of the active player
func (g *Game) CurrentPlayer() PlayerID {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[g.CurrentIdx]
}

// IsFinished returns true if the game is complete or abandoned
func (g *Game) IsFinished() bool {
	return g.State == GameStateComplete || g.State == GameStateAbandoned
}

// HasPlayer returns true if the given player is in the game
func (g *Game) HasPlayer(playerID PlayerID) bool {
	for _, p := range g.Players {
		if p == playerID {
			return true
		}
	}
	return false
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID          GameID
	FinalScores map[PlayerID]int
	Winner      PlayerID // Empty if abandoned
	Duration    time.Duration
	CompletedAt time.Time
}
