package model

import "time"

// LobbyCode is a human-readable identifier for joining lobbies
type LobbyCode string

// LobbyState represents the current state of a lobby
type LobbyState string

const (
	LobbyStateWaiting LobbyState = "waiting" // No game in progress
	LobbyStateInGame  LobbyState = "in_game" // Game currently active
)

// LobbyMember represents a player's membership in a lobby
type LobbyMember struct {
	Player   Player
	IsHost   bool
	JoinedAt time.Time
}

// LobbyConfig holds configurable settings for games in this lobby
type LobbyConfig struct {
	BoardWidth  int // Odd, >= 5
	BoardHeight int // Odd, >= 5
	TargetScore int // Points needed to win
}

// DefaultLobbyConfig returns the default lobby configuration
func DefaultLobbyConfig() LobbyConfig {
	return LobbyConfig{
		BoardWidth:  7,
		BoardHeight: 7,
		TargetScore: 3,
	}
}

// Validate checks that games created from this config are playable
func (c LobbyConfig) Validate() error {
	if c.BoardWidth < 5 || c.BoardHeight < 5 || c.BoardWidth%2 == 0 || c.BoardHeight%2 == 0 {
		return ErrInvalidBoardSize
	}
	if c.TargetScore < 1 {
		return ErrInvalidLobbyConfig
	}
	return nil
}

// MaxLobbyPlayers is the most players a board supports: one token per corner
const MaxLobbyPlayers = 4

// Lobby represents a group of players who can play games together
type Lobby struct {
	Code        LobbyCode
	State       LobbyState
	Members     []LobbyMember
	Config      LobbyConfig
	GameHistory []GameSummary // Completed games
	CurrentGame *GameID       // nil when State is waiting
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetHost returns the current host member, or nil if none
func (l *Lobby) GetHost() *LobbyMember {
	for i := range l.Members {
		if l.Members[i].IsHost {
			return &l.Members[i]
		}
	}
	return nil
}

// GetMember returns the member with the given player ID, or nil if not found
func (l *Lobby) GetMember(playerID PlayerID) *LobbyMember {
	for i := range l.Members {
		if l.Members[i].Player.ID == playerID {
			return &l.Members[i]
		}
	}
	return nil
}

// PlayerIDs returns the IDs of all members
func (l *Lobby) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, len(l.Members))
	for i, m := range l.Members {
		ids[i] = m.Player.ID
	}
	return ids
}
