package response

import (
	"time"

	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// LobbyConfig represents lobby configuration
type LobbyConfig struct {
	BoardWidth  int `json:"board_width"`
	BoardHeight int `json:"board_height"`
	TargetScore int `json:"target_score"`
}

// LobbyConfigFromModel converts model.LobbyConfig
func LobbyConfigFromModel(c model.LobbyConfig) LobbyConfig {
	return LobbyConfig{
		BoardWidth:  c.BoardWidth,
		BoardHeight: c.BoardHeight,
		TargetScore: c.TargetScore,
	}
}

// LobbyMember represents a lobby member
type LobbyMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
}

// LobbyMemberFromModel converts model.LobbyMember
func LobbyMemberFromModel(m model.LobbyMember) LobbyMember {
	return LobbyMember{
		PlayerID:    string(m.Player.ID),
		DisplayName: m.Player.DisplayName,
		IsHost:      m.IsHost,
	}
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID              string         `json:"id"`
	FinalScores     map[string]int `json:"final_scores"`
	Winner          *string        `json:"winner"`
	DurationSeconds int            `json:"duration_seconds"`
	CompletedAt     time.Time      `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	scores := make(map[string]int, len(g.FinalScores))
	for pid, score := range g.FinalScores {
		scores[string(pid)] = score
	}
	var winner *string
	if g.Winner != "" {
		w := string(g.Winner)
		winner = &w
	}
	return GameSummary{
		ID:              string(g.ID),
		FinalScores:     scores,
		Winner:          winner,
		DurationSeconds: int(g.Duration.Seconds()),
		CompletedAt:     g.CompletedAt,
	}
}

// Lobby represents a lobby in API responses
type Lobby struct {
	Code        string        `json:"code"`
	State       string        `json:"state"`
	Config      LobbyConfig   `json:"config"`
	Members     []LobbyMember `json:"members"`
	CurrentGame *string       `json:"current_game"`
	GameHistory []GameSummary `json:"game_history,omitempty"`
}

// LobbyFromModel converts model.Lobby
func LobbyFromModel(l *model.Lobby) Lobby {
	members := make([]LobbyMember, len(l.Members))
	for i, m := range l.Members {
		members[i] = LobbyMemberFromModel(m)
	}

	history := make([]GameSummary, len(l.GameHistory))
	for i, g := range l.GameHistory {
		history[i] = GameSummaryFromModel(g)
	}

	var currentGame *string
	if l.CurrentGame != nil {
		g := string(*l.CurrentGame)
		currentGame = &g
	}

	return Lobby{
		Code:        string(l.Code),
		State:       string(l.State),
		Config:      LobbyConfigFromModel(l.Config),
		Members:     members,
		CurrentGame: currentGame,
		GameHistory: history,
	}
}

// Tile represents one maze tile
type Tile struct {
	Shape       string  `json:"shape"`
	Orientation string  `json:"orientation"`
	WhoseTarget *string `json:"whose_target,omitempty"`
}

// TileFromModel converts model.Tile
func TileFromModel(t model.Tile) Tile {
	var target *string
	if t.WhoseTarget != nil {
		id := string(*t.WhoseTarget)
		target = &id
	}
	return Tile{
		Shape:       t.Shape.String(),
		Orientation: t.Orientation.String(),
		WhoseTarget: target,
	}
}

// InsertSlot represents a staged insertion lane
type InsertSlot struct {
	Dir        string `json:"dir"`
	GuideIndex int    `json:"guide_index"`
}

// Token represents a player's token on the board
type Token struct {
	PlayerID string `json:"player_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Score    int    `json:"score"`
}

// Board represents the shared game board
type Board struct {
	Cells      [][]Tile    `json:"cells"`
	LooseTile  Tile        `json:"loose_tile"`
	StagedSlot *InsertSlot `json:"staged_slot,omitempty"`
	Tokens     []Token     `json:"tokens"`
}

// BoardFromModel converts model.Board. Tokens are listed in ascending
// PlayerID order.
func BoardFromModel(b *model.Board) Board {
	cells := make([][]Tile, b.Height())
	for row := range b.Cells {
		cells[row] = make([]Tile, b.Width())
		for col := range b.Cells[row] {
			cells[row][col] = TileFromModel(b.Cells[row][col])
		}
	}

	var staged *InsertSlot
	if b.StagedSlot != nil {
		staged = &InsertSlot{
			Dir:        b.StagedSlot.Dir.String(),
			GuideIndex: b.StagedSlot.GuideIndex,
		}
	}

	ordered := b.OrderedTokens()
	tokens := make([]Token, len(ordered))
	for i, t := range ordered {
		tokens[i] = Token{
			PlayerID: string(t.PlayerID),
			Row:      t.Position.Row,
			Col:      t.Position.Col,
			Score:    t.Score,
		}
	}

	return Board{
		Cells:      cells,
		LooseTile:  TileFromModel(b.LooseTile),
		StagedSlot: staged,
		Tokens:     tokens,
	}
}

// GameState represents the current game state
type GameState struct {
	ID            string   `json:"id"`
	State         string   `json:"state"`
	BoardWidth    int      `json:"board_width"`
	BoardHeight   int      `json:"board_height"`
	TargetScore   int      `json:"target_score"`
	Players       []string `json:"players"`
	CurrentPlayer string   `json:"current_player,omitempty"`
	Winner        *string  `json:"winner,omitempty"`
	Board         *Board   `json:"board,omitempty"`
}

// GameStateFromModel converts model.Game plus its board to a response
func GameStateFromModel(g *model.Game, board *model.Board) GameState {
	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = string(p)
	}

	var winner *string
	if g.Winner != "" {
		w := string(g.Winner)
		winner = &w
	}

	var boardResp *Board
	if board != nil {
		b := BoardFromModel(board)
		boardResp = &b
	}

	return GameState{
		ID:            string(g.ID),
		State:         string(g.State),
		BoardWidth:    g.BoardWidth,
		BoardHeight:   g.BoardHeight,
		TargetScore:   g.TargetScore,
		Players:       players,
		CurrentPlayer: string(g.CurrentPlayer()),
		Winner:        winner,
		Board:         boardResp,
	}
}
