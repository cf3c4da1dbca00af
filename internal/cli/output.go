package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Lobby:
		o.printLobby(v)
	case GameState:
		o.printGameState(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// LobbyConfig response type
type LobbyConfig struct {
	BoardWidth  int `json:"board_width"`
	BoardHeight int `json:"board_height"`
	TargetScore int `json:"target_score"`
}

// LobbyMember response type
type LobbyMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
}

// GameSummary response type
type GameSummary struct {
	ID              string         `json:"id"`
	FinalScores     map[string]int `json:"final_scores"`
	Winner          *string        `json:"winner"`
	DurationSeconds int            `json:"duration_seconds"`
}

// Lobby response type
type Lobby struct {
	Code        string        `json:"code"`
	State       string        `json:"state"`
	Config      LobbyConfig   `json:"config"`
	Members     []LobbyMember `json:"members"`
	CurrentGame *string       `json:"current_game"`
	GameHistory []GameSummary `json:"game_history,omitempty"`
}

// Tile response type
type Tile struct {
	Shape       string  `json:"shape"`
	Orientation string  `json:"orientation"`
	WhoseTarget *string `json:"whose_target,omitempty"`
}

// InsertSlot response type
type InsertSlot struct {
	Dir        string `json:"dir"`
	GuideIndex int    `json:"guide_index"`
}

// Token response type
type Token struct {
	PlayerID string `json:"player_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Score    int    `json:"score"`
}

// Board response type
type Board struct {
	Cells      [][]Tile    `json:"cells"`
	LooseTile  Tile        `json:"loose_tile"`
	StagedSlot *InsertSlot `json:"staged_slot,omitempty"`
	Tokens     []Token     `json:"tokens"`
}

// GameState response type
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

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printLobby(l Lobby) {
	fmt.Printf("Lobby: %s\n", l.Code)
	fmt.Printf("State: %s\n", l.State)
	fmt.Printf("Board: %dx%d, first to %d targets\n", l.Config.BoardWidth, l.Config.BoardHeight, l.Config.TargetScore)
	if l.CurrentGame != nil {
		fmt.Printf("Current Game: %s\n", *l.CurrentGame)
	}
	fmt.Printf("Members (%d):\n", len(l.Members))
	for _, m := range l.Members {
		hostStr := ""
		if m.IsHost {
			hostStr = " [host]"
		}
		fmt.Printf("  - %s (%s)%s\n", m.DisplayName, m.PlayerID, hostStr)
	}
	if len(l.GameHistory) > 0 {
		fmt.Printf("Past Games (%d):\n", len(l.GameHistory))
		for _, g := range l.GameHistory {
			if g.Winner != nil {
				fmt.Printf("  - %s won by %s\n", g.ID, *g.Winner)
			} else {
				fmt.Printf("  - %s abandoned\n", g.ID)
			}
		}
	}
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("State: %s\n", g.State)
	fmt.Printf("Board: %dx%d, first to %d targets\n", g.BoardWidth, g.BoardHeight, g.TargetScore)

	if g.CurrentPlayer != "" {
		fmt.Printf("Current Player: %s\n", g.CurrentPlayer)
	}
	if g.Winner != nil {
		fmt.Printf("Winner: %s\n", *g.Winner)
	}

	if g.Board != nil {
		fmt.Println()
		o.printBoard(g.Board)
	}
}

// tileRune maps a tile's passages to a box-drawing character
func tileRune(t Tile) rune {
	switch t.Shape + "/" + t.Orientation {
	case "straight/north", "straight/south":
		return '│'
	case "straight/east", "straight/west":
		return '─'
	case "corner/north":
		return '└'
	case "corner/east":
		return '┌'
	case "corner/south":
		return '┐'
	case "corner/west":
		return '┘'
	case "tee/north":
		return '┴'
	case "tee/east":
		return '├'
	case "tee/south":
		return '┬'
	case "tee/west":
		return '┤'
	}
	return '?'
}

func (o *Output) printBoard(b *Board) {
	if b == nil || len(b.Cells) == 0 {
		return
	}

	height := len(b.Cells)
	width := len(b.Cells[0])

	// Tokens overlay the grid as digits, numbered in board order
	tokenAt := make(map[[2]int]int, len(b.Tokens))
	for i, t := range b.Tokens {
		tokenAt[[2]int{t.Row, t.Col}] = i + 1
	}

	// Column headers
	fmt.Print("    ")
	for col := 0; col < width; col++ {
		fmt.Printf("%d ", col)
	}
	fmt.Println()

	for row := 0; row < height; row++ {
		fmt.Printf(" %d  ", row)
		for col := 0; col < width; col++ {
			if n, ok := tokenAt[[2]int{row, col}]; ok {
				fmt.Printf("%d ", n)
				continue
			}
			fmt.Printf("%c ", tileRune(b.Cells[row][col]))
		}
		fmt.Println()
	}

	fmt.Printf("\nLoose tile: %c (%s %s)\n", tileRune(b.LooseTile), b.LooseTile.Shape, b.LooseTile.Orientation)
	if b.StagedSlot != nil {
		fmt.Printf("Staged: %s edge, lane %d\n", b.StagedSlot.Dir, b.StagedSlot.GuideIndex)
	}

	fmt.Println("\nTokens:")
	for i, t := range b.Tokens {
		fmt.Printf("  %d. %s at (%d,%d), score %d\n", i+1, t.PlayerID, t.Row, t.Col, t.Score)
	}

	targets := false
	for row := range b.Cells {
		for col := range b.Cells[row] {
			if target := b.Cells[row][col].WhoseTarget; target != nil {
				if !targets {
					fmt.Println("\nTargets:")
					targets = true
				}
				fmt.Printf("  (%d,%d) for %s\n", row, col, *target)
			}
		}
	}
	if b.LooseTile.WhoseTarget != nil {
		if !targets {
			fmt.Println("\nTargets:")
		}
		fmt.Printf("  loose tile for %s\n", *b.LooseTile.WhoseTarget)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
