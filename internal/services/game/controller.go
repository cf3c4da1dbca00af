package game

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mazekit/mazegame-go/internal/dependencies/clock"
	"github.com/mazekit/mazegame-go/internal/dependencies/random"
	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/services/board"
	"github.com/mazekit/mazegame-go/internal/storage"
)

// Controller manages game state machine and turn flow
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// CreateGame initializes a new game with the given players.
// Players are sorted into ascending PlayerID order so the turn order matches
// the token corner placement.
func (c *Controller) CreateGame(ctx context.Context, lobbyCode model.LobbyCode, players []model.PlayerID, config model.LobbyConfig) (*model.Game, error) {
	if len(players) == 0 {
		return nil, model.ErrInsufficientPlayers
	}

	ordered := append([]model.PlayerID(nil), players...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	now := c.clock.Now()
	gameID := model.GameID(c.random.String(12, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"))

	game := &model.Game{
		ID:            gameID,
		LobbyCode:     lobbyCode,
		State:         model.GameStateInserting,
		BoardWidth:    config.BoardWidth,
		BoardHeight:   config.BoardHeight,
		TargetScore:   config.TargetScore,
		Players:       ordered,
		CurrentIdx:    0,
		TurnStartedAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := c.boardService.CreateBoard(ctx, gameID, config.BoardWidth, config.BoardHeight, ordered); err != nil {
		return nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("lobby_code", string(lobbyCode)),
		slog.Int("player_count", len(ordered)),
		slog.Int("board_width", config.BoardWidth),
		slog.Int("board_height", config.BoardHeight),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// GetBoard retrieves the board for a game
func (c *Controller) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	return c.boardService.GetBoard(ctx, gameID)
}

// validateTurn checks that the game is in the expected phase and that it is
// this player's turn to act
func validateTurn(game *model.Game, playerID model.PlayerID, phase model.GameState) error {
	if game.State == model.GameStateComplete {
		return model.ErrGameComplete
	}
	if game.State == model.GameStateAbandoned {
		return model.ErrGameAbandoned
	}
	if game.State != phase {
		return model.ErrWrongPhase
	}
	if !game.HasPlayer(playerID) {
		return model.ErrPlayerNotFound
	}
	if game.CurrentPlayer() != playerID {
		return model.ErrNotPlayerTurn
	}
	return nil
}

// StageInsertion records the lane the current player intends to slide the
// loose tile into. Restaging a different lane overwrites the previous choice.
func (c *Controller) StageInsertion(ctx context.Context, gameID model.GameID, playerID model.PlayerID, dir model.Direction, guideIndex int) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := validateTurn(game, playerID, model.GameStateInserting); err != nil {
		return err
	}

	boardObj, err := c.boardService.GetBoard(ctx, gameID)
	if err != nil {
		return err
	}

	if err := boardObj.StageInsertion(dir, guideIndex); err != nil {
		return err
	}
	if err := c.boardService.SaveBoard(ctx, boardObj); err != nil {
		return err
	}

	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// RotateLooseTile turns the loose tile 90 degrees clockwise
func (c *Controller) RotateLooseTile(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := validateTurn(game, playerID, model.GameStateInserting); err != nil {
		return err
	}

	boardObj, err := c.boardService.GetBoard(ctx, gameID)
	if err != nil {
		return err
	}

	boardObj.RotateLooseTile()
	if err := c.boardService.SaveBoard(ctx, boardObj); err != nil {
		return err
	}

	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// CommitInsertion slides the loose tile into the staged lane and carries any
// tokens standing in that lane one cell along with their tiles. A token on
// the tile pushed off the board wraps around to the newly inserted tile.
// The turn then advances to the moving phase.
func (c *Controller) CommitInsertion(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := validateTurn(game, playerID, model.GameStateInserting); err != nil {
		return err
	}

	boardObj, err := c.boardService.GetBoard(ctx, gameID)
	if err != nil {
		return err
	}
	if boardObj.StagedSlot == nil {
		return model.ErrNoInsertionStaged
	}

	slot := *boardObj.StagedSlot
	entry := boardObj.InsertEntry(slot)
	exit := boardObj.InsertExit(slot)
	target := slot.TargetIndex()

	boardObj.InsertLooseTile()

	// Tokens in the shifted lane move with their tiles, away from the entry
	// edge. The token on the pushed-off tile wraps to the entry cell.
	carry := slot.Dir.Opposite()
	for _, token := range boardObj.Tokens {
		inLane := token.Position.Col == target
		if slot.Dir == model.East || slot.Dir == model.West {
			inLane = token.Position.Row == target
		}
		if !inLane {
			continue
		}
		if token.Position == exit {
			token.Position = entry
		} else {
			token.Position = token.Position.Step(carry)
		}
	}

	if err := c.boardService.SaveBoard(ctx, boardObj); err != nil {
		return err
	}

	game.State = model.GameStateMoving
	game.UpdatedAt = c.clock.Now()

	c.logger.Info("tile inserted",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("dir", slot.Dir.String()),
		slog.Int("guide_index", slot.GuideIndex),
	)

	return c.storage.SaveGame(ctx, game)
}

// MoveToken moves the current player's token to a reachable position,
// scores a reached target, and advances the turn. Moving to the token's
// current position is a legal stay-in-place move.
func (c *Controller) MoveToken(ctx context.Context, gameID model.GameID, playerID model.PlayerID, to model.Position) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := validateTurn(game, playerID, model.GameStateMoving); err != nil {
		return err
	}

	boardObj, err := c.boardService.GetBoard(ctx, gameID)
	if err != nil {
		return err
	}

	if err := c.boardService.ValidateMove(boardObj, playerID, to); err != nil {
		return err
	}

	token := boardObj.Tokens[playerID]
	token.Position = to

	// Landing on your own target scores a point and consumes the target
	tile := &boardObj.Cells[to.Row][to.Col]
	if tile.WhoseTarget != nil && *tile.WhoseTarget == playerID {
		tile.WhoseTarget = nil
		token.Score++

		c.logger.Info("target reached",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
			slog.Int("score", token.Score),
		)

		if token.Score >= game.TargetScore {
			game.State = model.GameStateComplete
			game.Winner = playerID
			game.UpdatedAt = c.clock.Now()

			c.logger.Info("game completed",
				slog.String("game_id", string(gameID)),
				slog.String("winner", string(playerID)),
			)

			if err := c.boardService.SaveBoard(ctx, boardObj); err != nil {
				return err
			}
			return c.storage.SaveGame(ctx, game)
		}

		if err := c.boardService.AssignTarget(boardObj, playerID); err != nil {
			return err
		}
	}

	if err := c.boardService.SaveBoard(ctx, boardObj); err != nil {
		return err
	}

	return c.advanceTurn(ctx, game)
}

// advanceTurn hands the game to the next player's insertion phase
func (c *Controller) advanceTurn(ctx context.Context, game *model.Game) error {
	game.CurrentIdx = (game.CurrentIdx + 1) % len(game.Players)
	game.State = model.GameStateInserting
	game.TurnStartedAt = c.clock.Now()
	game.UpdatedAt = game.TurnStartedAt
	return c.storage.SaveGame(ctx, game)
}

// AbandonGame ends a game prematurely
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.IsFinished() {
		return nil // Already finished
	}

	game.State = model.GameStateAbandoned
	game.UpdatedAt = c.clock.Now()

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
		slog.String("lobby_code", string(game.LobbyCode)),
	)

	return c.storage.SaveGame(ctx, game)
}

// RemovePlayer handles a player leaving mid-game. Their token and pending
// targets come off the board; the game is abandoned if nobody remains.
func (c *Controller) RemovePlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.IsFinished() {
		return nil // Game already finished
	}

	playerIdx := -1
	for i, p := range game.Players {
		if p == playerID {
			playerIdx = i
			break
		}
	}
	if playerIdx == -1 {
		return nil // Player not in game
	}

	wasCurrent := game.CurrentPlayer() == playerID
	game.Players = append(game.Players[:playerIdx], game.Players[playerIdx+1:]...)

	if len(game.Players) == 0 {
		game.State = model.GameStateAbandoned
		game.UpdatedAt = c.clock.Now()
		return c.storage.SaveGame(ctx, game)
	}

	boardObj, err := c.boardService.GetBoard(ctx, gameID)
	if err != nil {
		return err
	}

	delete(boardObj.Tokens, playerID)
	for row := range boardObj.Cells {
		for col := range boardObj.Cells[row] {
			tile := &boardObj.Cells[row][col]
			if tile.WhoseTarget != nil && *tile.WhoseTarget == playerID {
				tile.WhoseTarget = nil
			}
		}
	}
	if boardObj.LooseTile.WhoseTarget != nil && *boardObj.LooseTile.WhoseTarget == playerID {
		boardObj.LooseTile.WhoseTarget = nil
	}

	if err := c.boardService.SaveBoard(ctx, boardObj); err != nil {
		return err
	}

	// Keep CurrentIdx pointing at the same player where possible
	if playerIdx < game.CurrentIdx {
		game.CurrentIdx--
	}
	if game.CurrentIdx >= len(game.Players) {
		game.CurrentIdx = 0
	}

	// A turn abandoned mid-way restarts as the next player's insertion phase
	if wasCurrent {
		game.State = model.GameStateInserting
		game.TurnStartedAt = c.clock.Now()
	}

	game.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, game)
}

// CreateGameSummary creates a summary record for a finished game
func (c *Controller) CreateGameSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.IsFinished() {
		return nil, model.ErrGameInProgress
	}

	boardObj, err := c.boardService.GetBoard(ctx, gameID)
	if err != nil {
		return nil, err
	}

	finalScores := make(map[model.PlayerID]int, len(boardObj.Tokens))
	for id, token := range boardObj.Tokens {
		finalScores[id] = token.Score
	}

	return &model.GameSummary{
		ID:          gameID,
		FinalScores: finalScores,
		Winner:      game.Winner,
		Duration:    c.clock.Since(game.CreatedAt),
		CompletedAt: c.clock.Now(),
	}, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, lobbyCode model.LobbyCode, players []model.PlayerID, config model.LobbyConfig) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error)
	StageInsertion(ctx context.Context, gameID model.GameID, playerID model.PlayerID, dir model.Direction, guideIndex int) error
	RotateLooseTile(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error
	CommitInsertion(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error
	MoveToken(ctx context.Context, gameID model.GameID, playerID model.PlayerID, to model.Position) error
	AbandonGame(ctx context.Context, gameID model.GameID) error
	RemovePlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error
	CreateGameSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error)
}

var _ ControllerInterface = (*Controller)(nil)
