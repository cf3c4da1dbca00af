package board

import (
	"context"
	"log/slog"

	"github.com/mazekit/mazegame-go/internal/dependencies/random"
	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/storage"
)

// Service provides board operations
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new BoardService
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// CreateBoard generates a board for a game and seeds one target per player
func (s *Service) CreateBoard(ctx context.Context, gameID model.GameID, width, height int, players []model.PlayerID) (*model.Board, error) {
	board, err := model.NewBoard(gameID, width, height, players, s.random)
	if err != nil {
		return nil, err
	}

	for _, token := range board.OrderedTokens() {
		if err := s.AssignTarget(board, token.PlayerID); err != nil {
			return nil, err
		}
	}

	if err := s.storage.SaveBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// GetBoard retrieves the board for a game
func (s *Service) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	return s.storage.GetBoard(ctx, gameID)
}

// SaveBoard persists a mutated board
func (s *Service) SaveBoard(ctx context.Context, board *model.Board) error {
	return s.storage.SaveBoard(ctx, board)
}

// AssignTarget marks a random grid tile as the player's next target.
// Eligible tiles are non-corner cells with no target and no token on them.
// The target marker rides the tile, so insertions can shift it around the
// board or push it onto the loose tile.
func (s *Service) AssignTarget(board *model.Board, playerID model.PlayerID) error {
	occupied := make(map[model.Position]bool, len(board.Tokens))
	for _, token := range board.Tokens {
		occupied[token.Position] = true
	}

	width, height := board.Width(), board.Height()
	isCorner := func(pos model.Position) bool {
		return (pos.Row == 0 || pos.Row == height-1) && (pos.Col == 0 || pos.Col == width-1)
	}

	var candidates []model.Position
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pos := model.Position{Row: row, Col: col}
			if isCorner(pos) || occupied[pos] || board.Cells[row][col].WhoseTarget != nil {
				continue
			}
			candidates = append(candidates, pos)
		}
	}

	if len(candidates) == 0 {
		return model.ErrNoTargetAvailable
	}

	pos := candidates[s.random.Intn(len(candidates))]
	id := playerID
	board.Cells[pos.Row][pos.Col].WhoseTarget = &id
	return nil
}

// ValidateMove checks that a player's token can legally move to the given
// position through connected passages
func (s *Service) ValidateMove(board *model.Board, playerID model.PlayerID, to model.Position) error {
	token, ok := board.Tokens[playerID]
	if !ok {
		return model.ErrPlayerNotFound
	}
	if !board.IsValidPosition(to) {
		return model.ErrInvalidPosition
	}
	if !board.ReachableCoords(token.Position)[to] {
		return model.ErrUnreachablePosition
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateBoard(ctx context.Context, gameID model.GameID, width, height int, players []model.PlayerID) (*model.Board, error)
	GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error)
	SaveBoard(ctx context.Context, board *model.Board) error
	AssignTarget(board *model.Board, playerID model.PlayerID) error
	ValidateMove(board *model.Board, playerID model.PlayerID, to model.Position) error
}

var _ ServiceInterface = (*Service)(nil)
