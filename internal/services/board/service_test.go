package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mazekit/mazegame-go/internal/dependencies/mocks"
	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/storage/memory"
	"github.com/mazekit/mazegame-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

// targetsFor counts grid tiles marked as the player's target
func targetsFor(board *model.Board, playerID model.PlayerID) int {
	count := 0
	for row := range board.Cells {
		for col := range board.Cells[row] {
			t := board.Cells[row][col].WhoseTarget
			if t != nil && *t == playerID {
				count++
			}
		}
	}
	return count
}

func (s *ServiceSuite) TestCreateBoardSeedsOneTargetPerPlayer() {
	players := []model.PlayerID{"player-1", "player-2"}

	board, err := s.service.CreateBoard(s.ctx, "game-1", 7, 7, players)
	s.Require().NoError(err)

	s.Equal(1, targetsFor(board, "player-1"))
	s.Equal(1, targetsFor(board, "player-2"))

	// Targets never start on corners or under a token
	occupied := make(map[model.Position]bool)
	for _, token := range board.Tokens {
		occupied[token.Position] = true
	}
	for row := range board.Cells {
		for col := range board.Cells[row] {
			if board.Cells[row][col].WhoseTarget == nil {
				continue
			}
			pos := model.Position{Row: row, Col: col}
			s.False(occupied[pos], "target under a token at %v", pos)
			corner := (row == 0 || row == 6) && (col == 0 || col == 6)
			s.False(corner, "target on a corner at %v", pos)
		}
	}
}

func (s *ServiceSuite) TestCreateBoardIsPersisted() {
	board, err := s.service.CreateBoard(s.ctx, "game-1", 7, 7, []model.PlayerID{"player-1"})
	s.Require().NoError(err)

	retrieved, err := s.service.GetBoard(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(board.Cells, retrieved.Cells)
}

func (s *ServiceSuite) TestCreateBoardRejectsInvalidDimensions() {
	_, err := s.service.CreateBoard(s.ctx, "game-1", 6, 7, []model.PlayerID{"player-1"})
	s.ErrorIs(err, model.ErrInvalidBoardSize)
}

func (s *ServiceSuite) TestAssignTargetPicksEligibleTile() {
	board, err := s.service.CreateBoard(s.ctx, "game-1", 7, 7, []model.PlayerID{"player-1"})
	s.Require().NoError(err)

	// MockRandom yields index 0, so each assignment takes the first free
	// non-corner tile in row-major order
	err = s.service.AssignTarget(board, "player-2")
	s.Require().NoError(err)
	s.Equal(1, targetsFor(board, "player-2"))
}

func (s *ServiceSuite) TestAssignTargetFailsWhenNoTileIsFree() {
	board, err := model.NewBoard("game-1", 5, 5, []model.PlayerID{"player-1"}, s.random)
	s.Require().NoError(err)

	other := model.PlayerID("player-2")
	for row := range board.Cells {
		for col := range board.Cells[row] {
			corner := (row == 0 || row == 4) && (col == 0 || col == 4)
			if !corner {
				board.Cells[row][col].WhoseTarget = &other
			}
		}
	}

	err = s.service.AssignTarget(board, "player-1")
	s.ErrorIs(err, model.ErrNoTargetAvailable)
}

// ValidateMove tests run on a board whose every non-corner tile is a
// vertical straight (MockRandom yields shape 0, orientation 0), so exactly
// the left column is connected to the top-left corner.

func (s *ServiceSuite) TestValidateMoveAcceptsReachablePosition() {
	board, err := s.service.CreateBoard(s.ctx, "game-1", 7, 7, []model.PlayerID{"player-1"})
	s.Require().NoError(err)

	err = s.service.ValidateMove(board, "player-1", model.Position{Row: 3, Col: 0})
	s.NoError(err)
}

func (s *ServiceSuite) TestValidateMoveRejectsUnreachablePosition() {
	board, err := s.service.CreateBoard(s.ctx, "game-1", 7, 7, []model.PlayerID{"player-1"})
	s.Require().NoError(err)

	err = s.service.ValidateMove(board, "player-1", model.Position{Row: 0, Col: 3})
	s.ErrorIs(err, model.ErrUnreachablePosition)
}

func (s *ServiceSuite) TestValidateMoveRejectsOutOfBounds() {
	board, err := s.service.CreateBoard(s.ctx, "game-1", 7, 7, []model.PlayerID{"player-1"})
	s.Require().NoError(err)

	err = s.service.ValidateMove(board, "player-1", model.Position{Row: 7, Col: 0})
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ServiceSuite) TestValidateMoveRejectsUnknownPlayer() {
	board, err := s.service.CreateBoard(s.ctx, "game-1", 7, 7, []model.PlayerID{"player-1"})
	s.Require().NoError(err)

	err = s.service.ValidateMove(board, "player-999", model.Position{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
