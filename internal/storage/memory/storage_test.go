package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mazekit/mazegame-go/internal/dependencies/random"
	"github.com/mazekit/mazegame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     true,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1"})

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash",
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)

	byName, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), byName.PlayerID)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Lobby tests

func (s *StorageSuite) TestSaveAndGetLobby() {
	lobby := &model.Lobby{
		Code:   "ABCD",
		State:  model.LobbyStateWaiting,
		Config: model.DefaultLobbyConfig(),
	}

	err := s.storage.SaveLobby(s.ctx, lobby)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLobby(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(model.LobbyStateWaiting, retrieved.State)

	exists, err := s.storage.LobbyExists(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestGetLobbyNotFound() {
	_, err := s.storage.GetLobby(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrLobbyNotFound)

	exists, err := s.storage.LobbyExists(s.ctx, "NOPE")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteLobby() {
	_ = s.storage.SaveLobby(s.ctx, &model.Lobby{Code: "ABCD"})

	err := s.storage.DeleteLobby(s.ctx, "ABCD")
	s.Require().NoError(err)

	_, err = s.storage.GetLobby(s.ctx, "ABCD")
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{
		ID:    "game-1",
		State: model.GameStateInserting,
	}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStateInserting, retrieved.State)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Board tests

func (s *StorageSuite) TestSaveAndGetBoard() {
	board, err := model.NewBoard("game-1", 7, 7, []model.PlayerID{"p1"}, random.NewSeeded(1))
	s.Require().NoError(err)

	err = s.storage.SaveBoard(s.ctx, board)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBoard(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(board.Cells, retrieved.Cells)
	s.Equal(board.LooseTile, retrieved.LooseTile)
}

func (s *StorageSuite) TestGetBoardNotFound() {
	_, err := s.storage.GetBoard(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestDeleteBoard() {
	board, err := model.NewBoard("game-1", 5, 5, []model.PlayerID{"p1"}, random.NewSeeded(1))
	s.Require().NoError(err)
	_ = s.storage.SaveBoard(s.ctx, board)

	err = s.storage.DeleteBoard(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetBoard(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrBoardNotFound)
}
