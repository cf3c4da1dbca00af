package lobby

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mazekit/mazegame-go/internal/dependencies/mocks"
	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/services/board"
	"github.com/mazekit/mazegame-go/internal/services/game"
	"github.com/mazekit/mazegame-go/internal/storage/memory"
	"github.com/mazekit/mazegame-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage        *memory.Storage
	gameController *game.Controller
	clock          *mocks.MockClock
	random         *mocks.MockRandom
	controller     *Controller
	ctx            context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	boardService := board.New(s.storage, s.random, testutil.NopLogger())
	s.gameController = game.NewController(s.storage, boardService, s.clock, s.random, testutil.NopLogger())
	s.controller = NewController(s.storage, s.gameController, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func player(id model.PlayerID) model.Player {
	return model.Player{ID: id, DisplayName: string(id), IsGuest: true}
}

func (s *ControllerSuite) newLobby(host model.PlayerID) *model.Lobby {
	s.random.QueueString("ABCDEF")
	lobby, err := s.controller.CreateLobby(s.ctx, player(host))
	s.Require().NoError(err)
	return lobby
}

// CreateLobby tests

func (s *ControllerSuite) TestCreateLobbySucceeds() {
	lobby := s.newLobby("player-1")

	s.Equal(model.LobbyCode("ABCDEF"), lobby.Code)
	s.Equal(model.LobbyStateWaiting, lobby.State)
	s.Equal(model.DefaultLobbyConfig(), lobby.Config)
	s.Len(lobby.Members, 1)
	s.True(lobby.Members[0].IsHost)
	s.Equal(model.PlayerID("player-1"), lobby.Members[0].Player.ID)
}

func (s *ControllerSuite) TestCreateLobbyRetriesOnCodeCollision() {
	s.newLobby("player-1")

	s.random.QueueString("ABCDEF", "GHJKLM")
	lobby, err := s.controller.CreateLobby(s.ctx, player("player-2"))
	s.Require().NoError(err)
	s.Equal(model.LobbyCode("GHJKLM"), lobby.Code)
}

// JoinLobby tests

func (s *ControllerSuite) TestJoinLobbySucceeds() {
	lobby := s.newLobby("player-1")

	err := s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2"))
	s.Require().NoError(err)

	updated, _ := s.controller.GetLobby(s.ctx, lobby.Code)
	s.Len(updated.Members, 2)
	s.False(updated.Members[1].IsHost)
}

func (s *ControllerSuite) TestJoinLobbyFailsIfAlreadyMember() {
	lobby := s.newLobby("player-1")

	err := s.controller.JoinLobby(s.ctx, lobby.Code, player("player-1"))
	s.ErrorIs(err, model.ErrAlreadyInLobby)
}

func (s *ControllerSuite) TestJoinLobbyFailsWhenFull() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-3")))
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-4")))

	err := s.controller.JoinLobby(s.ctx, lobby.Code, player("player-5"))
	s.ErrorIs(err, model.ErrLobbyFull)
}

func (s *ControllerSuite) TestJoinLobbyFailsDuringGame() {
	lobby := s.newLobby("player-1")
	s.random.QueueString("GAME12345678")
	_, err := s.controller.StartGame(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	err = s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2"))
	s.ErrorIs(err, model.ErrGameInProgress)
}

func (s *ControllerSuite) TestJoinLobbyFailsForUnknownCode() {
	err := s.controller.JoinLobby(s.ctx, "NOPE", player("player-1"))
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

// LeaveLobby tests

func (s *ControllerSuite) TestLeaveLobbyRemovesMember() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))

	err := s.controller.LeaveLobby(s.ctx, lobby.Code, "player-2")
	s.Require().NoError(err)

	updated, _ := s.controller.GetLobby(s.ctx, lobby.Code)
	s.Len(updated.Members, 1)
}

func (s *ControllerSuite) TestLeaveLobbyFailsIfNotMember() {
	lobby := s.newLobby("player-1")

	err := s.controller.LeaveLobby(s.ctx, lobby.Code, "player-999")
	s.ErrorIs(err, model.ErrNotInLobby)
}

func (s *ControllerSuite) TestHostLeavingPromotesNextMember() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))

	err := s.controller.LeaveLobby(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	updated, _ := s.controller.GetLobby(s.ctx, lobby.Code)
	host := updated.GetHost()
	s.Require().NotNil(host)
	s.Equal(model.PlayerID("player-2"), host.Player.ID)
}

func (s *ControllerSuite) TestLastMemberLeavingDeletesLobby() {
	lobby := s.newLobby("player-1")

	err := s.controller.LeaveLobby(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	_, err = s.controller.GetLobby(s.ctx, lobby.Code)
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

func (s *ControllerSuite) TestLeaveDuringGameRemovesFromGame() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))
	s.random.QueueString("GAME12345678")
	g, err := s.controller.StartGame(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	err = s.controller.LeaveLobby(s.ctx, lobby.Code, "player-2")
	s.Require().NoError(err)

	updatedGame, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.Equal([]model.PlayerID{"player-1"}, updatedGame.Players)
}

// TransferHost tests

func (s *ControllerSuite) TestTransferHostSucceeds() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))

	err := s.controller.TransferHost(s.ctx, lobby.Code, "player-1", "player-2")
	s.Require().NoError(err)

	updated, _ := s.controller.GetLobby(s.ctx, lobby.Code)
	s.Equal(model.PlayerID("player-2"), updated.GetHost().Player.ID)
}

func (s *ControllerSuite) TestTransferHostFailsIfNotHost() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))

	err := s.controller.TransferHost(s.ctx, lobby.Code, "player-2", "player-2")
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *ControllerSuite) TestTransferHostFailsIfTargetNotMember() {
	lobby := s.newLobby("player-1")

	err := s.controller.TransferHost(s.ctx, lobby.Code, "player-1", "player-999")
	s.ErrorIs(err, model.ErrNotInLobby)
}

// StartGame tests

func (s *ControllerSuite) TestStartGameSucceeds() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))

	s.random.QueueString("GAME12345678")
	g, err := s.controller.StartGame(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	s.Equal(model.GameID("GAME12345678"), g.ID)
	s.ElementsMatch([]model.PlayerID{"player-1", "player-2"}, g.Players)

	updated, _ := s.controller.GetLobby(s.ctx, lobby.Code)
	s.Equal(model.LobbyStateInGame, updated.State)
	s.Require().NotNil(updated.CurrentGame)
	s.Equal(g.ID, *updated.CurrentGame)
}

func (s *ControllerSuite) TestStartGameFailsIfNotHost() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))

	_, err := s.controller.StartGame(s.ctx, lobby.Code, "player-2")
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *ControllerSuite) TestStartGameFailsIfGameInProgress() {
	lobby := s.newLobby("player-1")
	s.random.QueueString("GAME12345678")
	_, err := s.controller.StartGame(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	_, err = s.controller.StartGame(s.ctx, lobby.Code, "player-1")
	s.ErrorIs(err, model.ErrGameInProgress)
}

// AbandonGame tests

func (s *ControllerSuite) TestAbandonGameResetsLobby() {
	lobby := s.newLobby("player-1")
	s.random.QueueString("GAME12345678")
	g, err := s.controller.StartGame(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	err = s.controller.AbandonGame(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	updated, _ := s.controller.GetLobby(s.ctx, lobby.Code)
	s.Equal(model.LobbyStateWaiting, updated.State)
	s.Nil(updated.CurrentGame)

	abandonedGame, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.Equal(model.GameStateAbandoned, abandonedGame.State)
}

func (s *ControllerSuite) TestAbandonGameFailsWithoutGame() {
	lobby := s.newLobby("player-1")

	err := s.controller.AbandonGame(s.ctx, lobby.Code, "player-1")
	s.ErrorIs(err, model.ErrNoGameInProgress)
}

// CompleteGame tests

func (s *ControllerSuite) TestCompleteGameRecordsHistory() {
	lobby := s.newLobby("player-1")
	s.random.QueueString("GAME12345678")
	g, err := s.controller.StartGame(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	// Finish the game out-of-band
	s.Require().NoError(s.gameController.AbandonGame(s.ctx, g.ID))

	err = s.controller.CompleteGame(s.ctx, lobby.Code)
	s.Require().NoError(err)

	updated, _ := s.controller.GetLobby(s.ctx, lobby.Code)
	s.Equal(model.LobbyStateWaiting, updated.State)
	s.Nil(updated.CurrentGame)
	s.Len(updated.GameHistory, 1)
	s.Equal(g.ID, updated.GameHistory[0].ID)
}

func (s *ControllerSuite) TestCompleteGameFailsWithoutGame() {
	lobby := s.newLobby("player-1")

	err := s.controller.CompleteGame(s.ctx, lobby.Code)
	s.ErrorIs(err, model.ErrNoGameInProgress)
}

// UpdateConfig tests

func (s *ControllerSuite) TestUpdateConfigSucceeds() {
	lobby := s.newLobby("player-1")

	config := model.LobbyConfig{BoardWidth: 9, BoardHeight: 7, TargetScore: 5}
	err := s.controller.UpdateConfig(s.ctx, lobby.Code, "player-1", config)
	s.Require().NoError(err)

	updated, _ := s.controller.GetLobby(s.ctx, lobby.Code)
	s.Equal(config, updated.Config)
}

func (s *ControllerSuite) TestUpdateConfigFailsIfNotHost() {
	lobby := s.newLobby("player-1")
	s.Require().NoError(s.controller.JoinLobby(s.ctx, lobby.Code, player("player-2")))

	err := s.controller.UpdateConfig(s.ctx, lobby.Code, "player-2", model.DefaultLobbyConfig())
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *ControllerSuite) TestUpdateConfigRejectsEvenDimensions() {
	lobby := s.newLobby("player-1")

	config := model.LobbyConfig{BoardWidth: 8, BoardHeight: 7, TargetScore: 3}
	err := s.controller.UpdateConfig(s.ctx, lobby.Code, "player-1", config)
	s.ErrorIs(err, model.ErrInvalidBoardSize)
}

func (s *ControllerSuite) TestUpdateConfigRejectsZeroTargetScore() {
	lobby := s.newLobby("player-1")

	config := model.LobbyConfig{BoardWidth: 7, BoardHeight: 7, TargetScore: 0}
	err := s.controller.UpdateConfig(s.ctx, lobby.Code, "player-1", config)
	s.ErrorIs(err, model.ErrInvalidLobbyConfig)
}

func (s *ControllerSuite) TestUpdateConfigFailsDuringGame() {
	lobby := s.newLobby("player-1")
	s.random.QueueString("GAME12345678")
	_, err := s.controller.StartGame(s.ctx, lobby.Code, "player-1")
	s.Require().NoError(err)

	err = s.controller.UpdateConfig(s.ctx, lobby.Code, "player-1", model.DefaultLobbyConfig())
	s.ErrorIs(err, model.ErrGameInProgress)
}
