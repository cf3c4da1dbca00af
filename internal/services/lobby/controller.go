package lobby

import (
	"context"
	"log/slog"

	"github.com/mazekit/mazegame-go/internal/dependencies/clock"
	"github.com/mazekit/mazegame-go/internal/dependencies/random"
	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/services/game"
	"github.com/mazekit/mazegame-go/internal/storage"
)

const (
	// LobbyCodeLength is the length of generated lobby codes
	LobbyCodeLength = 6
	// LobbyCodeAlphabet is the characters used in lobby codes (avoid confusing chars)
	LobbyCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages lobby state machine and member operations
type Controller struct {
	storage        storage.Storage
	gameController *game.Controller
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new LobbyController
func NewController(
	storage storage.Storage,
	gameController *game.Controller,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		gameController: gameController,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

// CreateLobby creates a new lobby with the given player as host
func (c *Controller) CreateLobby(ctx context.Context, host model.Player) (*model.Lobby, error) {
	now := c.clock.Now()

	// Generate unique lobby code
	var code model.LobbyCode
	for {
		code = model.LobbyCode(c.random.String(LobbyCodeLength, LobbyCodeAlphabet))
		exists, err := c.storage.LobbyExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	lobby := &model.Lobby{
		Code:   code,
		State:  model.LobbyStateWaiting,
		Config: model.DefaultLobbyConfig(),
		Members: []model.LobbyMember{
			{
				Player:   host,
				IsHost:   true,
				JoinedAt: now,
			},
		},
		GameHistory: []model.GameSummary{},
		CurrentGame: nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storage.SaveLobby(ctx, lobby); err != nil {
		return nil, err
	}

	c.logger.Info("lobby created",
		slog.String("lobby_code", string(code)),
		slog.String("host", string(host.ID)),
	)

	return lobby, nil
}

// GetLobby retrieves a lobby by code
func (c *Controller) GetLobby(ctx context.Context, code model.LobbyCode) (*model.Lobby, error) {
	return c.storage.GetLobby(ctx, code)
}

// JoinLobby adds a player to a lobby. Every member plays, so joining is only
// possible while the lobby is waiting and has a free board corner.
func (c *Controller) JoinLobby(ctx context.Context, code model.LobbyCode, player model.Player) error {
	lobby, err := c.storage.GetLobby(ctx, code)
	if err != nil {
		return err
	}

	if lobby.GetMember(player.ID) != nil {
		return model.ErrAlreadyInLobby
	}
	if lobby.State == model.LobbyStateInGame {
		return model.ErrGameInProgress
	}
	if len(lobby.Members) >= model.MaxLobbyPlayers {
		return model.ErrLobbyFull
	}

	lobby.Members = append(lobby.Members, model.LobbyMember{
		Player:   player,
		IsHost:   false,
		JoinedAt: c.clock.Now(),
	})
	lobby.UpdatedAt = c.clock.Now()

	return c.storage.SaveLobby(ctx, lobby)
}

// LeaveLobby removes a player from a lobby
func (c *Controller) LeaveLobby(ctx context.Context, code model.LobbyCode, playerID model.PlayerID) error {
	lobby, err := c.storage.GetLobby(ctx, code)
	if err != nil {
		return err
	}

	member := lobby.GetMember(playerID)
	if member == nil {
		return model.ErrNotInLobby
	}

	wasHost := member.IsHost

	for i, m := range lobby.Members {
		if m.Player.ID == playerID {
			lobby.Members = append(lobby.Members[:i], lobby.Members[i+1:]...)
			break
		}
	}

	// If lobby is now empty, delete it
	if len(lobby.Members) == 0 {
		if lobby.CurrentGame != nil {
			_ = c.gameController.AbandonGame(ctx, *lobby.CurrentGame)
		}
		return c.storage.DeleteLobby(ctx, code)
	}

	// If host left, assign new host
	if wasHost {
		lobby.Members[0].IsHost = true
	}

	// If player left during game, remove from the game too
	if lobby.CurrentGame != nil {
		if err := c.gameController.RemovePlayer(ctx, *lobby.CurrentGame, playerID); err != nil {
			return err
		}
		g, err := c.gameController.GetGame(ctx, *lobby.CurrentGame)
		if err != nil {
			return err
		}
		if g.State == model.GameStateAbandoned {
			lobby.State = model.LobbyStateWaiting
			lobby.CurrentGame = nil
		}
	}

	lobby.UpdatedAt = c.clock.Now()
	return c.storage.SaveLobby(ctx, lobby)
}

// TransferHost makes another member the host
func (c *Controller) TransferHost(ctx context.Context, code model.LobbyCode, requestingPlayer model.PlayerID, newHostID model.PlayerID) error {
	lobby, err := c.storage.GetLobby(ctx, code)
	if err != nil {
		return err
	}

	currentHost := lobby.GetHost()
	if currentHost == nil || currentHost.Player.ID != requestingPlayer {
		return model.ErrNotHost
	}

	newHost := lobby.GetMember(newHostID)
	if newHost == nil {
		return model.ErrNotInLobby
	}

	currentHost.IsHost = false
	newHost.IsHost = true
	lobby.UpdatedAt = c.clock.Now()

	return c.storage.SaveLobby(ctx, lobby)
}

// StartGame begins a new game with the current members
func (c *Controller) StartGame(ctx context.Context, code model.LobbyCode, requestingPlayer model.PlayerID) (*model.Game, error) {
	lobby, err := c.storage.GetLobby(ctx, code)
	if err != nil {
		return nil, err
	}

	host := lobby.GetHost()
	if host == nil || host.Player.ID != requestingPlayer {
		return nil, model.ErrNotHost
	}

	if lobby.State == model.LobbyStateInGame {
		return nil, model.ErrGameInProgress
	}

	playerIDs := lobby.PlayerIDs()
	if len(playerIDs) == 0 {
		return nil, model.ErrInsufficientPlayers
	}

	g, err := c.gameController.CreateGame(ctx, code, playerIDs, lobby.Config)
	if err != nil {
		return nil, err
	}

	lobby.State = model.LobbyStateInGame
	lobby.CurrentGame = &g.ID
	lobby.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveLobby(ctx, lobby); err != nil {
		return nil, err
	}

	return g, nil
}

// AbandonGame ends the current game
func (c *Controller) AbandonGame(ctx context.Context, code model.LobbyCode, requestingPlayer model.PlayerID) error {
	lobby, err := c.storage.GetLobby(ctx, code)
	if err != nil {
		return err
	}

	host := lobby.GetHost()
	if host == nil || host.Player.ID != requestingPlayer {
		return model.ErrNotHost
	}

	if lobby.State != model.LobbyStateInGame || lobby.CurrentGame == nil {
		return model.ErrNoGameInProgress
	}

	if err := c.gameController.AbandonGame(ctx, *lobby.CurrentGame); err != nil {
		return err
	}

	lobby.State = model.LobbyStateWaiting
	lobby.CurrentGame = nil
	lobby.UpdatedAt = c.clock.Now()

	return c.storage.SaveLobby(ctx, lobby)
}

// CompleteGame records the current game's outcome in the lobby history once
// a player has won
func (c *Controller) CompleteGame(ctx context.Context, code model.LobbyCode) error {
	lobby, err := c.storage.GetLobby(ctx, code)
	if err != nil {
		return err
	}

	if lobby.CurrentGame == nil {
		return model.ErrNoGameInProgress
	}

	summary, err := c.gameController.CreateGameSummary(ctx, *lobby.CurrentGame)
	if err != nil {
		return err
	}

	lobby.GameHistory = append(lobby.GameHistory, *summary)
	lobby.State = model.LobbyStateWaiting
	lobby.CurrentGame = nil
	lobby.UpdatedAt = c.clock.Now()

	return c.storage.SaveLobby(ctx, lobby)
}

// UpdateConfig updates the lobby configuration
func (c *Controller) UpdateConfig(ctx context.Context, code model.LobbyCode, requestingPlayer model.PlayerID, config model.LobbyConfig) error {
	lobby, err := c.storage.GetLobby(ctx, code)
	if err != nil {
		return err
	}

	host := lobby.GetHost()
	if host == nil || host.Player.ID != requestingPlayer {
		return model.ErrNotHost
	}

	if lobby.State == model.LobbyStateInGame {
		return model.ErrGameInProgress
	}

	if err := config.Validate(); err != nil {
		return err
	}

	lobby.Config = config
	lobby.UpdatedAt = c.clock.Now()

	return c.storage.SaveLobby(ctx, lobby)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateLobby(ctx context.Context, host model.Player) (*model.Lobby, error)
	GetLobby(ctx context.Context, code model.LobbyCode) (*model.Lobby, error)
	JoinLobby(ctx context.Context, code model.LobbyCode, player model.Player) error
	LeaveLobby(ctx context.Context, code model.LobbyCode, playerID model.PlayerID) error
	TransferHost(ctx context.Context, code model.LobbyCode, requestingPlayer model.PlayerID, newHostID model.PlayerID) error
	StartGame(ctx context.Context, code model.LobbyCode, requestingPlayer model.PlayerID) (*model.Game, error)
	AbandonGame(ctx context.Context, code model.LobbyCode, requestingPlayer model.PlayerID) error
	CompleteGame(ctx context.Context, code model.LobbyCode) error
	UpdateConfig(ctx context.Context, code model.LobbyCode, requestingPlayer model.PlayerID, config model.LobbyConfig) error
}

var _ ControllerInterface = (*Controller)(nil)
