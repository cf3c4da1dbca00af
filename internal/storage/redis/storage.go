package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Every entity is one JSON blob under its own key; a board round-trips
// through its JSON form with full fidelity (grid, loose tile, staged
// slot, tokens), so games survive a server restart.
type Storage struct {
	client *redis.Client
	cfg    Config
}

var _ storage.Storage = (*Storage)(nil)

// New connects to Redis using the given config and verifies the
// connection with a ping before returning.
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient wraps an existing client. Tests use this with miniredis.
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	return s.client.Close()
}

// setJSON marshals v and stores it under key with the given TTL
func (s *Storage) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// getJSON loads key into v, translating a missing key into notFound
func (s *Storage) getJSON(ctx context.Context, key string, v any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	// Registered players persist; only guests expire
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}
	return s.setJSON(ctx, playerKey(player.ID), player, ttl)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, playerKey(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// The record and its username index must land together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	if err := s.getJSON(ctx, registeredPlayerKey(playerID), &rp, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerID, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerID))
}

// Lobby operations

func (s *Storage) SaveLobby(ctx context.Context, lobby *model.Lobby) error {
	return s.setJSON(ctx, lobbyKey(lobby.Code), lobby, s.cfg.StateTTL)
}

func (s *Storage) GetLobby(ctx context.Context, code model.LobbyCode) (*model.Lobby, error) {
	var lobby model.Lobby
	if err := s.getJSON(ctx, lobbyKey(code), &lobby, model.ErrLobbyNotFound); err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (s *Storage) DeleteLobby(ctx context.Context, code model.LobbyCode) error {
	return s.client.Del(ctx, lobbyKey(code)).Err()
}

func (s *Storage) LobbyExists(ctx context.Context, code model.LobbyCode) (bool, error) {
	n, err := s.client.Exists(ctx, lobbyKey(code)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	return s.setJSON(ctx, gameKey(game.ID), game, s.cfg.StateTTL)
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.getJSON(ctx, gameKey(id), &game, model.ErrGameNotFound); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, board *model.Board) error {
	return s.setJSON(ctx, boardKey(board.GameID), board, s.cfg.StateTTL)
}

func (s *Storage) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	var board model.Board
	if err := s.getJSON(ctx, boardKey(gameID), &board, model.ErrBoardNotFound); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) DeleteBoard(ctx context.Context, gameID model.GameID) error {
	return s.client.Del(ctx, boardKey(gameID)).Err()
}
