package memory

import (
	"context"
	"sync"

	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/storage"
)

// table is one keyed collection guarded by the storage-wide lock
type table[K comparable, V any] struct {
	mu       *sync.RWMutex
	items    map[K]*V
	notFound error
}

func newTable[K comparable, V any](mu *sync.RWMutex, notFound error) table[K, V] {
	return table[K, V]{mu: mu, items: make(map[K]*V), notFound: notFound}
}

func (t *table[K, V]) put(key K, value *V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[key] = value
}

func (t *table[K, V]) get(key K) (*V, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.items[key]
	if !ok {
		return nil, t.notFound
	}
	return v, nil
}

func (t *table[K, V]) del(key K) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.items, key)
}

func (t *table[K, V]) has(key K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.items[key]
	return ok
}

// Storage keeps everything in process memory. One lock covers all
// tables so cross-entity operations observe a consistent snapshot.
type Storage struct {
	mu sync.RWMutex

	players           table[model.PlayerID, model.Player]
	registeredPlayers table[model.PlayerID, model.RegisteredPlayer]
	usernameIndex     map[string]model.PlayerID
	lobbies           table[model.LobbyCode, model.Lobby]
	games             table[model.GameID, model.Game]
	boards            table[model.GameID, model.Board]
}

var _ storage.Storage = (*Storage)(nil)

// New creates an empty in-memory storage
func New() *Storage {
	s := &Storage{usernameIndex: make(map[string]model.PlayerID)}
	s.players = newTable[model.PlayerID, model.Player](&s.mu, model.ErrPlayerNotFound)
	s.registeredPlayers = newTable[model.PlayerID, model.RegisteredPlayer](&s.mu, model.ErrPlayerNotFound)
	s.lobbies = newTable[model.LobbyCode, model.Lobby](&s.mu, model.ErrLobbyNotFound)
	s.games = newTable[model.GameID, model.Game](&s.mu, model.ErrGameNotFound)
	s.boards = newTable[model.GameID, model.Board](&s.mu, model.ErrBoardNotFound)
	return s
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.players.put(player.ID, player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.players.get(id)
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.players.del(id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers.items[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	return s.registeredPlayers.get(playerID)
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers.items[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Lobby operations

func (s *Storage) SaveLobby(ctx context.Context, lobby *model.Lobby) error {
	s.lobbies.put(lobby.Code, lobby)
	return nil
}

func (s *Storage) GetLobby(ctx context.Context, code model.LobbyCode) (*model.Lobby, error) {
	return s.lobbies.get(code)
}

func (s *Storage) DeleteLobby(ctx context.Context, code model.LobbyCode) error {
	s.lobbies.del(code)
	return nil
}

func (s *Storage) LobbyExists(ctx context.Context, code model.LobbyCode) (bool, error) {
	return s.lobbies.has(code), nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.games.put(game.ID, game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.games.get(id)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.games.del(id)
	return nil
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, board *model.Board) error {
	s.boards.put(board.GameID, board)
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	return s.boards.get(gameID)
}

func (s *Storage) DeleteBoard(ctx context.Context, gameID model.GameID) error {
	s.boards.del(gameID)
	return nil
}
