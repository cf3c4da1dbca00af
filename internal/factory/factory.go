// Package factory wires the application's services together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mazekit/mazegame-go/internal/dependencies/clock"
	"github.com/mazekit/mazegame-go/internal/dependencies/random"
	"github.com/mazekit/mazegame-go/internal/services/auth"
	"github.com/mazekit/mazegame-go/internal/services/board"
	"github.com/mazekit/mazegame-go/internal/services/game"
	"github.com/mazekit/mazegame-go/internal/services/lobby"
	"github.com/mazekit/mazegame-go/internal/storage"
	"github.com/mazekit/mazegame-go/internal/storage/memory"
	redisstorage "github.com/mazekit/mazegame-go/internal/storage/redis"
	"github.com/mazekit/mazegame-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService    *board.Service
	GameController  *game.Controller
	LobbyController *lobby.Controller
	AuthService     *auth.Service

	// Hub pushes game events to websocket subscribers. Call Hub.Run in a
	// goroutine before serving.
	Hub *ws.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for
// testing). authRnd is separate because tests drive the game with a mock
// source but still need distinct session tokens.
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd, authRnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	boardService := board.New(store, rnd, logger)
	gameController := game.NewController(store, boardService, clk, rnd, logger)
	lobbyController := lobby.NewController(store, gameController, clk, rnd, logger)
	authService := auth.New(store, clk, authRnd, logger, authCfg)
	hub := ws.NewHub(logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		BoardService:    boardService,
		GameController:  gameController,
		LobbyController: lobbyController,
		AuthService:     authService,
		Hub:             hub,
	}
}
