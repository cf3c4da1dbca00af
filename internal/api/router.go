// Package api wires the HTTP surface of the maze game server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	apimiddleware "github.com/mazekit/mazegame-go/internal/api/middleware"
	"github.com/mazekit/mazegame-go/internal/middleware"

	"github.com/mazekit/mazegame-go/internal/api/handler"
	"github.com/mazekit/mazegame-go/internal/services/auth"
	"github.com/mazekit/mazegame-go/internal/services/game"
	"github.com/mazekit/mazegame-go/internal/services/lobby"
	"github.com/mazekit/mazegame-go/internal/ws"
)

// RouterConfig holds the services the router depends on
type RouterConfig struct {
	AuthService     *auth.Service
	LobbyController *lobby.Controller
	GameController  *game.Controller
	Hub             *ws.Hub
	Logger          *slog.Logger
}

// NewRouter creates the API router with all routes and middleware configured
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	lobbyHandler := handler.NewLobbyHandler(cfg.LobbyController, cfg.Hub)
	gameHandler := handler.NewGameHandler(cfg.LobbyController, cfg.GameController, cfg.Hub)

	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Unauthenticated player endpoints
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Authenticated player endpoints
	players := api.PathPrefix("/players").Subrouter()
	players.Use(apimiddleware.Auth(cfg.AuthService))
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	players.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Lobby endpoints
	lobbies := api.PathPrefix("/lobbies").Subrouter()
	lobbies.Use(apimiddleware.Auth(cfg.AuthService))
	lobbies.HandleFunc("", lobbyHandler.Create).Methods(http.MethodPost)
	lobbies.HandleFunc("/{code}", lobbyHandler.Get).Methods(http.MethodGet)
	lobbies.HandleFunc("/{code}/join", lobbyHandler.Join).Methods(http.MethodPost)
	lobbies.HandleFunc("/{code}/leave", lobbyHandler.Leave).Methods(http.MethodPost)
	lobbies.HandleFunc("/{code}/config", lobbyHandler.UpdateConfig).Methods(http.MethodPatch)
	lobbies.HandleFunc("/{code}/transfer-host", lobbyHandler.TransferHost).Methods(http.MethodPost)
	lobbies.HandleFunc("/{code}/events", lobbyHandler.Events).Methods(http.MethodGet)

	// Game endpoints, addressed through the lobby's current game
	lobbies.HandleFunc("/{code}/game", gameHandler.Start).Methods(http.MethodPost)
	lobbies.HandleFunc("/{code}/game", gameHandler.Get).Methods(http.MethodGet)
	lobbies.HandleFunc("/{code}/game", gameHandler.Abandon).Methods(http.MethodDelete)
	lobbies.HandleFunc("/{code}/game/stage", gameHandler.Stage).Methods(http.MethodPost)
	lobbies.HandleFunc("/{code}/game/rotate", gameHandler.Rotate).Methods(http.MethodPost)
	lobbies.HandleFunc("/{code}/game/insert", gameHandler.Insert).Methods(http.MethodPost)
	lobbies.HandleFunc("/{code}/game/move", gameHandler.Move).Methods(http.MethodPost)

	return router
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
