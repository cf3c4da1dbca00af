package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mazekit/mazegame-go/internal/api/middleware"
	"github.com/mazekit/mazegame-go/internal/api/request"
	"github.com/mazekit/mazegame-go/internal/api/response"
	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/services/game"
	"github.com/mazekit/mazegame-go/internal/services/lobby"
	"github.com/mazekit/mazegame-go/internal/ws"
)

// GameHandler handles game endpoints. Games are addressed through their
// lobby; the lobby's current game is the one acted on.
type GameHandler struct {
	lobbyController *lobby.Controller
	gameController  *game.Controller
	hub             *ws.Hub
}

// NewGameHandler creates a new GameHandler. The hub may be nil; events are
// then dropped.
func NewGameHandler(lobbyController *lobby.Controller, gameController *game.Controller, hub *ws.Hub) *GameHandler {
	return &GameHandler{
		lobbyController: lobbyController,
		gameController:  gameController,
		hub:             hub,
	}
}

func (h *GameHandler) broadcast(code model.LobbyCode, eventType string, data any) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(code, eventType, data)
}

// currentGameID resolves the lobby's in-progress game
func (h *GameHandler) currentGameID(ctx context.Context, code model.LobbyCode) (model.GameID, error) {
	found, err := h.lobbyController.GetLobby(ctx, code)
	if err != nil {
		return "", err
	}
	if found.CurrentGame == nil {
		return "", model.ErrNoGameInProgress
	}
	return *found.CurrentGame, nil
}

// gameStateResponse loads the game and board and converts them
func (h *GameHandler) gameStateResponse(ctx context.Context, gameID model.GameID) (response.GameState, error) {
	g, err := h.gameController.GetGame(ctx, gameID)
	if err != nil {
		return response.GameState{}, err
	}
	board, err := h.gameController.GetBoard(ctx, gameID)
	if err != nil {
		return response.GameState{}, err
	}
	return response.GameStateFromModel(g, board), nil
}

// Start handles POST /lobbies/{code}/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	started, err := h.lobbyController.StartGame(r.Context(), code, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.gameStateResponse(r.Context(), started.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(code, ws.EventGameStarted, state)
	response.JSON(w, http.StatusCreated, state)
}

// Get handles GET /lobbies/{code}/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := lobbyCode(r)

	gameID, err := h.currentGameID(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.gameStateResponse(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, state)
}

// Abandon handles DELETE /lobbies/{code}/game
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	if err := h.lobbyController.AbandonGame(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(code, ws.EventGameAbandoned, map[string]any{
		"abandoned_by": string(player.ID),
	})
	response.NoContent(w)
}

// Stage handles POST /lobbies/{code}/game/stage
func (h *GameHandler) Stage(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	var req request.StageInsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	dir, err := model.ParseDirection(req.Dir)
	if err != nil {
		WriteError(w, err)
		return
	}

	gameID, err := h.currentGameID(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.gameController.StageInsertion(r.Context(), gameID, player.ID, dir, req.GuideIndex); err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.gameStateResponse(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(code, ws.EventTileStaged, state)
	response.JSON(w, http.StatusOK, state)
}

// Rotate handles POST /lobbies/{code}/game/rotate
func (h *GameHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	gameID, err := h.currentGameID(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.gameController.RotateLooseTile(r.Context(), gameID, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.gameStateResponse(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(code, ws.EventTileRotated, state)
	response.JSON(w, http.StatusOK, state)
}

// Insert handles POST /lobbies/{code}/game/insert
func (h *GameHandler) Insert(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	gameID, err := h.currentGameID(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.gameController.CommitInsertion(r.Context(), gameID, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.gameStateResponse(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(code, ws.EventTileInserted, state)
	response.JSON(w, http.StatusOK, state)
}

// Move handles POST /lobbies/{code}/game/move
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	gameID, err := h.currentGameID(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	to := model.Position{Row: req.Row, Col: req.Col}
	if err := h.gameController.MoveToken(r.Context(), gameID, player.ID, to); err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.gameStateResponse(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if state.State == string(model.GameStateComplete) {
		// Record the result in the lobby's history and put it back in the
		// waiting state
		if err := h.lobbyController.CompleteGame(r.Context(), code); err != nil {
			WriteError(w, err)
			return
		}
		h.broadcast(code, ws.EventGameCompleted, state)
	} else {
		h.broadcast(code, ws.EventTokenMoved, state)
	}

	response.JSON(w, http.StatusOK, state)
}
