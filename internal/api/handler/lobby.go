package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mazekit/mazegame-go/internal/api/middleware"
	"github.com/mazekit/mazegame-go/internal/api/request"
	"github.com/mazekit/mazegame-go/internal/api/response"
	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/services/lobby"
	"github.com/mazekit/mazegame-go/internal/ws"
)

// LobbyHandler handles lobby endpoints
type LobbyHandler struct {
	lobbyController *lobby.Controller
	hub             *ws.Hub
}

// NewLobbyHandler creates a new LobbyHandler. The hub may be nil; events are
// then dropped.
func NewLobbyHandler(lobbyController *lobby.Controller, hub *ws.Hub) *LobbyHandler {
	return &LobbyHandler{
		lobbyController: lobbyController,
		hub:             hub,
	}
}

func (h *LobbyHandler) broadcast(code model.LobbyCode, eventType string, data any) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(code, eventType, data)
}

func lobbyCode(r *http.Request) model.LobbyCode {
	return model.LobbyCode(mux.Vars(r)["code"])
}

// Create handles POST /lobbies
func (h *LobbyHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateLobbyRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
	}

	created, err := h.lobbyController.CreateLobby(r.Context(), *player)
	if err != nil {
		WriteError(w, err)
		return
	}

	if req.Config != nil {
		config := model.LobbyConfig{
			BoardWidth:  req.Config.BoardWidth,
			BoardHeight: req.Config.BoardHeight,
			TargetScore: req.Config.TargetScore,
		}
		if err := h.lobbyController.UpdateConfig(r.Context(), created.Code, player.ID, config); err != nil {
			WriteError(w, err)
			return
		}
		created, err = h.lobbyController.GetLobby(r.Context(), created.Code)
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusCreated, response.LobbyFromModel(created))
}

// Get handles GET /lobbies/{code}
func (h *LobbyHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.lobbyController.GetLobby(r.Context(), lobbyCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LobbyFromModel(found))
}

// Join handles POST /lobbies/{code}/join
func (h *LobbyHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	if err := h.lobbyController.JoinLobby(r.Context(), code, *player); err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.lobbyController.GetLobby(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(code, ws.EventLobbyUpdated, response.LobbyFromModel(updated))
	response.JSON(w, http.StatusOK, response.LobbyFromModel(updated))
}

// Leave handles POST /lobbies/{code}/leave
func (h *LobbyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	if err := h.lobbyController.LeaveLobby(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	// The lobby is deleted when the last member leaves
	if updated, err := h.lobbyController.GetLobby(r.Context(), code); err == nil {
		h.broadcast(code, ws.EventLobbyUpdated, response.LobbyFromModel(updated))
	}

	response.NoContent(w)
}

// UpdateConfig handles PATCH /lobbies/{code}/config
func (h *LobbyHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	var req request.LobbyConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	config := model.LobbyConfig{
		BoardWidth:  req.BoardWidth,
		BoardHeight: req.BoardHeight,
		TargetScore: req.TargetScore,
	}

	if err := h.lobbyController.UpdateConfig(r.Context(), code, player.ID, config); err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.lobbyController.GetLobby(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(code, ws.EventLobbyUpdated, response.LobbyFromModel(updated))
	response.JSON(w, http.StatusOK, response.LobbyFromModel(updated))
}

// TransferHost handles POST /lobbies/{code}/transfer-host
func (h *LobbyHandler) TransferHost(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := lobbyCode(r)

	var req request.TransferHostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.NewHostID == "" {
		WriteError(w, NewInvalidRequestError("new_host_id is required"))
		return
	}

	if err := h.lobbyController.TransferHost(r.Context(), code, player.ID, model.PlayerID(req.NewHostID)); err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.lobbyController.GetLobby(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(code, ws.EventLobbyUpdated, response.LobbyFromModel(updated))
	response.JSON(w, http.StatusOK, response.LobbyFromModel(updated))
}

// Events handles GET /lobbies/{code}/events by upgrading to a websocket
// subscribed to the lobby's event stream
func (h *LobbyHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		WriteError(w, NewInternalError())
		return
	}

	code := lobbyCode(r)
	if _, err := h.lobbyController.GetLobby(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	h.hub.ServeWS(w, r, code)
}
