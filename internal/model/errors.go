package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Lobby errors
	ErrLobbyNotFound       = errors.New("lobby not found")
	ErrLobbyFull           = errors.New("lobby is full")
	ErrAlreadyInLobby      = errors.New("player is already in lobby")
	ErrNotInLobby          = errors.New("player is not in lobby")
	ErrNotHost             = errors.New("player is not the host")
	ErrGameInProgress      = errors.New("game is in progress")
	ErrNoGameInProgress    = errors.New("no game in progress")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrInvalidLobbyConfig  = errors.New("invalid lobby configuration")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrNotPlayerTurn       = errors.New("not this player's turn")
	ErrWrongPhase          = errors.New("action not allowed in current turn phase")
	ErrNoInsertionStaged   = errors.New("no insertion slot has been staged")
	ErrUnreachablePosition = errors.New("position is not reachable from the token")
	ErrGameComplete        = errors.New("game is already complete")
	ErrGameAbandoned       = errors.New("game has been abandoned")

	// Board errors
	ErrBoardNotFound     = errors.New("board not found")
	ErrTooManyPlayers    = errors.New("too many players for a board")
	ErrInvalidBoardSize  = errors.New("board dimensions must be odd and at least 5")
	ErrInvalidInsertSlot = errors.New("invalid insertion slot")
	ErrInvalidPosition   = errors.New("invalid board position")
	ErrNoTargetAvailable = errors.New("no tile available to host a target")

	// Tile errors
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidShape     = errors.New("invalid tile shape")
)
