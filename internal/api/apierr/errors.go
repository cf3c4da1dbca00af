// Package apierr maps service errors to HTTP error responses.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/services/auth"
)

// APIError is the error payload returned to clients
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError in the response envelope
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes returned in APIError.Code
const (
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeForbidden      = "forbidden"
	CodeUnauthorized   = "unauthorized"
	CodeInvalidRequest = "invalid_request"
	CodeInternal       = "internal_error"
)

// httpError carries an HTTP status alongside the client-facing payload
type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes err as a JSON error response with the appropriate status
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// NewInvalidRequestError creates a 400 error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{
		status:   http.StatusBadRequest,
		apiError: APIError{Code: CodeInvalidRequest, Message: message},
	}
}

// NewUnauthorizedError creates a 401 error with the given message
func NewUnauthorizedError(message string) error {
	return &httpError{
		status:   http.StatusUnauthorized,
		apiError: APIError{Code: CodeUnauthorized, Message: message},
	}
}

// NewInternalError creates a 500 error with a generic message
func NewInternalError() error {
	return &httpError{
		status:   http.StatusInternalServerError,
		apiError: APIError{Code: CodeInternal, Message: "internal server error"},
	}
}

// toHTTPError maps a service error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// 404
	case errors.Is(err, model.ErrPlayerNotFound),
		errors.Is(err, model.ErrLobbyNotFound),
		errors.Is(err, model.ErrGameNotFound),
		errors.Is(err, model.ErrBoardNotFound),
		errors.Is(err, model.ErrNotInLobby),
		errors.Is(err, model.ErrNoGameInProgress):
		return &httpError{
			status:   http.StatusNotFound,
			apiError: APIError{Code: CodeNotFound, Message: err.Error()},
		}

	// 409
	case errors.Is(err, model.ErrAlreadyInLobby),
		errors.Is(err, model.ErrLobbyFull),
		errors.Is(err, model.ErrGameInProgress),
		errors.Is(err, model.ErrInsufficientPlayers),
		errors.Is(err, model.ErrWrongPhase),
		errors.Is(err, model.ErrNoInsertionStaged),
		errors.Is(err, model.ErrUnreachablePosition),
		errors.Is(err, model.ErrGameComplete),
		errors.Is(err, model.ErrGameAbandoned),
		errors.Is(err, model.ErrTooManyPlayers),
		errors.Is(err, auth.ErrUsernameExists):
		return &httpError{
			status:   http.StatusConflict,
			apiError: APIError{Code: CodeConflict, Message: err.Error()},
		}

	// 403
	case errors.Is(err, model.ErrNotHost),
		errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{
			status:   http.StatusForbidden,
			apiError: APIError{Code: CodeForbidden, Message: err.Error()},
		}

	// 400
	case errors.Is(err, model.ErrInvalidInsertSlot),
		errors.Is(err, model.ErrInvalidPosition),
		errors.Is(err, model.ErrInvalidDirection),
		errors.Is(err, model.ErrInvalidBoardSize),
		errors.Is(err, model.ErrInvalidLobbyConfig),
		errors.Is(err, auth.ErrInvalidUsername),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrInvalidDisplayName):
		return &httpError{
			status:   http.StatusBadRequest,
			apiError: APIError{Code: CodeInvalidRequest, Message: err.Error()},
		}

	// 401
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidSession):
		return &httpError{
			status:   http.StatusUnauthorized,
			apiError: APIError{Code: CodeUnauthorized, Message: err.Error()},
		}

	default:
		return &httpError{
			status:   http.StatusInternalServerError,
			apiError: APIError{Code: CodeInternal, Message: "internal server error"},
		}
	}
}
