package handler

import (
	"github.com/mazekit/mazegame-go/internal/api/apierr"
)

// Re-export the error helpers so handlers read naturally

type APIError = apierr.APIError

type ErrorResponse = apierr.ErrorResponse

var (
	WriteError             = apierr.WriteError
	NewInvalidRequestError = apierr.NewInvalidRequestError
	NewUnauthorizedError   = apierr.NewUnauthorizedError
	NewInternalError       = apierr.NewInternalError
)
