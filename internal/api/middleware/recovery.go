package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mazekit/mazegame-go/internal/api/apierr"
	"github.com/mazekit/mazegame-go/internal/middleware"
)

// Recovery creates panic recovery middleware that writes a JSON error
// response
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
